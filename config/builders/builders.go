// Package builders 注册内置 Node 的配置构建器。
//
// 不依赖引擎的 Node（filter 中的 blacklist / expr、rerank.topn）可直接通过 config.DefaultFactory 构建；
// 召回 Node 与 seen 过滤器需要引擎，使用 Factory(deps) 得到绑定了依赖的工厂：
//
//	factory := builders.Factory(builders.Deps{Engine: eng, Store: kv, PopularKey: "artrec:popular"})
//	p, err := cfg.BuildPipeline(factory)
package builders

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/config"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/filter"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/conv"
	"github.com/rushteam/artrec/recall"
	"github.com/rushteam/artrec/recommend"
	"github.com/rushteam/artrec/rerank"
)

func init() {
	var d Deps
	for typeName, b := range d.builders() {
		config.Register(typeName, b)
	}
}

// Deps 是构建 Node 需要的运行时依赖。
type Deps struct {
	Engine *recommend.Engine

	// Store + PopularKey 配置后，popular 召回优先读取热门榜快照
	Store      core.KeyValueStore
	PopularKey string

	// Defaults 为空时使用 core.DefaultRecommendConfig
	Defaults core.RecommendConfig

	Logger *zerolog.Logger
}

// Factory 返回注册表中的全部 Node，并把依赖引擎的 Node 绑定到 deps。
func Factory(deps Deps) *pipeline.NodeFactory {
	f := config.DefaultFactory()
	for typeName, b := range deps.builders() {
		f.Register(typeName, b)
	}
	return f
}

func (d Deps) builders() map[string]pipeline.NodeBuilder {
	return map[string]pipeline.NodeBuilder{
		"recall.fanout":    d.BuildFanoutNode,
		"recall.popular":   d.nodeFromSource("popular"),
		"recall.user_user": d.nodeFromSource("user_user"),
		"recall.content":   d.nodeFromSource("content"),
		"recall.similar":   d.nodeFromSource("similar"),
		"filter":           d.BuildFilterNode,
		"rerank.topn":      BuildTopNNode,
	}
}

func (d Deps) defaults() core.RecommendConfig {
	if d.Defaults != nil {
		return d.Defaults
	}
	return &core.DefaultRecommendConfig{}
}

func (d Deps) requireEngine(what string) error {
	if d.Engine == nil {
		return fmt.Errorf("%s requires a recommend engine, build the pipeline with builders.Factory", what)
	}
	return nil
}

// BuildSource 根据 {type: popular|user_user|content|similar, ...} 构建召回源。
func (d Deps) BuildSource(cfg map[string]any) (recall.Source, error) {
	sourceType := conv.ConfigGet(cfg, "type", "")
	if err := d.requireEngine("recall source " + sourceType); err != nil {
		return nil, err
	}
	def := d.defaults()
	switch sourceType {
	case "popular":
		return &recall.Popular{
			Engine: d.Engine,
			Store:  d.Store,
			Key:    conv.ConfigGet(cfg, "key", d.PopularKey),
			N:      conv.ConfigGetInt(cfg, "n", def.DefaultTopN()),
		}, nil
	case "user_user":
		return &recall.UserUser{
			Engine: d.Engine,
			M:      conv.ConfigGetInt(cfg, "m", def.DefaultUserRecs()),
		}, nil
	case "content":
		return &recall.Content{
			Engine: d.Engine,
			M:      conv.ConfigGetInt(cfg, "m", def.DefaultContentRecs()),
			N:      conv.ConfigGetInt(cfg, "n", def.DefaultSimilarPerArticle()),
		}, nil
	case "similar":
		return &recall.SimilarTo{
			Engine:  d.Engine,
			Article: catalog.RefFromAny(cfg["article"]),
			N:       conv.ConfigGetInt(cfg, "n", def.DefaultTopN()),
		}, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}
}

// nodeFromSource 把单个召回源直接作为 Node 使用（四种召回源均实现了 pipeline.Node）。
func (d Deps) nodeFromSource(sourceType string) pipeline.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		withType := make(map[string]any, len(cfg)+1)
		for k, v := range cfg {
			withType[k] = v
		}
		withType["type"] = sourceType
		src, err := d.BuildSource(withType)
		if err != nil {
			return nil, err
		}
		node, ok := src.(pipeline.Node)
		if !ok {
			return nil, fmt.Errorf("recall source %s is not a pipeline node", sourceType)
		}
		return node, nil
	}
}

func (d Deps) BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		src, err := d.BuildSource(sourceMap)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	fanout := &recall.Fanout{
		Sources:     sources,
		Dedup:       conv.ConfigGet(cfg, "dedup", true),
		FailOnError: conv.ConfigGet(cfg, "fail_on_error", false),
		Logger:      d.Logger,
	}
	if sec, ok := conv.ToFloat64(cfg["timeout"]); ok && sec > 0 {
		fanout.Timeout = time.Duration(sec * float64(time.Second))
	}
	if n := conv.ConfigGetInt(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = n
	}
	return fanout, nil
}

func (d Deps) BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "seen":
			if err := d.requireEngine("seen filter"); err != nil {
				return nil, err
			}
			filters = append(filters, filter.NewSeenFilter(d.Engine.Matrix()))

		case "blacklist":
			ids := conv.SliceAnyToInt64(filterMap["item_ids"])
			key := conv.ConfigGet(filterMap, "key", "")
			var store core.Store
			if d.Store != nil && key != "" {
				store = d.Store
			}
			filters = append(filters, filter.NewBlacklistFilter(ids, store, key))

		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""), conv.ConfigGet(filterMap, "invert", false))
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)

		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters, Logger: d.Logger}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N:        conv.ConfigGetInt(cfg, "n", 0),
		ParamKey: conv.ConfigGet(cfg, "param_key", ""),
	}, nil
}
