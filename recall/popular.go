package recall

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
	"github.com/rushteam/artrec/store"
)

// Popular 是热门召回源：按文章总交互次数降序。
//   - 配置了 Store + Key 时优先读取 store.PublishPopularity 发布的快照
//   - 快照不存在或读取失败时回退到引擎内存中的热门榜
//
// Popular 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popular struct {
	Engine PopularityProvider
	Store  core.KeyValueStore
	Key    string // 例如 "artrec:popular"

	// N 返回条数，可被请求参数 "m" 覆盖
	N int
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Popular) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	n := paramInt(rctx, ParamM, r.N)
	if n <= 0 {
		return []*core.Item{}, nil
	}

	var entries []store.PopularEntry
	if r.Store != nil && r.Key != "" {
		if snap, err := store.LoadPopularity(ctx, r.Store, r.Key, n); err == nil {
			entries = snap
		}
	}
	if err := checkDeadline(ctx, "popular"); err != nil {
		return nil, err
	}
	if len(entries) == 0 && r.Engine != nil {
		for _, ac := range r.Engine.TopArticleCounts(n) {
			entries = append(entries, store.PopularEntry{ArticleID: ac.ArticleID, Title: ac.Title, Count: ac.Count})
		}
	}

	out := make([]*core.Item, 0, len(entries))
	for _, e := range entries {
		it := core.NewItem(e.ArticleID)
		it.Title = e.Title
		it.Score = float64(e.Count)
		it.PutLabel(utils.LabelRecallSource, utils.RecallLabel("popular"))
		out = append(out, it)
	}
	return out, nil
}
