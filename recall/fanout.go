package recall

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/orderedset"
	"github.com/rushteam/artrec/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按 Sources 顺序合并结果。
//
// 合并规则：先按召回源顺序、再按源内顺序排列；Dedup 时相同文章保留优先级最高
// （Sources 中靠前）的那一条，其余来源的 Label 合并到保留的 Item 上。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间，超时的召回源结果被丢弃
	MaxConcurrent int           // 最大并发数（0 表示无限制）

	// FailOnError 为 true 时，召回源返回 UNKNOWN_USER 会使整个 Fanout 失败；
	// 其他错误（超时等）始终只丢弃该召回源的结果。
	FailOnError bool

	Logger *zerolog.Logger
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个召回源写自己的槽位，合并顺序与完成顺序无关
	results := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := src.Recall(recallCtx, rctx)
			if err != nil {
				if n.FailOnError && core.IsUnknownUser(err) {
					return err
				}
				n.logDropped(src, err)
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				if it == nil {
					continue
				}
				it.PutLabel(utils.LabelRecallSource, utils.RecallLabel(src.Name()))
				it.PutLabel(utils.LabelRecallPriority, utils.RecallLabel(strconv.Itoa(i)))
			}
			results[i] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return n.merge(results), nil
}

func (n *Fanout) merge(results [][]*core.Item) []*core.Item {
	total := 0
	for _, items := range results {
		total += len(items)
	}
	out := make([]*core.Item, 0, total)
	if !n.Dedup {
		for _, items := range results {
			for _, it := range items {
				if it != nil {
					out = append(out, it)
				}
			}
		}
		return out
	}

	order := orderedset.New[int64](total)
	kept := make(map[int64]*core.Item, total)
	for _, items := range results {
		for _, it := range items {
			if it == nil {
				continue
			}
			if order.Add(it.ID) {
				kept[it.ID] = it
				continue
			}
			old := kept[it.ID]
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
		}
	}
	for _, id := range order.Items() {
		out = append(out, kept[id])
	}
	return out
}

func (n *Fanout) logDropped(src Source, err error) {
	if n.Logger == nil {
		return
	}
	n.Logger.Warn().
		Err(err).
		Str("source", src.Name()).
		Str("code", core.ErrorCode(err)).
		Msg("recall source dropped")
}
