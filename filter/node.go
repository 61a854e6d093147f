package filter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 任一过滤器返回 true，该文章即被过滤；过滤器出错时跳过该过滤器，不中断流程。
type FilterNode struct {
	Filters []Filter

	Logger *zerolog.Logger
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	filteredCount := 0

	for _, item := range items {
		if item == nil {
			continue
		}

		filterReason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				if n.Logger != nil {
					n.Logger.Warn().Err(err).Str("filter", f.Name()).Int64("article_id", item.ID).Msg("filter error")
				}
				continue
			}
			if ok {
				filterReason = f.Name()
				break
			}
		}

		if filterReason != "" {
			filteredCount++
			item.PutLabel(utils.LabelFiltered, utils.Label{Value: "true", Source: filterReason})
			continue
		}
		out = append(out, item)
	}

	if n.Logger != nil {
		n.Logger.Debug().Int("in", len(items)).Int("filtered", filteredCount).Msg("filter node done")
	}
	return out, nil
}
