package rerank

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/conv"
)

// TopNNode 是 Top-N 截断节点，通常放在 Pipeline 最后，限制返回的推荐条数。
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Fanout{...},
//	        &filter.FilterNode{...},
//	        &rerank.TopNNode{N: 10, ParamKey: "m"},
//	    },
//	}
type TopNNode struct {
	// N 要保留的文章数量，N <= 0 时不截断
	N int

	// ParamKey 非空时，请求参数中的同名值覆盖 N
	ParamKey string
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if n.ParamKey != "" {
		if v, ok := rctx.Param(n.ParamKey); ok {
			if m, ok := conv.ToInt64(v); ok {
				limit = int(m)
			}
		}
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
