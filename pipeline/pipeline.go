package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/artrec/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：召回 -> 过滤 -> 重排。
type Pipeline struct {
	Nodes []Node

	// Logger 为空时不输出逐节点日志
	Logger *zerolog.Logger
}

// Run 依次执行所有 Node，任一 Node 出错即中止并返回带节点名的错误。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline: node %s: %w", node.Name(), err)
		}
		if p.Logger != nil {
			ev := p.Logger.Debug().
				Str("node", node.Name()).
				Str("kind", string(node.Kind())).
				Int("in", len(cur)).
				Int("out", len(next)).
				Dur("took", time.Since(start))
			if rctx != nil {
				ev = ev.Str("request_id", rctx.RequestID).Int64("user_id", rctx.UserID)
			}
			ev.Msg("pipeline node done")
		}
		cur = next
	}
	return cur, nil
}
