// Package filter 在召回之后剔除候选文章：用户已读、黑名单、CEL 表达式命中。
// 过滤只删除不重排，保留下来的文章维持召回顺序。
package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// Filter 判断一篇候选文章是否应被剔除，返回 true 表示剔除。
// 返回 error 时 FilterNode 记录日志并保留该文章。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

var (
	_ Filter = (*SeenFilter)(nil)
	_ Filter = (*BlacklistFilter)(nil)
	_ Filter = (*ExprFilter)(nil)
)
