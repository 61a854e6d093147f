package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// SeenChecker 判断用户是否读过文章，matrix.UserItem 实现了该接口。
type SeenChecker interface {
	Has(userID, articleID int64) bool
}

// SeenFilter 过滤掉用户已经读过的文章，常用于 Fanout 合并热门榜之后。
// 匿名请求（UserID == 0）不过滤。
type SeenFilter struct {
	Seen SeenChecker
}

func NewSeenFilter(seen SeenChecker) *SeenFilter {
	return &SeenFilter{Seen: seen}
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Seen == nil || rctx == nil || rctx.UserID == 0 {
		return false, nil
	}
	return f.Seen.Has(rctx.UserID, item.ID), nil
}
