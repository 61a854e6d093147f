package recall

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

// UserUser 是 user-user 协同过滤召回源（u2u2i）：
// 邻居按共同阅读数排序，依次贡献邻居读过而当前用户未读的文章。
//
// 匿名请求（UserID == 0）返回空结果；矩阵中不存在的用户返回 UNKNOWN_USER。
type UserUser struct {
	Engine UserUserRecommender

	// M 返回条数，可被请求参数 "m" 覆盖
	M int
}

func (r *UserUser) Name() string        { return "recall.user_user" }
func (r *UserUser) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *UserUser) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *UserUser) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil || rctx == nil || rctx.UserID == 0 {
		return nil, nil
	}
	if err := checkDeadline(ctx, "user_user"); err != nil {
		return nil, err
	}
	recs, err := r.Engine.UserUserRecs(rctx.UserID, paramInt(rctx, ParamM, r.M))
	if err != nil {
		return nil, err
	}
	if err := checkDeadline(ctx, "user_user"); err != nil {
		return nil, err
	}
	return rankItems(recs, "user_user"), nil
}
