package recall

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

// Content 是基于内容相似度的召回源：按用户阅读顺序，
// 每篇已读文章取 N 篇描述最相似的未读文章。
type Content struct {
	Engine ContentRecommender

	// M 返回条数，可被请求参数 "m" 覆盖
	M int

	// N 每篇已读文章取的相似文章数，可被请求参数 "n" 覆盖
	N int
}

func (r *Content) Name() string        { return "recall.content" }
func (r *Content) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Content) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil || rctx == nil || rctx.UserID == 0 {
		return nil, nil
	}
	if err := checkDeadline(ctx, "content"); err != nil {
		return nil, err
	}
	recs, err := r.Engine.ContentRecs(rctx.UserID, paramInt(rctx, ParamM, r.M), paramInt(rctx, ParamN, r.N))
	if err != nil {
		return nil, err
	}
	if err := checkDeadline(ctx, "content"); err != nil {
		return nil, err
	}
	return rankItems(recs, "content"), nil
}
