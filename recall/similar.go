package recall

import (
	"context"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
)

// SimilarTo 召回与某篇文章最相似的文章（i2i）。
// 文章来自请求参数 "article"（ID 或标题），未设置时使用 Article。
type SimilarTo struct {
	Engine  SimilarArticleFinder
	Article catalog.Ref

	// N 返回条数，可被请求参数 "m" 覆盖
	N int
}

func (r *SimilarTo) Name() string        { return "recall.similar" }
func (r *SimilarTo) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *SimilarTo) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *SimilarTo) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil {
		return nil, nil
	}
	ref := r.Article
	if v, ok := rctx.Param(ParamArticle); ok {
		ref = catalog.RefFromAny(v)
	}
	if err := checkDeadline(ctx, "similar"); err != nil {
		return nil, err
	}
	sims, err := r.Engine.SimilarArticles(ref, paramInt(rctx, ParamM, r.N))
	if err != nil {
		return nil, err
	}
	if err := checkDeadline(ctx, "similar"); err != nil {
		return nil, err
	}
	out := make([]*core.Item, 0, len(sims))
	for _, s := range sims {
		it := core.NewItem(s.ArticleID)
		it.Title = s.Title
		it.Score = s.Score
		it.PutLabel(utils.LabelRecallSource, utils.RecallLabel("similar"))
		out = append(out, it)
	}
	return out, nil
}
