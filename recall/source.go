package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/conv"
	"github.com/rushteam/artrec/pkg/utils"
	"github.com/rushteam/artrec/recommend"
)

// Source 表示一个可复用的召回源（热门 / user-user / 内容 / 相似文章）。
// 可以理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// 召回源依赖的引擎能力，*recommend.Engine 均已实现。
type (
	PopularityProvider interface {
		TopArticleCounts(n int) []recommend.ArticleCount
	}

	UserUserRecommender interface {
		UserUserRecs(userID int64, m int) ([]recommend.Recommendation, error)
	}

	ContentRecommender interface {
		ContentRecs(userID int64, m, n int) ([]recommend.Recommendation, error)
	}

	SimilarArticleFinder interface {
		SimilarArticles(ref catalog.Ref, n int) ([]recommend.ScoredArticle, error)
	}
)

var (
	_ PopularityProvider   = (*recommend.Engine)(nil)
	_ UserUserRecommender  = (*recommend.Engine)(nil)
	_ ContentRecommender   = (*recommend.Engine)(nil)
	_ SimilarArticleFinder = (*recommend.Engine)(nil)
)

// 请求参数 key（RecommendContext.Params）
const (
	ParamM       = "m"       // 覆盖推荐条数
	ParamN       = "n"       // 覆盖内容推荐中每篇已读文章取的相似文章数
	ParamArticle = "article" // 相似文章查询的文章 ID 或标题
)

// paramInt 读取整型请求参数，不存在或类型不符时返回 def。
func paramInt(rctx *core.RecommendContext, key string, def int) int {
	v, ok := rctx.Param(key)
	if !ok {
		return def
	}
	if n, ok := conv.ToInt64(v); ok {
		return int(n)
	}
	return def
}

// checkDeadline 在调用引擎前后检查请求是否已取消或超时。
// 引擎查询是同步的内存计算，Fanout 的超时只在这两个检查点生效。
func checkDeadline(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("recall %s: %w", source, err)
	}
	return nil
}

// rankItems 把有序推荐结果转换为 Item，Score 为名次倒序值（仅在同一召回源内可比）。
func rankItems(recs []recommend.Recommendation, source string) []*core.Item {
	out := make([]*core.Item, 0, len(recs))
	for i, r := range recs {
		it := core.NewItem(r.ArticleID)
		it.Title = r.Title
		it.Score = float64(len(recs) - i)
		it.Meta["rank"] = i
		it.PutLabel(utils.LabelRecallSource, utils.RecallLabel(source))
		out = append(out, it)
	}
	return out
}
