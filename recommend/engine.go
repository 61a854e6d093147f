// Package recommend 是推荐引擎：热门榜、user-user 协同过滤、内容相似推荐与相似文章查询。
//
// Engine 由 New / Build 一次性构建，之后只读，所有查询方法可被并发调用且无需加锁。
//
//	eng, err := recommend.Build(ctx, interactions, cat, text.NewTFIDF(),
//		recommend.WithLogger(logging.Component("recommend")))
//	recs, err := eng.UserUserRecs(userID, 10)
package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/interaction"
	"github.com/rushteam/artrec/matrix"
	"github.com/rushteam/artrec/pkg/metrics"
	"github.com/rushteam/artrec/similarity"
)

// Recommendation 是一条推荐结果。
type Recommendation struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
}

// ScoredArticle 是一条相似文章结果。
type ScoredArticle struct {
	ArticleID int64   `json:"article_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
}

// Vectorizer 把文章描述转换为定长特征向量，text.TFIDF 实现了该接口。
type Vectorizer interface {
	FitTransform(docs []string) [][]float64
}

// Engine 持有交互数据、user-item 矩阵与文章相似度索引。
type Engine struct {
	interactions *interaction.Store
	catalog      *catalog.Catalog
	matrix       *matrix.UserItem
	neighbors    *matrix.NeighborRanker
	index        *similarity.Index

	// 热门榜在构建时排好，查询只做截断
	popular []interaction.ArticleCount

	logger zerolog.Logger
}

// Option 配置 Engine 构建。
type Option func(*options)

type options struct {
	logger  zerolog.Logger
	workers int
}

// WithLogger 设置日志，默认不输出。
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWorkers 设置相似度矩阵的并发构建数。
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// New 构建引擎；vectors 与目录顺序（cat.IDs()）一一对应。
func New(ctx context.Context, interactions *interaction.Store, cat *catalog.Catalog, vectors [][]float64, opts ...Option) (*Engine, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if interactions == nil {
		interactions = interaction.NewStore(nil)
	}
	if cat == nil {
		cat = catalog.New(nil)
	}

	start := time.Now()
	m := matrix.NewUserItem(interactions)
	metrics.ObserveBuild("matrix", start)

	start = time.Now()
	idx, err := similarity.New(ctx, cat.IDs(), vectors, similarity.WithWorkers(o.workers))
	if err != nil {
		return nil, err
	}
	metrics.ObserveBuild("similarity", start)

	e := &Engine{
		interactions: interactions,
		catalog:      cat,
		matrix:       m,
		neighbors:    matrix.NewNeighborRanker(m),
		index:        idx,
		popular:      interactions.ArticleCounts(),
		logger:       o.logger,
	}

	metrics.MatrixUsers.Set(float64(m.NumUsers()))
	metrics.CatalogArticles.Set(float64(idx.Len()))
	e.logger.Info().
		Int("interactions", interactions.Len()).
		Int("users", m.NumUsers()).
		Int("articles", len(e.popular)).
		Int("catalog", idx.Len()).
		Msg("recommend engine built")
	return e, nil
}

// Build 先用 vectorizer 把目录描述向量化，再调用 New。
func Build(ctx context.Context, interactions *interaction.Store, cat *catalog.Catalog, vectorizer Vectorizer, opts ...Option) (*Engine, error) {
	if cat == nil {
		cat = catalog.New(nil)
	}
	start := time.Now()
	vectors := vectorizer.FitTransform(cat.Descriptions())
	metrics.ObserveBuild("vectorize", start)
	return New(ctx, interactions, cat, vectors, opts...)
}

// Catalog 返回文章目录。
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Matrix 返回 user-item 矩阵（只读）。
func (e *Engine) Matrix() *matrix.UserItem { return e.matrix }

// Index 返回文章相似度索引（只读）。
func (e *Engine) Index() *similarity.Index { return e.index }
