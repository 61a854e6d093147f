package recommend

import (
	"time"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/matrix"
	"github.com/rushteam/artrec/pkg/metrics"
)

// TopArticles 返回交互次数最多的 n 篇文章，次数相同按首次出现顺序。
// n <= 0 返回空结果，n 超过文章总数时返回全部。
func (e *Engine) TopArticles(n int) []Recommendation {
	defer metrics.ObserveQuery(metrics.StrategyTop, time.Now(), "")
	if n <= 0 {
		return []Recommendation{}
	}
	if n > len(e.popular) {
		n = len(e.popular)
	}
	out := make([]Recommendation, n)
	for i, ac := range e.popular[:n] {
		out[i] = Recommendation{ArticleID: ac.ArticleID, Title: ac.Title}
	}
	return out
}

// TopArticleCounts 返回前 n 篇热门文章及其交互次数，供热门快照发布使用。
func (e *Engine) TopArticleCounts(n int) []ArticleCount {
	if n <= 0 || n > len(e.popular) {
		n = len(e.popular)
	}
	out := make([]ArticleCount, n)
	for i, ac := range e.popular[:n] {
		out[i] = ArticleCount{ArticleID: ac.ArticleID, Title: ac.Title, Count: ac.Count}
	}
	return out
}

// ArticleCount 是文章与其总交互次数。
type ArticleCount struct {
	ArticleID int64
	Title     string
	Count     int
}

// UserUserRecs 基于 user-user 协同过滤为用户推荐至多 m 篇未读文章。
//
// 邻居按相似度顺序依次贡献“邻居已读 - 用户已读”的文章，去重保留最早位置；
// 候选数达到 m 后不再查看后续邻居。
//
// 同一邻居贡献的文章按该邻居首次阅读的顺序排列（不按文章 ID，也不按全局首次出现顺序）。
// m 可以取任意大的值（例如 math.MaxInt），此时返回全部候选。
func (e *Engine) UserUserRecs(userID int64, m int) (recs []Recommendation, err error) {
	defer func(start time.Time) {
		metrics.ObserveQuery(metrics.StrategyUserUser, start, core.ErrorCode(err))
	}(time.Now())

	seen, err := e.matrix.Seen(userID)
	if err != nil {
		return nil, err
	}
	if m <= 0 {
		return []Recommendation{}, nil
	}
	neighbors, err := e.neighbors.RankNeighbors(userID)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(m, len(e.popular), seen)
	consulted := 0
	for _, nb := range neighbors {
		consulted++
		ids, err := e.matrix.SeenOrdered(nb.UserID)
		if err != nil {
			return nil, err
		}
		if acc.offer(ids) {
			break
		}
	}

	ids := acc.result()
	e.logger.Debug().
		Int64("user_id", userID).
		Int("m", m).
		Int("neighbors", consulted).
		Int("results", len(ids)).
		Msg("user-user recs")
	return e.titlesFromLog(ids), nil
}

// SimilarArticles 返回与 ref 指向的文章最相似的至多 n 篇文章（不含自身）。
// 文章 ID 不在目录中时返回空结果；标题找不到返回 ARTICLE_NOT_FOUND；
// 零值 ref 返回 INVALID_ARTICLE_REF。
func (e *Engine) SimilarArticles(ref catalog.Ref, n int) (out []ScoredArticle, err error) {
	defer func(start time.Time) {
		metrics.ObserveQuery(metrics.StrategySimilar, start, core.ErrorCode(err))
	}(time.Now())

	id, err := e.catalog.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if !e.catalog.Has(id) {
		return []ScoredArticle{}, nil
	}
	sims, ok := e.index.Similar(id, n)
	if !ok {
		return []ScoredArticle{}, nil
	}
	out = make([]ScoredArticle, 0, len(sims))
	for _, s := range sims {
		title, _ := e.catalog.Title(s.ArticleID)
		out = append(out, ScoredArticle{ArticleID: s.ArticleID, Title: title, Score: s.Score})
	}
	return out, nil
}

// ContentRecs 基于内容相似度为用户推荐至多 m 篇未读文章。
//
// 按用户阅读顺序，每篇已读文章取至多 n 篇相似文章，去掉已读后合并（先到先得），
// 候选数达到 m 后停止。没有相似度数据的已读文章被跳过。
func (e *Engine) ContentRecs(userID int64, m, n int) (recs []Recommendation, err error) {
	defer func(start time.Time) {
		metrics.ObserveQuery(metrics.StrategyContent, start, core.ErrorCode(err))
	}(time.Now())

	seen, err := e.matrix.Seen(userID)
	if err != nil {
		return nil, err
	}
	if m <= 0 {
		return []Recommendation{}, nil
	}
	order, err := e.matrix.SeenOrdered(userID)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(m, e.index.Len(), seen)
	skipped := 0
	for _, articleID := range order {
		sims, ok := e.index.Similar(articleID, n)
		if !ok {
			skipped++
			continue
		}
		ids := make([]int64, len(sims))
		for i, s := range sims {
			ids[i] = s.ArticleID
		}
		if acc.offer(ids) {
			break
		}
	}

	ids := acc.result()
	e.logger.Debug().
		Int64("user_id", userID).
		Int("m", m).
		Int("n", n).
		Int("skipped", skipped).
		Int("results", len(ids)).
		Msg("content recs")

	out := make([]Recommendation, len(ids))
	for i, id := range ids {
		title, _ := e.catalog.Title(id)
		out[i] = Recommendation{ArticleID: id, Title: title}
	}
	return out, nil
}

// UserArticles 返回用户读过的文章（按首次阅读顺序），标题取自交互记录。
func (e *Engine) UserArticles(userID int64) ([]Recommendation, error) {
	ids, err := e.matrix.SeenOrdered(userID)
	if err != nil {
		return nil, err
	}
	return e.titlesFromLog(ids), nil
}

// ArticleTitles 返回文章标题（取交互记录），未知文章为空串。
func (e *Engine) ArticleTitles(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i], _ = e.interactions.Title(id)
	}
	return out
}

// RankNeighbors 返回用户的邻居排序，用于解释与调试。
func (e *Engine) RankNeighbors(userID int64) ([]matrix.Neighbor, error) {
	return e.neighbors.RankNeighbors(userID)
}

// HasUser 判断用户是否有交互记录。
func (e *Engine) HasUser(userID int64) bool {
	return e.matrix.HasUser(userID)
}

func (e *Engine) titlesFromLog(ids []int64) []Recommendation {
	out := make([]Recommendation, len(ids))
	for i, id := range ids {
		title, _ := e.interactions.Title(id)
		out[i] = Recommendation{ArticleID: id, Title: title}
	}
	return out
}
