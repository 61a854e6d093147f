package core

// RecommendConfig 提供各推荐策略的默认返回条数。
type RecommendConfig interface {
	// DefaultTopN 返回热门榜默认条数
	DefaultTopN() int

	// DefaultUserRecs 返回 user-user 协同过滤默认条数（m）
	DefaultUserRecs() int

	// DefaultContentRecs 返回内容推荐默认条数（m）
	DefaultContentRecs() int

	// DefaultSimilarPerArticle 返回内容推荐中每篇已读文章取的相似文章数（n）
	DefaultSimilarPerArticle() int
}

// DefaultRecommendConfig 是默认配置实现，与离线 demo 的参数一致。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopN() int { return 10 }

func (c *DefaultRecommendConfig) DefaultUserRecs() int { return 10 }

func (c *DefaultRecommendConfig) DefaultContentRecs() int { return 10 }

func (c *DefaultRecommendConfig) DefaultSimilarPerArticle() int { return 2 }

var _ RecommendConfig = (*DefaultRecommendConfig)(nil)
