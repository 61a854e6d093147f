// Package catalog 管理文章目录：按 article_id 去重（保留第一次出现）并支持按 ID / 标题解析文章。
package catalog

import "github.com/rushteam/artrec/core"

// Record 是一篇文章的目录记录。
type Record struct {
	ArticleID   int64
	Title       string
	Description string
}

// Catalog 是只读的文章目录，记录顺序即去重后的原始顺序。
type Catalog struct {
	records []Record
	index   map[int64]int    // article_id -> records 下标
	byTitle map[string]int64 // 标题 -> 第一篇同名文章
}

// New 构建目录；重复的 article_id 只保留第一次出现的记录。
func New(records []Record) *Catalog {
	c := &Catalog{
		records: make([]Record, 0, len(records)),
		index:   make(map[int64]int, len(records)),
		byTitle: make(map[string]int64, len(records)),
	}
	for _, r := range records {
		if _, ok := c.index[r.ArticleID]; ok {
			continue
		}
		c.index[r.ArticleID] = len(c.records)
		c.records = append(c.records, r)
		if _, ok := c.byTitle[r.Title]; !ok {
			c.byTitle[r.Title] = r.ArticleID
		}
	}
	return c
}

// Len 返回去重后的文章数。
func (c *Catalog) Len() int { return len(c.records) }

// Records 返回记录副本（目录顺序）。
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// IDs 返回文章 ID（目录顺序）。
func (c *Catalog) IDs() []int64 {
	out := make([]int64, len(c.records))
	for i, r := range c.records {
		out[i] = r.ArticleID
	}
	return out
}

// Descriptions 返回文章描述（目录顺序），供文本向量化使用。
func (c *Catalog) Descriptions() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Description
	}
	return out
}

// Get 按 ID 获取记录。
func (c *Catalog) Get(articleID int64) (Record, bool) {
	i, ok := c.index[articleID]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Has 判断文章是否在目录中。
func (c *Catalog) Has(articleID int64) bool {
	_, ok := c.index[articleID]
	return ok
}

// Title 返回文章标题。
func (c *Catalog) Title(articleID int64) (string, bool) {
	r, ok := c.Get(articleID)
	return r.Title, ok
}

// Resolve 把文章引用解析为 article_id。
//   - ByID：原样返回，是否存在由调用方判断（不存在时相似文章为空结果而非错误）
//   - ByTitle：精确匹配标题，多篇同名时取目录中的第一篇；找不到返回 ARTICLE_NOT_FOUND
//   - 零值 Ref：返回 INVALID_ARTICLE_REF
func (c *Catalog) Resolve(ref Ref) (int64, error) {
	switch ref.kind {
	case refByID:
		return ref.id, nil
	case refByTitle:
		id, ok := c.byTitle[ref.title]
		if !ok {
			return 0, core.NewArticleNotFoundError(ref.title)
		}
		return id, nil
	default:
		return 0, core.ErrInvalidArticleRef
	}
}
