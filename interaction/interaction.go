// Package interaction 保存原始的 (用户, 文章) 交互事件，并派生出按用户、按文章的统计。
//
// Store 在构造完成后只读，可被多个 goroutine 并发查询。
package interaction

import "sort"

// Interaction 是一次用户阅读文章的事件。
type Interaction struct {
	UserID    int64
	ArticleID int64
	Title     string
}

// ArticleCount 是文章的总交互次数（含同一用户的重复交互）。
type ArticleCount struct {
	ArticleID int64
	Title     string
	Count     int
}

// Store 是只读的交互事件集合。
type Store struct {
	events []Interaction

	// 文章首次出现顺序，用于热门榜的稳定排序
	articleOrder []int64
	articleCount map[int64]int
	articleTitle map[int64]string // 取该文章第一条交互记录的标题

	userCount map[int64]int
	users     []int64 // 升序
}

// NewStore 从事件列表构建 Store，events 的顺序即“遇到顺序”。
func NewStore(events []Interaction) *Store {
	s := &Store{
		events:       make([]Interaction, len(events)),
		articleCount: make(map[int64]int),
		articleTitle: make(map[int64]string),
		userCount:    make(map[int64]int),
	}
	copy(s.events, events)

	for _, ev := range s.events {
		if _, ok := s.articleCount[ev.ArticleID]; !ok {
			s.articleOrder = append(s.articleOrder, ev.ArticleID)
			s.articleTitle[ev.ArticleID] = ev.Title
		}
		s.articleCount[ev.ArticleID]++

		if _, ok := s.userCount[ev.UserID]; !ok {
			s.users = append(s.users, ev.UserID)
		}
		s.userCount[ev.UserID]++
	}
	sort.Slice(s.users, func(i, j int) bool { return s.users[i] < s.users[j] })
	return s
}

// Len 返回事件总数。
func (s *Store) Len() int { return len(s.events) }

// Events 返回事件副本（按遇到顺序）。
func (s *Store) Events() []Interaction {
	out := make([]Interaction, len(s.events))
	copy(out, s.events)
	return out
}

// Each 按遇到顺序遍历事件，fn 返回 false 时停止。
func (s *Store) Each(fn func(Interaction) bool) {
	for _, ev := range s.events {
		if !fn(ev) {
			return
		}
	}
}

// Users 返回所有用户 ID（升序）。
func (s *Store) Users() []int64 {
	out := make([]int64, len(s.users))
	copy(out, s.users)
	return out
}

// HasUser 判断用户是否有过交互。
func (s *Store) HasUser(userID int64) bool {
	_, ok := s.userCount[userID]
	return ok
}

// UserInteractions 返回用户的交互事件数（重复阅读也计数），未知用户返回 0。
func (s *Store) UserInteractions(userID int64) int {
	return s.userCount[userID]
}

// ArticleInteractions 返回文章的交互事件数，未知文章返回 0。
func (s *Store) ArticleInteractions(articleID int64) int {
	return s.articleCount[articleID]
}

// Title 返回文章标题（取第一条交互记录）。
func (s *Store) Title(articleID int64) (string, bool) {
	t, ok := s.articleTitle[articleID]
	return t, ok
}

// Articles 返回所有出现过的文章 ID（按首次出现顺序）。
func (s *Store) Articles() []int64 {
	out := make([]int64, len(s.articleOrder))
	copy(out, s.articleOrder)
	return out
}

// ArticleCounts 返回按交互次数降序排列的文章统计，次数相同按首次出现顺序。
func (s *Store) ArticleCounts() []ArticleCount {
	out := make([]ArticleCount, 0, len(s.articleOrder))
	for _, id := range s.articleOrder {
		out = append(out, ArticleCount{
			ArticleID: id,
			Title:     s.articleTitle[id],
			Count:     s.articleCount[id],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
