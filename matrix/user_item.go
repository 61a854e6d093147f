// Package matrix 实现二值的 user-item 交互矩阵以及基于共同阅读数的邻居排序。
//
// 矩阵在构造后只读；Seen 返回的集合是内部数据，调用方不得修改。
package matrix

import (
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/interaction"
)

// UserItem 是二值 user-item 矩阵：只记录“是否读过”，不记录次数。
type UserItem struct {
	seen  map[int64]map[int64]struct{}
	order map[int64][]int64 // 用户读过的文章，按该用户首次阅读顺序
	users []int64           // 升序

	// 用户的原始交互次数（含重复），用于邻居排序的次级 key
	totals map[int64]int
}

// NewUserItem 从交互事件构建矩阵，重复交互是幂等的。
func NewUserItem(store *interaction.Store) *UserItem {
	m := &UserItem{
		seen:   make(map[int64]map[int64]struct{}),
		order:  make(map[int64][]int64),
		totals: make(map[int64]int),
	}
	store.Each(func(ev interaction.Interaction) bool {
		row, ok := m.seen[ev.UserID]
		if !ok {
			row = make(map[int64]struct{})
			m.seen[ev.UserID] = row
		}
		if _, dup := row[ev.ArticleID]; !dup {
			row[ev.ArticleID] = struct{}{}
			m.order[ev.UserID] = append(m.order[ev.UserID], ev.ArticleID)
		}
		return true
	})
	m.users = store.Users()
	for _, u := range m.users {
		m.totals[u] = store.UserInteractions(u)
	}
	return m
}

// HasUser 判断用户是否在矩阵中。
func (m *UserItem) HasUser(userID int64) bool {
	_, ok := m.seen[userID]
	return ok
}

// Has 判断用户是否读过文章，未知用户返回 false。
func (m *UserItem) Has(userID, articleID int64) bool {
	_, ok := m.seen[userID][articleID]
	return ok
}

// Seen 返回用户读过的文章集合（只读）。
func (m *UserItem) Seen(userID int64) (map[int64]struct{}, error) {
	row, ok := m.seen[userID]
	if !ok {
		return nil, core.NewUnknownUserError(userID)
	}
	return row, nil
}

// SeenOrdered 返回用户读过的文章，按首次阅读顺序。
func (m *UserItem) SeenOrdered(userID int64) ([]int64, error) {
	ids, ok := m.order[userID]
	if !ok {
		return nil, core.NewUnknownUserError(userID)
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}

// Users 返回所有用户 ID（升序）。
func (m *UserItem) Users() []int64 {
	out := make([]int64, len(m.users))
	copy(out, m.users)
	return out
}

// NumUsers 返回用户数。
func (m *UserItem) NumUsers() int { return len(m.users) }

// Total 返回用户的原始交互次数。
func (m *UserItem) Total(userID int64) int { return m.totals[userID] }

// Shared 返回两个用户共同读过的文章数，等价于两个二值行向量的点积。
func (m *UserItem) Shared(a, b int64) int {
	ra, rb := m.seen[a], m.seen[b]
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	n := 0
	for id := range ra {
		if _, ok := rb[id]; ok {
			n++
		}
	}
	return n
}
