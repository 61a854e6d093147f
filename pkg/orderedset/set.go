// Package orderedset 提供保持插入顺序的集合：重复插入在 O(1) 内被拒绝，
// 迭代顺序即首次插入顺序。用于多来源候选合并（先到先得）。
package orderedset

// Set 是保持插入顺序的集合，零值不可用，请使用 New。
type Set[T comparable] struct {
	index map[T]struct{}
	items []T
}

// New 创建一个容量提示为 size 的集合。
func New[T comparable](size int) *Set[T] {
	if size < 0 {
		size = 0
	}
	return &Set[T]{
		index: make(map[T]struct{}, size),
		items: make([]T, 0, size),
	}
}

// Add 插入 v，返回是否为新元素。已存在的元素保持原位置。
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// AddAll 依次插入 vs，返回新插入的数量。
func (s *Set[T]) AddAll(vs ...T) int {
	added := 0
	for _, v := range vs {
		if s.Add(v) {
			added++
		}
	}
	return added
}

// Contains 判断 v 是否存在。
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len 返回元素个数。
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Items 返回按插入顺序排列的元素副本。
func (s *Set[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Head 返回前 n 个元素的副本；n <= 0 返回空切片，n 超出长度时返回全部。
func (s *Set[T]) Head(n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(s.items) {
		n = len(s.items)
	}
	out := make([]T, n)
	copy(out, s.items[:n])
	return out
}
