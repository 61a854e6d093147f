package interaction

import "sync"

// IDMapper 把不透明的用户 key（例如邮箱）映射为稠密的整数 ID。
// 映射是单射的：第一次出现的 key 分配下一个整数，从 1 开始。
type IDMapper struct {
	mu   sync.Mutex
	ids  map[string]int64
	next int64
}

// NewIDMapper 创建一个空映射。
func NewIDMapper() *IDMapper {
	return &IDMapper{
		ids:  make(map[string]int64),
		next: 1,
	}
}

// ID 返回 key 对应的 ID，首次出现时分配新 ID。
func (m *IDMapper) ID(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.ids[key]; ok {
		return id
	}
	id := m.next
	m.ids[key] = id
	m.next++
	return id
}

// Lookup 查询 key 的 ID，不分配。
func (m *IDMapper) Lookup(key string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.ids[key]
	return id, ok
}

// Len 返回已分配的 ID 数。
func (m *IDMapper) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}
