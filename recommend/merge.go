package recommend

import "github.com/rushteam/artrec/pkg/orderedset"

// accumulator 按来源优先级累积候选：先到先得去重，排除已读，达到 limit 后停止。
type accumulator struct {
	set     *orderedset.Set[int64]
	exclude map[int64]struct{}
	limit   int
}

// newAccumulator 创建累积器；universe 是候选文章总数的上界，用作容量提示，
// limit 可以远大于实际候选数。
func newAccumulator(limit, universe int, exclude map[int64]struct{}) *accumulator {
	return &accumulator{
		set:     orderedset.New[int64](min(limit, universe)),
		exclude: exclude,
		limit:   limit,
	}
}

// offer 追加一个来源的全部候选（保持来源内顺序），返回是否已满。
// 同一来源的候选整体加入，截断在 result 中完成。
func (a *accumulator) offer(ids []int64) bool {
	for _, id := range ids {
		if _, seen := a.exclude[id]; seen {
			continue
		}
		a.set.Add(id)
	}
	return a.full()
}

func (a *accumulator) full() bool {
	return a.set.Len() >= a.limit
}

func (a *accumulator) result() []int64 {
	return a.set.Head(a.limit)
}
