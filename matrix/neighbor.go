package matrix

import "sort"

// Neighbor 是相对某个目标用户的邻居。
type Neighbor struct {
	UserID int64
	Shared int // 与目标用户共同读过的文章数
	Total  int // 邻居自身的交互次数
}

// NeighborRanker 按行为相似度给目标用户的所有其他用户排序。
//
// 排序 key：Shared 降序 → Total 降序（偏向更活跃的用户）→ UserID 升序。
// 结果不缓存，每次查询重新计算。
type NeighborRanker struct {
	Matrix *UserItem
}

// NewNeighborRanker 创建邻居排序器。
func NewNeighborRanker(m *UserItem) *NeighborRanker {
	return &NeighborRanker{Matrix: m}
}

// RankNeighbors 返回除目标用户外的全部用户，按相似度排序。
// 没有共同文章的用户也会出现在结果末尾。
func (r *NeighborRanker) RankNeighbors(target int64) ([]Neighbor, error) {
	if _, err := r.Matrix.Seen(target); err != nil {
		return nil, err
	}

	out := make([]Neighbor, 0, r.Matrix.NumUsers())
	for _, u := range r.Matrix.users {
		if u == target {
			continue
		}
		out = append(out, Neighbor{
			UserID: u,
			Shared: r.Matrix.Shared(target, u),
			Total:  r.Matrix.Total(u),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Shared != b.Shared {
			return a.Shared > b.Shared
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.UserID < b.UserID
	})
	return out, nil
}
