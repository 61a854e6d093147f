// Package similarity 实现文章内容相似度索引：对每篇文章的特征向量两两计算余弦相似度，
// 稠密存储在 n×n 矩阵中。
//
// 矩阵大小与文章数平方成正比，这是离线批量索引的规模约束；构建完成后只读。
package similarity

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/artrec/core"
)

// Scored 是一条相似文章结果。
type Scored struct {
	ArticleID int64
	Score     float64
}

// Index 是文章 × 文章的稠密相似度矩阵。
type Index struct {
	ids    []int64
	pos    map[int64]int
	scores *mat.Dense
}

// Option 配置索引构建。
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers 设置并发计算的行分片数，<= 0 时使用 GOMAXPROCS。
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// New 为 ids[i] 对应的 vectors[i] 构建相似度索引。
// 所有向量必须等长，ids 不能重复。
func New(ctx context.Context, ids []int64, vectors [][]float64, opts ...Option) (*Index, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	if len(ids) != len(vectors) {
		return nil, core.NewInvalidInputError(core.ModuleIndex,
			fmt.Sprintf("similarity: %d ids but %d vectors", len(ids), len(vectors)))
	}

	idx := &Index{
		ids: append([]int64(nil), ids...),
		pos: make(map[int64]int, len(ids)),
	}
	for i, id := range ids {
		if _, dup := idx.pos[id]; dup {
			return nil, core.NewInvalidInputError(core.ModuleIndex,
				fmt.Sprintf("similarity: duplicate article id %d", id))
		}
		idx.pos[id] = i
	}

	n := len(ids)
	if n == 0 {
		return idx, nil
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, core.NewInvalidInputError(core.ModuleIndex,
				fmt.Sprintf("similarity: vector %d has length %d, want %d", i, len(v), dim))
		}
	}

	normalized, zero := normalizeRows(vectors, dim)
	idx.scores = mat.NewDense(n, n, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			idx.fillRow(i, normalized, zero)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return idx, nil
}

// normalizeRows 返回 L2 归一化后的 n×dim 矩阵，以及全零向量标记。
func normalizeRows(vectors [][]float64, dim int) (*mat.Dense, []bool) {
	n := len(vectors)
	zero := make([]bool, n)
	if dim == 0 {
		for i := range zero {
			zero[i] = true
		}
		return nil, zero
	}

	m := mat.NewDense(n, dim, nil)
	for i, v := range vectors {
		row := mat.NewVecDense(dim, append([]float64(nil), v...))
		norm := mat.Norm(row, 2)
		if norm == 0 {
			zero[i] = true
			continue
		}
		row.ScaleVec(1/norm, row)
		m.SetRow(i, row.RawVector().Data)
	}
	return m, zero
}

// fillRow 计算第 i 行。不同 goroutine 只写各自的行。
func (x *Index) fillRow(i int, normalized *mat.Dense, zero []bool) {
	n := len(x.ids)
	if zero[i] {
		return
	}
	a := normalized.RowView(i)
	for j := 0; j < n; j++ {
		if j == i {
			x.scores.Set(i, j, 1)
			continue
		}
		if zero[j] {
			continue
		}
		s := mat.Dot(a, normalized.RowView(j))
		// 归一化后的点积可能因浮点误差略超出 [-1, 1]
		s = math.Max(-1, math.Min(1, s))
		x.scores.Set(i, j, s)
	}
}

// Len 返回索引中的文章数。
func (x *Index) Len() int { return len(x.ids) }

// IDs 返回文章 ID（索引顺序）。
func (x *Index) IDs() []int64 {
	return append([]int64(nil), x.ids...)
}

// Has 判断文章是否在索引中。
func (x *Index) Has(articleID int64) bool {
	_, ok := x.pos[articleID]
	return ok
}

// Score 返回两篇文章的相似度；a == b 时返回对角线上的自相似度。
func (x *Index) Score(a, b int64) (float64, bool) {
	i, ok := x.pos[a]
	if !ok {
		return 0, false
	}
	j, ok := x.pos[b]
	if !ok {
		return 0, false
	}
	return x.scores.At(i, j), true
}

// Similar 返回与 articleID 最相似的至多 n 篇文章（不含自身），分数降序，
// 分数相同按索引顺序。文章不在索引中时返回 nil, false。
func (x *Index) Similar(articleID int64, n int) ([]Scored, bool) {
	i, ok := x.pos[articleID]
	if !ok {
		return nil, false
	}
	if n <= 0 {
		return []Scored{}, true
	}

	row := x.scores.RawRowView(i)
	out := make([]Scored, 0, len(row)-1)
	for j, s := range row {
		if j == i {
			continue
		}
		out = append(out, Scored{ArticleID: x.ids[j], Score: s})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, true
}
