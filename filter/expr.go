package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/dsl"
)

// ExprFilter 用 CEL 表达式过滤：表达式为 true 的文章被过滤（Invert 时反之）。
//
//	filter.NewExprFilter(`item.score < 2.0`, false)
//	filter.NewExprFilter(`label.recall_source.contains("content")`, true) // 只保留内容召回
type ExprFilter struct {
	Expr   *dsl.Expr
	Invert bool
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string, invert bool) (*ExprFilter, error) {
	e, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Expr: e, Invert: invert}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	ok, err := f.Expr.Eval(item, rctx)
	if err != nil {
		return false, err
	}
	return ok != f.Invert, nil
}
