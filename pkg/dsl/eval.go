// Package dsl 是基于 CEL (Common Expression Language) 的 Label DSL，
// 用于在 Pipeline 中按文章 / Label / 请求参数写过滤规则。
//
// 表达式可访问的变量：
//   - item：id / title / score / meta / labels
//   - label：Label key -> value 的简写，例如 label.recall_source
//   - rctx：user_id / request_id / params
//
// 示例：
//   - `label.recall_source.contains("popular")`
//   - `item.score >= 2.0 && item.id != 1430`
//   - `"recall_source" in label && !item.title.startsWith("[draft]")`
//
// 访问不存在的 key 会报错，先用 `"key" in label` 判断存在性。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/artrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.MapType(cel.StringType, cel.StringType)),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expr 是编译好的布尔表达式，可被多个 goroutine 并发求值。
type Expr struct {
	source string
	prg    cel.Program
}

// Compile 编译表达式；空表达式恒为 true。
func Compile(expr string) (*Expr, error) {
	if expr == "" {
		return &Expr{}, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %w", expr, err)
	}
	return &Expr{source: expr, prg: prg}, nil
}

// MustCompile 与 Compile 相同，出错时 panic，用于包级变量初始化。
func MustCompile(expr string) *Expr {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String 返回原始表达式。
func (e *Expr) String() string { return e.source }

// Eval 对 item 求值。
func (e *Expr) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if e.prg == nil {
		return true, nil
	}
	out, _, err := e.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("dsl: eval %q: %w", e.source, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q must return bool, got %T", e.source, out.Value())
	}
	return result, nil
}

// Evaluate 编译并求值一次，适合一次性调用；热路径请复用 Compile 的结果。
func Evaluate(expr string, item *core.Item, rctx *core.RecommendContext) (bool, error) {
	e, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return e.Eval(item, rctx)
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	label := make(map[string]string)
	itemMap := map[string]any{
		"id":     int64(0),
		"title":  "",
		"score":  0.0,
		"meta":   map[string]any{},
		"labels": labels,
	}
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			label[k] = v.Value
		}
		itemMap["id"] = item.ID
		itemMap["title"] = item.Title
		itemMap["score"] = item.Score
		if item.Meta != nil {
			itemMap["meta"] = item.Meta
		}
	}

	rctxMap := map[string]any{
		"user_id":    int64(0),
		"request_id": "",
		"params":     map[string]any{},
	}
	if rctx != nil {
		rctxMap["user_id"] = rctx.UserID
		rctxMap["request_id"] = rctx.RequestID
		if rctx.Params != nil {
			rctxMap["params"] = rctx.Params
		}
	}

	return map[string]any{
		"item":  itemMap,
		"label": label,
		"rctx":  rctxMap,
	}
}
