package catalog

import "fmt"

type refKind uint8

const (
	refInvalid refKind = iota
	refByID
	refByTitle
)

// Ref 是文章引用的 tagged union：要么是 article_id，要么是精确标题。
// 零值 Ref 不指向任何文章，解析时返回 INVALID_ARTICLE_REF。
type Ref struct {
	kind  refKind
	id    int64
	title string
}

// ByID 按 article_id 引用文章。
func ByID(id int64) Ref {
	return Ref{kind: refByID, id: id}
}

// ByTitle 按精确标题引用文章。
func ByTitle(title string) Ref {
	return Ref{kind: refByTitle, title: title}
}

// RefFromAny 从动态值构造 Ref（用于 Pipeline 请求参数、配置等）。
// 整数（含整数值的浮点数）视为 ID，字符串视为标题；其他类型返回零值 Ref。
func RefFromAny(v any) Ref {
	switch val := v.(type) {
	case Ref:
		return val
	case int:
		return ByID(int64(val))
	case int64:
		return ByID(val)
	case int32:
		return ByID(int64(val))
	case float64:
		if val == float64(int64(val)) {
			return ByID(int64(val))
		}
	case string:
		return ByTitle(val)
	}
	return Ref{}
}

// IsValid 判断 Ref 是否有变体。
func (r Ref) IsValid() bool { return r.kind != refInvalid }

// ID 返回 ByID 变体的 ID。
func (r Ref) ID() (int64, bool) { return r.id, r.kind == refByID }

// Title 返回 ByTitle 变体的标题。
func (r Ref) Title() (string, bool) { return r.title, r.kind == refByTitle }

func (r Ref) String() string {
	switch r.kind {
	case refByID:
		return fmt.Sprintf("id:%d", r.id)
	case refByTitle:
		return fmt.Sprintf("title:%q", r.title)
	default:
		return "invalid"
	}
}
