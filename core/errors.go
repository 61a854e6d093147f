package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可穿透 fmt.Errorf("%w") 包装
//
// 使用场景：
//   - 推荐查询：UNKNOWN_USER, ARTICLE_NOT_FOUND, INVALID_ARTICLE_REF
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 构建索引：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "UNKNOWN_USER", "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "recommend", "store", "catalog"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 让 errors.Is 按 Module + Code 比较，消息内容不参与比较。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Module == "" || e.Module == t.Module)
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误

	// 推荐查询错误代码
	ErrorCodeUnknownUser       = "UNKNOWN_USER"        // 用户不在 user-item 矩阵中
	ErrorCodeArticleNotFound   = "ARTICLE_NOT_FOUND"   // 按标题找不到文章
	ErrorCodeInvalidArticleRef = "INVALID_ARTICLE_REF" // 文章引用既不是 ID 也不是标题
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleRecommend = "recommend" // 推荐引擎
	ModuleCatalog   = "catalog"   // 文章目录
	ModuleIndex     = "index"     // 相似度索引 / 矩阵
)

// 推荐查询错误定义
var (
	// ErrUnknownUser 用于 errors.Is 比较，具体错误请用 NewUnknownUserError 构造
	ErrUnknownUser = NewDomainError(ModuleRecommend, ErrorCodeUnknownUser, "recommend: unknown user")

	// ErrArticleNotFound 用于 errors.Is 比较
	ErrArticleNotFound = NewDomainError(ModuleCatalog, ErrorCodeArticleNotFound, "catalog: article not found")

	// ErrInvalidArticleRef 表示文章引用没有任何有效变体
	ErrInvalidArticleRef = NewDomainError(ModuleCatalog, ErrorCodeInvalidArticleRef, "catalog: invalid article reference, provide an article id or title")
)

// NewUnknownUserError 创建带用户 ID 的 UNKNOWN_USER 错误。
func NewUnknownUserError(userID int64) *DomainError {
	return NewDomainError(ModuleRecommend, ErrorCodeUnknownUser, fmt.Sprintf("recommend: unknown user %d", userID))
}

// NewArticleNotFoundError 创建带标题的 ARTICLE_NOT_FOUND 错误。
func NewArticleNotFoundError(title string) *DomainError {
	return NewDomainError(ModuleCatalog, ErrorCodeArticleNotFound, fmt.Sprintf("catalog: no article titled %q", title))
}

// NewInvalidInputError 创建 INVALID_INPUT 错误。
func NewInvalidInputError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeInvalidInput, message)
}

// 通用错误检查函数

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsUnknownUser 检查错误是否为 UNKNOWN_USER
func IsUnknownUser(err error) bool {
	return hasCode(err, ErrorCodeUnknownUser)
}

// IsArticleNotFound 检查错误是否为 ARTICLE_NOT_FOUND
func IsArticleNotFound(err error) bool {
	return hasCode(err, ErrorCodeArticleNotFound)
}

// IsInvalidArticleRef 检查错误是否为 INVALID_ARTICLE_REF
func IsInvalidArticleRef(err error) bool {
	return hasCode(err, ErrorCodeInvalidArticleRef)
}

// ErrorCode 返回错误代码，非 DomainError 返回 INTERNAL_ERROR，nil 返回空串。
// 主要用于日志与监控打点。
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code
	}
	return ErrorCodeInternalError
}
