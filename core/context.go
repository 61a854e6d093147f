package core

import (
	"github.com/google/uuid"

	"github.com/rushteam/artrec/pkg/utils"
)

// RecommendContext 承载用户/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// UserID 是映射后的稠密用户 ID（从 1 开始），0 表示匿名请求
	UserID int64

	// RequestID 用于日志关联，为空时由 NewRecommendContext 生成
	RequestID string

	// Labels 是请求级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数，例如：
	// - "article": 相似文章查询的文章 ID (int64) 或标题 (string)
	// - "m" / "n": 覆盖默认返回条数
	Params map[string]any
}

// NewRecommendContext 创建一个带 RequestID 的上下文。
func NewRecommendContext(userID int64) *RecommendContext {
	return &RecommendContext{
		UserID:    userID,
		RequestID: uuid.NewString(),
		Labels:    make(map[string]utils.Label),
		Params:    make(map[string]any),
	}
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// Param 读取请求参数，不存在时返回 nil, false。
func (rctx *RecommendContext) Param(key string) (any, bool) {
	if rctx == nil || rctx.Params == nil {
		return nil, false
	}
	v, ok := rctx.Params[key]
	return v, ok
}
