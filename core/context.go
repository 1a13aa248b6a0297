package core

import "github.com/rushteam/adkit/pkg/utils"

// AdContext 承载一次请求的查询/用户/场景信息，贯穿整个 Pipeline 透传。
type AdContext struct {
	// Query 原始查询串
	Query string

	// Variants 扩展后的查询变体（由扩展阶段写入，召回阶段消费）
	Variants []string

	// User 是强类型用户画像；为空表示匿名请求，个性化加权全部为 0
	User *UserProfile

	// Organic 自然结果列表（槽位优化阶段使用，核心只读不改）
	Organic []string

	// Labels 请求级标签，可驱动整个 Pipeline 行为
	// 例如：降级模式、实验分组
	Labels map[string]utils.Label

	// Params 请求级上下文参数（targeting 表达式、实时信号等）
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *AdContext) PutLabel(key string, lbl utils.Label) {
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
func (rctx *AdContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
