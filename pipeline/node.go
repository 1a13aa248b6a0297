package pipeline

import (
	"context"

	"github.com/rushteam/adkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindExpand Kind = "expand" // 扩展阶段：生成查询变体
	KindRecall Kind = "recall" // 召回阶段：按变体检索候选促销
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合投放规则的候选
	KindRank   Kind = "rank"   // 排序阶段：对候选打分并排序
	KindSlot   Kind = "slot"   // 槽位阶段：把促销插入自然结果列表
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态：扩展阶段写 rctx 透传 items，
// 召回阶段凭空生成 items，槽位阶段输出带 organic/sponsored 标签的合并列表。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.AdContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
