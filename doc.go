// Package adkit 是一个广告检索与混排工具包（Ad Kit）。
//
// 设计要点：
// - Pipeline-first: 广告链路通过 Node 串联（Expand → Recall → Filter → Rank → Slot）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 可降级: LLM 扩展、实时特征、排序模型失败时均有确定性兜底，请求不失败
package adkit

import "github.com/rushteam/adkit/pipeline"

// 轻量 facade：便于用户直接 import "adkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindExpand = pipeline.KindExpand
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindSlot   = pipeline.KindSlot
)
