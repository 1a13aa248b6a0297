package model

// RankModel 是排序阶段的最小抽象：输入特征，输出一个可比较的分数。
// 具体实现可以是确定性公式（CTRModel）、本地模型（LRModel）或远程
// 服务（RPCModel / service.MLService）。
//
// 约定：实现失败不应使排序失败，rank 节点会降级到确定性公式。
type RankModel interface {
	Name() string
	Predict(features map[string]float64) (float64, error)
}
