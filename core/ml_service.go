package core

import "context"

// MLService 是机器学习服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（service）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - CTR/CVR 预估：model.RPCModel 通过此接口调用外部打分服务
//
// 约定：调用失败或超时不会使排序失败，上层按确定性公式降级。
//
// 实现：
//   - service.HTTPClient 实现此接口
//   - 其他模型服务（TF Serving、TorchServe 等）也可以实现此接口
type MLService interface {
	// Predict 批量预测
	Predict(ctx context.Context, req *MLPredictRequest) (*MLPredictResponse, error)

	// Health 健康检查
	Health(ctx context.Context) error

	// Close 关闭连接
	Close() error
}

// MLPredictRequest 预测请求。
type MLPredictRequest struct {
	// Features 特征字典列表，每个元素对应一个候选
	Features []map[string]float64 `json:"features"`

	// ModelName 模型名称（可选，服务支持多模型时使用）
	ModelName string `json:"model_name,omitempty"`

	// ModelVersion 模型版本（可选）
	ModelVersion string `json:"model_version,omitempty"`
}

// MLPredictResponse 预测响应。
type MLPredictResponse struct {
	// Predictions 预测结果，与请求候选一一对应
	Predictions []float64 `json:"predictions"`

	// ModelVersion 模型版本（如果服务返回）
	ModelVersion string `json:"model_version,omitempty"`
}
