// Package feast 提供 Feast Feature Store 的在线特征客户端。
//
// 在广告链路中用于拉取实时统计特征（如分时 CTR），覆盖目录中的静态
// base_ctr；特征服务不可用时排序按静态值降级，不影响请求成功。
package feast

import "context"

// Client 是 Feast 在线特征客户端接口。
//
// Feast 是一个开源的 Feature Store，提供在线特征存储与特征服务。
// 参考：https://github.com/feast-dev/feast
//
// 使用方式：
//   - 使用官方 SDK 的 gRPC 实现（NewGrpcClient）
//   - 或自行实现此接口对接其他特征服务
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时预测）
	//
	// 参数示例：
	//   - Features: ["promotion_hourly_stats:ctr"]
	//   - EntityRows: [{"promotion_id": "aws-ec2-1"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["promotion_hourly_stats:ctr"]
	Features []string

	// EntityRows 实体行，例如 [{"promotion_id": "aws-ec2-1"}]
	EntityRows []map[string]any

	// Project 项目名称（可选，为空时使用客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征值集合。
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]any

	// EntityRow 对应的实体行
	EntityRow map[string]any
}
