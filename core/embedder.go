package core

import "context"

// Embedder 是文本向量化的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（vector）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 目录向量与查询向量必须来自同一实现（同一向量空间）
//
// 实现：
//   - vector.LocalEmbedder 实现此接口（确定性本地向量，测试/兜底）
//   - vector.OpenAIEmbedder 实现此接口（OpenAI 兼容 API）
//   - vector.CachedEmbedder 实现此接口（带 Store 缓存的装饰器）
type Embedder interface {
	// Name 返回实现名称（用于日志/诊断）
	Name() string

	// Dim 返回向量维度
	Dim() int

	// Embed 将文本编码为向量
	Embed(ctx context.Context, text string) ([]float64, error)
}
