package vector

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/rushteam/adkit/core"
)

// OpenAIEmbedder 是基于 OpenAI 兼容 API 的 Embedding 实现。
// BaseURL 可指向任意兼容服务（OpenAI、Azure、自建网关等）。
type OpenAIEmbedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	logger     *zap.Logger
}

// OpenAIConfig 是 OpenAIEmbedder 的配置。
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string // 为空时使用官方默认地址
	Model      string // 为空时使用 text-embedding-3-small
	Dimensions int    // 需与目录向量维度一致
	Logger     *zap.Logger
}

// NewOpenAIEmbedder 创建一个 OpenAI 兼容的 Embedder。
func NewOpenAIEmbedder(cfg *OpenAIConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(model),
		dimensions: cfg.Dimensions,
		logger:     logger,
	}
}

func (e *OpenAIEmbedder) Name() string { return "openai" }

func (e *OpenAIEmbedder) Dim() int { return e.dimensions }

// Embed 调用 Embedding API；失败时返回 UNAVAILABLE，由上层决定降级策略。
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		e.logger.Warn("embedding api call failed",
			zap.String("model", string(e.model)),
			zap.Error(err))
		return nil, core.NewUnavailableError(core.ModuleVector, "embedding api: %v", err)
	}
	if len(resp.Data) == 0 {
		return nil, core.NewUnavailableError(core.ModuleVector, "empty embedding response")
	}

	emb := resp.Data[0].Embedding
	out := make([]float64, len(emb))
	for i, v := range emb {
		out[i] = float64(v)
	}
	if e.dimensions > 0 && len(out) != e.dimensions {
		return nil, core.NewConfigurationError(core.ModuleVector,
			"embedding dim mismatch: api returned %d, configured %d", len(out), e.dimensions)
	}
	return out, nil
}

var _ core.Embedder = (*OpenAIEmbedder)(nil)
var _ core.Embedder = (*LocalEmbedder)(nil)

// String 便于在诊断信息中展示模型标识。
func (e *OpenAIEmbedder) String() string {
	return fmt.Sprintf("openai(%s)", e.model)
}
