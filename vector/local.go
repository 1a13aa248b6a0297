package vector

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"
)

// LocalEmbedder 是确定性的本地向量实现：以文本哈希为种子生成单位向量。
// 同一文本永远得到同一向量，用于测试、原型和无外部 Embedding 服务时的兜底，
// 保证链路在任何环境下都能跑通。
type LocalEmbedder struct {
	// Dimension 向量维度，默认 384
	Dimension int
}

// NewLocalEmbedder 创建一个本地 Embedder。
func NewLocalEmbedder(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = 384
	}
	return &LocalEmbedder{Dimension: dim}
}

func (e *LocalEmbedder) Name() string { return "local" }

func (e *LocalEmbedder) Dim() int { return e.Dimension }

// Embed 生成确定性向量：FNV 哈希做种子，正态分布采样后归一化。
func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	out := make([]float64, e.Dimension)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	Normalize(out)
	return out, nil
}
