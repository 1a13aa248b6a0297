package vector

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/core"
)

// CachedEmbedder 是 Embedder 的缓存装饰器：同一查询文本的向量只计算一次。
// 缓存后端通过 core.Store 注入（内存或 Redis），多实例部署时共享 Redis 缓存
// 可显著降低 Embedding API 开销。
//
// 缓存读写失败只记日志不报错：缓存是优化，不是正确性依赖。
type CachedEmbedder struct {
	inner  core.Embedder
	store  core.Store
	prefix string
	ttl    int // 秒，0 表示不过期
	logger *zap.Logger
}

// NewCachedEmbedder 创建带缓存的 Embedder。
func NewCachedEmbedder(inner core.Embedder, store core.Store, ttlSeconds int, logger *zap.Logger) *CachedEmbedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEmbedder{
		inner:  inner,
		store:  store,
		prefix: "emb:" + inner.Name() + ":",
		ttl:    ttlSeconds,
		logger: logger,
	}
}

func (e *CachedEmbedder) Name() string { return e.inner.Name() + ".cached" }

func (e *CachedEmbedder) Dim() int { return e.inner.Dim() }

func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := e.prefix + strings.ToLower(strings.TrimSpace(text))

	if data, err := e.store.Get(ctx, key); err == nil {
		var vec []float64
		if err := json.Unmarshal(data, &vec); err == nil && len(vec) == e.inner.Dim() {
			return vec, nil
		}
		// 脏数据当作未命中处理
		_ = e.store.Delete(ctx, key)
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vec); err == nil {
		if err := e.store.Set(ctx, key, data, e.ttl); err != nil {
			e.logger.Debug("embedding cache write failed",
				zap.String("store", e.store.Name()),
				zap.Error(err))
		}
	}
	return vec, nil
}

var _ core.Embedder = (*CachedEmbedder)(nil)
