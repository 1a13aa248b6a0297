// Package catalog 提供促销目录：加载时校验、加载后不可变、稳定迭代顺序。
//
// 目录是检索的底座：每条促销携带与查询同一向量空间的 Embedding。
// 并发模型：Load 之后目录只读，任意多个请求可无锁并发读；
// 热更新通过 Holder 的原子指针替换完成，进行中的检索继续引用旧快照。
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/core"
)

// Catalog 是不可变的促销目录。
type Catalog struct {
	promotions []*core.Promotion
	byID       map[string]*core.Promotion
	dim        int
}

// Load 从记录构建目录。
//
// 校验规则（单条记录失败只跳过该条并记日志，不中断整个加载）：
//   - id/title 必填，id 在目录内唯一
//   - price_tier 必须是合法枚举
//   - base_ctr 必须在 [0,1]
//   - 预置 Embedding 的维度必须等于 cfg.EmbeddingDim
//
// 无 Embedding 的记录用 embedder 对 "标题 描述" 现算；embedder 为 nil 且
// 记录无 Embedding 时该记录视为非法。
func Load(ctx context.Context, records []core.Promotion, cfg core.Config, embedder core.Embedder, logger *zap.Logger) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if embedder != nil && embedder.Dim() != cfg.EmbeddingDim {
		return nil, core.NewConfigurationError(core.ModuleCatalog,
			"embedder dim %d does not match configured embedding_dim %d", embedder.Dim(), cfg.EmbeddingDim)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Catalog{
		promotions: make([]*core.Promotion, 0, len(records)),
		byID:       make(map[string]*core.Promotion, len(records)),
		dim:        cfg.EmbeddingDim,
	}

	for i := range records {
		rec := records[i]
		if err := validate(&rec, cfg.EmbeddingDim); err != nil {
			logger.Warn("skipping invalid promotion record",
				zap.String("id", rec.ID),
				zap.Error(err))
			continue
		}
		if _, dup := c.byID[rec.ID]; dup {
			logger.Warn("skipping duplicate promotion id", zap.String("id", rec.ID))
			continue
		}
		if len(rec.Embedding) == 0 {
			if embedder == nil {
				logger.Warn("skipping record without embedding and no embedder configured",
					zap.String("id", rec.ID))
				continue
			}
			emb, err := embedder.Embed(ctx, rec.EmbeddingText())
			if err != nil {
				// Embedding 服务故障属于能力不可用，整体加载失败好过半个目录
				return nil, core.NewUnavailableError(core.ModuleCatalog,
					"embed promotion %s: %v", rec.ID, err)
			}
			rec.Embedding = emb
		}
		p := rec
		c.promotions = append(c.promotions, &p)
		c.byID[p.ID] = &p
	}

	logger.Info("promotion catalog loaded",
		zap.Int("total", len(records)),
		zap.Int("accepted", len(c.promotions)))
	return c, nil
}

func validate(p *core.Promotion, dim int) error {
	if p.ID == "" {
		return core.NewValidationError(core.ModuleCatalog, "missing promotion id")
	}
	if p.Title == "" {
		return core.NewValidationError(core.ModuleCatalog, "promotion %s: missing title", p.ID)
	}
	if !p.PriceTier.Valid() {
		return core.NewValidationError(core.ModuleCatalog, "promotion %s: invalid price_tier %q", p.ID, p.PriceTier)
	}
	if p.BaseCTR < 0 || p.BaseCTR > 1 {
		return core.NewValidationError(core.ModuleCatalog, "promotion %s: base_ctr %v out of [0,1]", p.ID, p.BaseCTR)
	}
	if len(p.Embedding) > 0 && len(p.Embedding) != dim {
		return core.NewValidationError(core.ModuleCatalog,
			"promotion %s: embedding dim %d, want %d", p.ID, len(p.Embedding), dim)
	}
	return nil
}

// All 返回全部促销，迭代顺序为加载顺序（可复现的兜底行为依赖它）。
// 返回的 slice 只读，调用方不得修改。
func (c *Catalog) All() []*core.Promotion {
	return c.promotions
}

// Get 按 id 获取促销。
func (c *Catalog) Get(id string) (*core.Promotion, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len 返回目录条数。
func (c *Catalog) Len() int {
	return len(c.promotions)
}

// Dim 返回目录向量维度。
func (c *Catalog) Dim() int {
	return c.dim
}
