package adkit

import (
	"context"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/catalog"
	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/expand"
	"github.com/rushteam/adkit/model"
	"github.com/rushteam/adkit/rank"
	"github.com/rushteam/adkit/recall"
	"github.com/rushteam/adkit/slot"
)

// SearchHit 是语义检索的对外结果：推广 id、标题与相似度分数。
type SearchHit struct {
	ID    string
	Title string
	Score float64
}

// Engine 把扩展、召回、排序、槽位优化组合成四个面向宿主的操作。
// 各阶段也可以单独使用（直接构造对应包的 Node / 组件）。
type Engine struct {
	cfg      core.Config
	holder   *catalog.Holder
	embedder core.Embedder
	logger   *zap.Logger

	expander *expand.Expander
	fanout   *recall.Fanout
	ranker   *rank.Ranker
}

// EngineOption 配置 Engine 的可选能力。
type EngineOption func(*engineOptions)

type engineOptions struct {
	backend   expand.Backend
	rankModel model.RankModel
	ctrSource rank.CTRSource
	logger    *zap.Logger
}

// WithExpandBackend 启用 LLM 查询扩展后端（失败时仍降级到规则扩展）。
func WithExpandBackend(backend expand.Backend) EngineOption {
	return func(o *engineOptions) { o.backend = backend }
}

// WithRankModel 使用外部排序模型（失败时降级到内置 CTR 公式）。
func WithRankModel(m model.RankModel) EngineOption {
	return func(o *engineOptions) { o.rankModel = m }
}

// WithCTRSource 启用实时基础点击率来源（失败时使用目录静态值）。
func WithCTRSource(s rank.CTRSource) EngineOption {
	return func(o *engineOptions) { o.ctrSource = s }
}

// WithLogger 指定日志器，默认 zap.NewNop()。
func WithLogger(logger *zap.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = logger }
}

// NewEngine 创建引擎。holder 与 embedder 必须与目录向量同一向量空间。
func NewEngine(cfg core.Config, holder *catalog.Holder, embedder core.Embedder, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if holder == nil {
		return nil, core.NewConfigurationError(core.ModuleService, "catalog holder is required")
	}
	if embedder == nil {
		return nil, core.NewConfigurationError(core.ModuleService, "embedder is required")
	}
	if embedder.Dim() != cfg.EmbeddingDim {
		return nil, core.NewConfigurationError(core.ModuleService, "embedder dimension does not match config")
	}

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	retriever := &recall.SemanticRecall{
		Holder:      holder,
		Embedder:    embedder,
		BoostWeight: cfg.BoostWeight,
	}
	ranker := rank.New(holder, o.rankModel, cfg, logger)
	ranker.Source = o.ctrSource

	return &Engine{
		cfg:      cfg,
		holder:   holder,
		embedder: embedder,
		logger:   logger,
		expander: expand.New(cfg, o.backend, logger),
		fanout: &recall.Fanout{
			Retriever: retriever,
			MaxMerged: cfg.MaxResults,
			Timeout:   cfg.Timeout,
		},
		ranker: ranker,
	}, nil
}

// ExpandQuery 把原始查询扩展为变体列表。
// LLM 后端失败或未配置时使用规则扩展，永远至少返回一个变体。
func (e *Engine) ExpandQuery(ctx context.Context, query string) ([]string, error) {
	rctx := &core.AdContext{Query: query}
	return e.expander.Expand(ctx, query, rctx)
}

// SearchPromotions 扩展查询并在目录上做语义检索，按相似度返回前 maxResults 条。
// maxResults <= 0 时使用配置默认值。
func (e *Engine) SearchPromotions(ctx context.Context, query string, profile *core.UserProfile, maxResults int) ([]SearchHit, error) {
	rctx := &core.AdContext{Query: query, User: profile}
	if _, err := e.expander.Expand(ctx, query, rctx); err != nil {
		return nil, err
	}

	items, err := e.fanout.Process(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = e.cfg.MaxResults
	}
	if len(items) > maxResults {
		items = items[:maxResults]
	}

	cat := e.holder.Current()
	hits := make([]SearchHit, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		hit := SearchHit{ID: it.ID, Score: it.Score}
		if cat != nil {
			if promo, ok := cat.Get(it.ID); ok {
				hit.Title = promo.Title
			}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// RankPromotions 对候选做个性化打分排序，输出与输入一一对应、按分数降序。
func (e *Engine) RankPromotions(ctx context.Context, candidates []core.Candidate, profile *core.UserProfile) ([]core.RankedPromotion, error) {
	return e.ranker.Rank(ctx, candidates, profile)
}

// OptimizeAdSlots 把排好序的推广插入自然结果，生成混排计划。
// 不在目录中的推广 id 会被跳过。
func (e *Engine) OptimizeAdSlots(organic []string, ranked []core.RankedPromotion) *slot.Plan {
	cat := e.holder.Current()
	if cat == nil && len(ranked) > 0 {
		e.logger.Warn("catalog not loaded, all promotions excluded from slot plan",
			zap.Int("ranked", len(ranked)))
		return slot.Optimize(organic, nil, e.cfg, e.logger)
	}
	promos := make([]*core.Promotion, 0, len(ranked))
	for _, rp := range ranked {
		if promo, ok := cat.Get(rp.ID); ok {
			promos = append(promos, promo)
		} else {
			e.logger.Warn("promotion missing from catalog, excluded from slot plan", zap.String("id", rp.ID))
		}
	}
	return slot.Optimize(organic, promos, e.cfg, e.logger)
}
