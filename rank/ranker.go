package rank

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/catalog"
	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/model"
)

// defaultBaseCTR 候选不在目录中时使用的兜底点击率。
const defaultBaseCTR = 0.1

// CTRSource 提供候选的实时基础点击率。
// 返回的 map 只需包含有实时数据的 id，缺失的 id 使用目录中的静态值。
type CTRSource interface {
	Name() string
	BaseCTR(ctx context.Context, ids []string) (map[string]float64, error)
}

// Ranker 对召回候选做个性化打分排序。
//
// 打分流程：
//  1. 从目录取候选的静态特征（base_ctr / 价位 / 类目）
//  2. 可选：用 CTRSource 的实时 ctr 覆盖静态 base_ctr
//  3. 组装特征字典，交给 RankModel 打分
//  4. 模型失败时降级到内置 CTR 公式，保证不丢结果
//  5. 按分数降序排序，同分按 id 升序
//
// 输出与输入候选一一对应：不增不减，只重排。
type Ranker struct {
	Holder *catalog.Holder

	// Model 排序模型，为 nil 时使用内置 CTR 公式。
	Model model.RankModel

	// Source 实时 ctr 来源，可选。
	Source CTRSource

	Logger *zap.Logger

	fallback *model.CTRModel
}

// New 创建一个 Ranker。cfg 提供预算加成与兴趣权重。
func New(holder *catalog.Holder, m model.RankModel, cfg core.Config, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	fb := &model.CTRModel{
		ExactBudgetBonus:    cfg.ExactBudgetBonus,
		AdjacentBudgetBonus: cfg.AdjacentBudgetBonus,
		InterestWeight:      cfg.InterestWeight,
	}
	return &Ranker{
		Holder:   holder,
		Model:    m,
		Logger:   logger,
		fallback: fb,
	}
}

// Rank 对候选打分并排序。profile 为 nil 时按默认画像处理（无预算与兴趣加成）。
func (r *Ranker) Rank(ctx context.Context, candidates []core.Candidate, profile *core.UserProfile) ([]core.RankedPromotion, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	var cat *catalog.Catalog
	if r.Holder != nil {
		cat = r.Holder.Current()
	}

	realtime := r.realtimeCTR(ctx, candidates)

	ranked := make([]core.RankedPromotion, 0, len(candidates))
	for _, cand := range candidates {
		features := r.buildFeatures(cat, cand, profile, realtime)
		score := r.predict(cand.ID, features)
		ranked = append(ranked, core.RankedPromotion{
			ID:       cand.ID,
			Score:    score,
			Features: features,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked, nil
}

// buildFeatures 组装单个候选的特征字典。
func (r *Ranker) buildFeatures(cat *catalog.Catalog, cand core.Candidate, profile *core.UserProfile, realtime map[string]float64) map[string]float64 {
	features := map[string]float64{
		model.FeatureBaseCTR:         defaultBaseCTR,
		model.FeatureSimilarity:      cand.Similarity,
		model.FeatureBudgetExact:     0,
		model.FeatureBudgetAdjacent:  0,
		model.FeatureInterestOverlap: 0,
	}

	var promo *core.Promotion
	if cat != nil {
		promo, _ = cat.Get(cand.ID)
	}
	if promo != nil {
		features[model.FeatureBaseCTR] = promo.BaseCTR
		if profile != nil {
			if promo.PriceTier == profile.BudgetLevel {
				features[model.FeatureBudgetExact] = 1
			} else if promo.PriceTier.AdjacentTo(profile.BudgetLevel) {
				features[model.FeatureBudgetAdjacent] = 1
			}
			features[model.FeatureInterestOverlap] = promo.InterestOverlap(profile.Interests)
		}
	}
	if ctr, ok := realtime[cand.ID]; ok {
		features[model.FeatureBaseCTR] = ctr
	}
	return features
}

// predict 优先使用配置的模型，失败时降级到内置公式。
func (r *Ranker) predict(id string, features map[string]float64) float64 {
	if r.Model != nil {
		score, err := r.Model.Predict(features)
		if err == nil {
			return score
		}
		r.Logger.Warn("rank model failed, fallback to ctr formula",
			zap.String("model", r.Model.Name()),
			zap.String("id", id),
			zap.Error(err),
		)
	}
	score, _ := r.fallback.Predict(features)
	return score
}

// realtimeCTR 拉取实时 ctr，失败时静默降级为静态值。
func (r *Ranker) realtimeCTR(ctx context.Context, candidates []core.Candidate) map[string]float64 {
	if r.Source == nil {
		return nil
	}
	ids := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		ids = append(ids, cand.ID)
	}
	ctrs, err := r.Source.BaseCTR(ctx, ids)
	if err != nil {
		r.Logger.Warn("realtime ctr unavailable, using static base_ctr",
			zap.String("source", r.Source.Name()),
			zap.Error(err),
		)
		return nil
	}
	return ctrs
}
