package model

// 特征名约定：rank 节点写入，模型读取。
const (
	FeatureBaseCTR         = "base_ctr"
	FeatureSimilarity      = "similarity"
	FeatureBudgetExact     = "budget_exact"
	FeatureBudgetAdjacent  = "budget_adjacent"
	FeatureInterestOverlap = "interest_overlap"
)

// CTRModel 是确定性的 CTR 预估公式，也是所有学习模型的兜底：
//
//	score = base_ctr × weightFactor(similarity)
//	      + ExactBudgetBonus × budget_exact
//	      + AdjacentBudgetBonus × budget_adjacent
//	      + InterestWeight × interest_overlap
//
// weightFactor 把 [0,1] 区间的相似度单调映射到 [0.5, 1.5]：
// 检索相关性可以调节基础 CTR，但永远不会把它清零。
type CTRModel struct {
	// ExactBudgetBonus 价格档位精确匹配加分
	ExactBudgetBonus float64

	// AdjacentBudgetBonus 相邻档位加分（平滑退化而非全有全无）
	AdjacentBudgetBonus float64

	// InterestWeight 兴趣命中比例的加分系数（与召回加权独立可调）
	InterestWeight float64
}

// NewCTRModel 创建使用默认权重的确定性模型。
func NewCTRModel() *CTRModel {
	return &CTRModel{
		ExactBudgetBonus:    0.05,
		AdjacentBudgetBonus: 0.02,
		InterestWeight:      0.1,
	}
}

func (m *CTRModel) Name() string { return "ctr" }

func (m *CTRModel) Predict(features map[string]float64) (float64, error) {
	score := features[FeatureBaseCTR] * WeightFactor(features[FeatureSimilarity])
	if features[FeatureBudgetExact] > 0 {
		score += m.ExactBudgetBonus
	} else if features[FeatureBudgetAdjacent] > 0 {
		score += m.AdjacentBudgetBonus
	}
	score += m.InterestWeight * features[FeatureInterestOverlap]
	return score, nil
}

// WeightFactor 把相似度映射为基础 CTR 的乘数，区间 [0.5, 1.5]。
// 相似度超出 [0,1]（兴趣加权后可能略超）按端点截断。
func WeightFactor(similarity float64) float64 {
	f := 0.5 + similarity
	if f < 0.5 {
		return 0.5
	}
	if f > 1.5 {
		return 1.5
	}
	return f
}

var _ RankModel = (*CTRModel)(nil)
