package core

import "time"

// Config 是广告链路的显式配置，逐级传入各组件构造函数，不读取进程级全局状态。
type Config struct {
	// EmbeddingDim 向量维度；目录向量与查询向量必须一致
	EmbeddingDim int `yaml:"embedding_dim" json:"embedding_dim"`

	// MaxVariants 查询扩展变体上限
	MaxVariants int `yaml:"max_variants" json:"max_variants"`

	// MaxResults 检索结果上限（top_k）
	MaxResults int `yaml:"max_results" json:"max_results"`

	// MaxAds 单个槽位计划最多插入的广告数
	MaxAds int `yaml:"max_ads" json:"max_ads"`

	// MinSpacing 相邻两个广告之间最少间隔的自然结果数，至少为 1
	MinSpacing int `yaml:"min_spacing" json:"min_spacing"`

	// PreferredPosition 首个广告插入在第 N 条自然结果之后，至少为 1
	PreferredPosition int `yaml:"preferred_position" json:"preferred_position"`

	// BoostWeight 召回阶段兴趣命中加权系数
	BoostWeight float64 `yaml:"boost_weight" json:"boost_weight"`

	// InterestWeight 排序阶段兴趣命中加分系数（与召回加权独立可调）
	InterestWeight float64 `yaml:"interest_weight" json:"interest_weight"`

	// ExactBudgetBonus 价格档位精确匹配加分
	ExactBudgetBonus float64 `yaml:"exact_budget_bonus" json:"exact_budget_bonus"`

	// AdjacentBudgetBonus 价格档位相邻匹配加分（平滑退化而非全有全无）
	AdjacentBudgetBonus float64 `yaml:"adjacent_budget_bonus" json:"adjacent_budget_bonus"`

	// Timeout 外部能力调用（LLM 扩展、模型服务、特征服务）的超时
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig 返回默认配置。
// 加权/加分常量与线上经验值对齐，均可按场景覆盖。
func DefaultConfig() Config {
	return Config{
		EmbeddingDim:        384,
		MaxVariants:         5,
		MaxResults:          20,
		MaxAds:              3,
		MinSpacing:          2,
		PreferredPosition:   2,
		BoostWeight:         0.1,
		InterestWeight:      0.1,
		ExactBudgetBonus:    0.05,
		AdjacentBudgetBonus: 0.02,
		Timeout:             2 * time.Second,
	}
}

// Validate 校验配置边界；非法配置立即失败，不做静默修正。
func (c Config) Validate() error {
	if c.EmbeddingDim <= 0 {
		return NewConfigurationError("config", "embedding_dim must be positive, got %d", c.EmbeddingDim)
	}
	if c.MaxVariants <= 0 {
		return NewConfigurationError("config", "max_variants must be positive, got %d", c.MaxVariants)
	}
	if c.MaxResults <= 0 {
		return NewConfigurationError("config", "max_results must be positive, got %d", c.MaxResults)
	}
	if c.MaxAds < 0 {
		return NewConfigurationError("config", "max_ads must not be negative, got %d", c.MaxAds)
	}
	if c.MinSpacing < 1 {
		return NewConfigurationError("config", "min_spacing must be positive, got %d", c.MinSpacing)
	}
	if c.PreferredPosition < 1 {
		return NewConfigurationError("config", "preferred_position must be positive, got %d", c.PreferredPosition)
	}
	return nil
}
