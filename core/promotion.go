package core

import "strings"

// PriceTier 是促销的价格档位，有序枚举：low < medium < high。
type PriceTier string

const (
	PriceTierLow    PriceTier = "low"
	PriceTierMedium PriceTier = "medium"
	PriceTierHigh   PriceTier = "high"
)

// Rank 返回档位的序号（low=0, medium=1, high=2），未知档位返回 -1。
func (t PriceTier) Rank() int {
	switch t {
	case PriceTierLow:
		return 0
	case PriceTierMedium:
		return 1
	case PriceTierHigh:
		return 2
	default:
		return -1
	}
}

// Valid 检查档位是否为合法枚举值。
func (t PriceTier) Valid() bool {
	return t.Rank() >= 0
}

// AdjacentTo 判断两个档位是否相邻（如 low/medium、medium/high）。
func (t PriceTier) AdjacentTo(other PriceTier) bool {
	a, b := t.Rank(), other.Rank()
	if a < 0 || b < 0 {
		return false
	}
	diff := a - b
	return diff == 1 || diff == -1
}

// Promotion 是促销记录：加载后不可变，由 Catalog 独占持有。
// Embedding 与查询向量同一向量空间，维度在 Catalog 加载时统一校验。
type Promotion struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Link        string    `json:"link,omitempty" yaml:"link,omitempty"`
	Categories  []string  `json:"categories" yaml:"categories"`
	PriceTier   PriceTier `json:"price_tier" yaml:"price_tier"`
	BaseCTR     float64   `json:"base_ctr" yaml:"base_ctr"`
	Embedding   []float64 `json:"embedding,omitempty" yaml:"embedding,omitempty"`
}

// EmbeddingText 返回用于生成向量的文本（标题 + 描述）。
func (p *Promotion) EmbeddingText() string {
	return strings.TrimSpace(p.Title + " " + p.Description)
}

// HasCategory 判断促销是否包含某个类目（大小写不敏感）。
func (p *Promotion) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// InterestOverlap 计算促销类目命中用户兴趣的比例：
// |Categories ∩ interests| / |Categories|；促销无类目时为 0。
func (p *Promotion) InterestOverlap(interests []string) float64 {
	if len(p.Categories) == 0 || len(interests) == 0 {
		return 0
	}
	set := make(map[string]bool, len(interests))
	for _, in := range interests {
		set[strings.ToLower(in)] = true
	}
	hit := 0
	for _, c := range p.Categories {
		if set[strings.ToLower(c)] {
			hit++
		}
	}
	return float64(hit) / float64(len(p.Categories))
}
