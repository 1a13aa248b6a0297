package core

// UserType 是用户类型枚举。
type UserType string

const (
	UserTypeCasual       UserType = "casual"
	UserTypeProfessional UserType = "professional"
	UserTypeEnterprise   UserType = "enterprise"
)

// UserProfile 是请求级用户画像，核心不持久化。
//
// 它驱动三处个性化：
//   - 召回：兴趣命中比例作为相似度加权
//   - 排序：预算档位匹配加分、兴趣命中加分
//   - 解释：命中情况写入 Item 的 Features/Labels
type UserProfile struct {
	UserType    UserType  `json:"user_type" yaml:"user_type"`
	Interests   []string  `json:"interests" yaml:"interests"`
	BudgetLevel PriceTier `json:"budget_level" yaml:"budget_level"`
}

// NewUserProfile 创建一个空画像（默认 casual / medium 预算）。
func NewUserProfile() *UserProfile {
	return &UserProfile{
		UserType:    UserTypeCasual,
		Interests:   make([]string, 0),
		BudgetLevel: PriceTierMedium,
	}
}

// HasInterest 检查画像是否包含某个兴趣标签。
func (p *UserProfile) HasInterest(tag string) bool {
	for _, in := range p.Interests {
		if in == tag {
			return true
		}
	}
	return false
}
