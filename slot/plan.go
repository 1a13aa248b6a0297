package slot

// EntryKind 标记槽位计划中的条目来源。
type EntryKind string

const (
	// EntryOrganic 自然结果
	EntryOrganic EntryKind = "organic"
	// EntrySponsored 推广位
	EntrySponsored EntryKind = "sponsored"
)

// Entry 是槽位计划中的一个条目。
// 自然结果原样透传；推广条目携带渲染后的广告文案与推广 id。
type Entry struct {
	Kind EntryKind

	// Text 展示内容：自然结果为原始字符串，推广为渲染后的广告文案
	Text string

	// PromotionID 仅推广条目有值
	PromotionID string
}

// Plan 是最终的混排序列：自然结果保持相对顺序，推广条目显式标记。
type Plan struct {
	Entries []Entry
}

// AdCount 返回计划中推广条目的数量。
func (p *Plan) AdCount() int {
	n := 0
	for _, e := range p.Entries {
		if e.Kind == EntrySponsored {
			n++
		}
	}
	return n
}

// Texts 返回混排后的纯文本序列。
func (p *Plan) Texts() []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Text)
	}
	return out
}
