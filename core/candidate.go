package core

// Candidate 是一次检索调用产出的候选：促销 ID + 相似度分数。
// 同一促销在多个查询变体下产生的多条 Candidate，合并时保留最大分数。
type Candidate struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"`
}

// RankedPromotion 是排序阶段的输出：促销 ID + 最终分数 + 特征拆解。
// Features 仅用于诊断与解释，不参与正确性约束；分数只保证同一次调用内可比。
type RankedPromotion struct {
	ID       string             `json:"id"`
	Score    float64            `json:"score"`
	Features map[string]float64 `json:"features,omitempty"`
}

// MergeCandidates 按 ID 合并候选，同 ID 保留最大相似度。
// 输出顺序为每个 ID 首次出现的顺序，保证相同输入下结果可复现。
func MergeCandidates(lists ...[]Candidate) []Candidate {
	seen := make(map[string]int)
	out := make([]Candidate, 0)
	for _, list := range lists {
		for _, c := range list {
			if idx, ok := seen[c.ID]; ok {
				if c.Similarity > out[idx].Similarity {
					out[idx].Similarity = c.Similarity
				}
				continue
			}
			seen[c.ID] = len(out)
			out = append(out, c)
		}
	}
	return out
}
