// Package vector 提供文本向量化能力与向量相似度计算。
//
// 目录向量与查询向量必须来自同一 Embedder（同一向量空间）；
// 维度不一致属于配置错误，在召回入口处校验。
package vector

import "math"

// Cosine 计算两个向量的余弦相似度，结果范围 [-1, 1]。
// 维度不一致或任一向量为零向量时返回 0（不做除零）。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize 将向量原地归一化为单位向量；零向量保持不变。
func Normalize(v []float64) {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
}
