// Package recall 提供语义召回：把查询编码为向量，在促销目录上做余弦
// 相似度检索，并按用户画像做兴趣加权。
//
// 复杂度为 O(目录条数) / 每次查询；目标规模（数万条）下无需 ANN 索引，
// 但 Source 抽象不排除之后换成索引结构，只要结果排序语义保持一致。
package recall

import (
	"context"
	"sort"

	"github.com/rushteam/adkit/catalog"
	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pkg/utils"
	"github.com/rushteam/adkit/vector"
)

// SemanticRecall 是基于向量相似度的召回源。
type SemanticRecall struct {
	// Holder 目录快照持有者；每次检索取一次快照，检索期间不换
	Holder *catalog.Holder

	// Embedder 查询向量化能力，必须与目录向量同一向量空间
	Embedder core.Embedder

	// BoostWeight 兴趣命中加权系数（画像缺失时无效）
	BoostWeight float64

	// TopK 返回候选条数
	TopK int
}

func (r *SemanticRecall) Name() string { return "recall.semantic" }

// Search 检索与 query 最相似的 topK 条促销。
//
// 打分：adjusted = cosine(q, p) + BoostWeight × interestOverlap(p, profile)；
// 排序：adjusted 降序，同分按促销 id 升序，保证相同输入输出可复现。
// 查询向量与目录向量维度不一致是致命配置错误，不做按次恢复。
func (r *SemanticRecall) Search(ctx context.Context, query string, profile *core.UserProfile, topK int) ([]core.Candidate, error) {
	if topK <= 0 {
		return nil, core.NewConfigurationError(core.ModuleRecall, "top_k must be positive, got %d", topK)
	}
	cat := r.Holder.Current()
	if cat == nil || cat.Len() == 0 {
		return nil, nil
	}

	qvec, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(qvec) != cat.Dim() {
		return nil, core.NewConfigurationError(core.ModuleRecall,
			"query embedding dim %d does not match catalog dim %d", len(qvec), cat.Dim())
	}

	promos := cat.All()
	scored := make([]core.Candidate, 0, len(promos))
	for _, p := range promos {
		sim := vector.Cosine(qvec, p.Embedding)
		adjusted := sim
		if profile != nil && r.BoostWeight != 0 {
			adjusted += r.BoostWeight * p.InterestOverlap(profile.Interests)
		}
		scored = append(scored, core.Candidate{ID: p.ID, Similarity: adjusted})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].ID < scored[j].ID
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// Recall 实现 Source 接口：对 rctx.Query 做单次检索。
func (r *SemanticRecall) Recall(ctx context.Context, rctx *core.AdContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Query == "" {
		return nil, nil
	}
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	cands, err := r.Search(ctx, rctx.Query, rctx.User, topK)
	if err != nil {
		return nil, err
	}
	return CandidatesToItems(cands, rctx.Query), nil
}

// CandidatesToItems 把候选封装为链路 Item，写入召回标签与相似度特征。
func CandidatesToItems(cands []core.Candidate, query string) []*core.Item {
	out := make([]*core.Item, 0, len(cands))
	for _, c := range cands {
		it := core.NewItem(c.ID)
		it.Score = c.Similarity
		it.Features["similarity"] = c.Similarity
		it.PutLabel("recall_source", utils.Label{Value: "semantic", Source: "recall"})
		if query != "" {
			it.PutLabel("recall_query", utils.Label{Value: query, Source: "recall"})
		}
		out = append(out, it)
	}
	return out
}

var _ Source = (*SemanticRecall)(nil)
