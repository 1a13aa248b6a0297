package rank

import (
	"context"
	"sort"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/model"
	"github.com/rushteam/adkit/pipeline"
	"github.com/rushteam/adkit/pkg/utils"
)

// Node 是排序阶段的管道节点。
// - 从 item.Features 取相似度，组装完整特征后交给 Ranker 打分
// - 更新 item.Score / item.Features，写入 labels：rank_model
// - 按分数降序、同分按 id 升序排序
type Node struct {
	Ranker *Ranker
}

func (n *Node) Name() string        { return "rank.ctr" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.AdContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Ranker == nil || len(items) == 0 {
		return items, nil
	}

	candidates := make([]core.Candidate, 0, len(items))
	byID := make(map[string]*core.Item, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		candidates = append(candidates, core.Candidate{
			ID:         it.ID,
			Similarity: it.Features[model.FeatureSimilarity],
		})
		byID[it.ID] = it
	}

	var profile *core.UserProfile
	if rctx != nil {
		profile = rctx.User
	}
	ranked, err := n.Ranker.Rank(ctx, candidates, profile)
	if err != nil {
		return nil, err
	}

	modelName := "ctr"
	if n.Ranker.Model != nil {
		modelName = n.Ranker.Model.Name()
	}

	out := make([]*core.Item, 0, len(ranked))
	for _, rp := range ranked {
		it, ok := byID[rp.ID]
		if !ok {
			continue
		}
		it.Score = rp.Score
		if it.Features == nil {
			it.Features = make(map[string]float64, len(rp.Features))
		}
		for k, v := range rp.Features {
			it.Features[k] = v
		}
		it.PutLabel("rank_model", utils.Label{Value: modelName, Source: "rank"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
