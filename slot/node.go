package slot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/catalog"
	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pipeline"
	"github.com/rushteam/adkit/pkg/utils"
)

// Node 是槽位优化管道节点：把上游排好序的推广插入 rctx.Organic，
// 输出混排后的条目序列。
//
// 输出 item 约定：
//   - 自然结果：ID 为 "organic:<序号>"，Meta["text"] 为原始内容
//   - 推广条目：沿用上游 item（保留特征与标签），Meta["ad_copy"] 为文案，
//     并写入 labels：sponsored
type Node struct {
	Holder *catalog.Holder
	Config core.Config
	Logger *zap.Logger
}

func (n *Node) Name() string        { return "slot.optimize" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindSlot }

func (n *Node) Process(
	_ context.Context,
	rctx *core.AdContext,
	items []*core.Item,
) ([]*core.Item, error) {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var organic []string
	if rctx != nil {
		organic = rctx.Organic
	}

	var cat *catalog.Catalog
	if n.Holder != nil {
		cat = n.Holder.Current()
	}

	promos := make([]*core.Promotion, 0, len(items))
	byID := make(map[string]*core.Item, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		var promo *core.Promotion
		if cat != nil {
			promo, _ = cat.Get(it.ID)
		}
		if promo == nil {
			logger.Warn("promotion missing from catalog, excluded from slot plan", zap.String("id", it.ID))
			continue
		}
		promos = append(promos, promo)
		byID[it.ID] = it
	}

	plan := Optimize(organic, promos, n.Config, logger)

	out := make([]*core.Item, 0, len(plan.Entries))
	for i, entry := range plan.Entries {
		switch entry.Kind {
		case EntrySponsored:
			it, ok := byID[entry.PromotionID]
			if !ok {
				continue
			}
			if it.Meta == nil {
				it.Meta = make(map[string]any)
			}
			it.Meta["ad_copy"] = entry.Text
			it.PutLabel("sponsored", utils.Label{Value: "true", Source: "slot"})
			out = append(out, it)
		default:
			it := core.NewItem(fmt.Sprintf("organic:%d", i))
			it.Meta["text"] = entry.Text
			it.PutLabel("slot", utils.Label{Value: string(EntryOrganic), Source: "slot"})
			out = append(out, it)
		}
	}
	return out, nil
}
