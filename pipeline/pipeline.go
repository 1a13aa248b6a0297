package pipeline

import (
	"context"

	"github.com/rushteam/adkit/core"
)

// Pipeline 是 adkit 的核心抽象：把广告链路拆成可组合的 Node 链
// （Expand → Recall → Filter → Rank → Slot）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.AdContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
