package expand

import (
	"context"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pipeline"
)

// Node 是扩展阶段的 Pipeline 封装：把 rctx.Query 扩展为 rctx.Variants，
// items 原样透传（此阶段尚未产生候选）。
type Node struct {
	Expander *Expander
}

func (n *Node) Name() string        { return "expand.query" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindExpand }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.AdContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Expander == nil || rctx == nil || rctx.Query == "" {
		return items, nil
	}
	if _, err := n.Expander.Expand(ctx, rctx.Query, rctx); err != nil {
		return nil, err
	}
	return items, nil
}

var _ pipeline.Node = (*Node)(nil)
