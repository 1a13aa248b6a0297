package filter

import (
	"context"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pkg/conv"
	"github.com/rushteam/adkit/pkg/dsl"
)

// paramTargetingRule 请求级定向规则在 rctx.Params 中的键名。
const paramTargetingRule = "targeting_rule"

// RuleFilter 基于 CEL 表达式的定向过滤器。
// 表达式为真表示候选命中定向、予以保留；为假则过滤。
//
// 规则来源优先级：
//  1. RuleFilter.Expr（节点级配置）
//  2. rctx.Params["targeting_rule"]（请求级覆盖）
//
// 空表达式视为全部命中。
type RuleFilter struct {
	Expr string
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(_ context.Context, rctx *core.AdContext, item *core.Item) (bool, error) {
	expr := f.Expr
	if expr == "" && rctx != nil {
		expr, _ = conv.ToString(rctx.Params[paramTargetingRule])
	}
	if expr == "" {
		return false, nil
	}
	ok, err := dsl.NewEval(item, rctx).Evaluate(expr)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

var _ Filter = (*RuleFilter)(nil)
