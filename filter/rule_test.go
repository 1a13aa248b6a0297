package filter

import (
	"context"
	"testing"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pkg/utils"
)

func rankedItem(id string, score float64, tier string) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	it.PutLabel("price_tier", utils.Label{Value: tier, Source: "rank"})
	return it
}

func TestRuleFilterExpr(t *testing.T) {
	f := &RuleFilter{Expr: `label.price_tier != "high"`}
	ctx := context.Background()

	drop, err := f.ShouldFilter(ctx, nil, rankedItem("p1", 0.1, "medium"))
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if drop {
		t.Error("medium 档位应通过定向规则")
	}

	drop, err = f.ShouldFilter(ctx, nil, rankedItem("p2", 0.1, "high"))
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if !drop {
		t.Error("high 档位应被过滤")
	}
}

// TestRuleFilterEmptyExpr 空表达式全部命中
func TestRuleFilterEmptyExpr(t *testing.T) {
	f := &RuleFilter{}
	drop, err := f.ShouldFilter(context.Background(), &core.AdContext{}, rankedItem("p1", 0.1, "high"))
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if drop {
		t.Error("无规则时不应过滤任何候选")
	}
}

// TestRuleFilterParamOverride 请求级参数提供定向规则
func TestRuleFilterParamOverride(t *testing.T) {
	f := &RuleFilter{}
	rctx := &core.AdContext{Params: map[string]any{"targeting_rule": `item.score > 0.2`}}

	drop, err := f.ShouldFilter(context.Background(), rctx, rankedItem("p1", 0.1, "medium"))
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if !drop {
		t.Error("分数低于阈值的候选应被过滤")
	}
}

func TestFilterNode(t *testing.T) {
	node := &Node{Filters: []Filter{&RuleFilter{Expr: `item.score > 0.1`}}}

	items := []*core.Item{
		rankedItem("keep", 0.5, "medium"),
		rankedItem("drop", 0.05, "medium"),
		nil,
	}
	out, err := node.Process(context.Background(), &core.AdContext{}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "keep" {
		t.Errorf("期望仅保留 keep，实际 %+v", out)
	}
}

func TestFilterNodeNoFilters(t *testing.T) {
	node := &Node{}
	items := []*core.Item{rankedItem("p1", 0.1, "medium")}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("无过滤器时应原样返回: %+v", out)
	}
}
