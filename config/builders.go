package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/catalog"
	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/expand"
	"github.com/rushteam/adkit/filter"
	"github.com/rushteam/adkit/model"
	"github.com/rushteam/adkit/pipeline"
	"github.com/rushteam/adkit/pkg/conv"
	"github.com/rushteam/adkit/rank"
	"github.com/rushteam/adkit/recall"
	"github.com/rushteam/adkit/service"
	"github.com/rushteam/adkit/slot"
)

// Deps 是构建 Node 所需的运行时依赖。
// 目录、向量化器等有状态对象无法从声明式配置构造，由调用方注入。
type Deps struct {
	Holder   *catalog.Holder
	Embedder core.Embedder
	Config   core.Config

	// Backend LLM 扩展后端，可为 nil（纯规则扩展）
	Backend expand.Backend

	// CTRSource 实时 ctr 来源，可为 nil
	CTRSource rank.CTRSource

	Logger *zap.Logger
}

// DefaultFactory 返回一个注册了所有内置 Node 的工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	factory := pipeline.NewNodeFactory()
	factory.Register("expand.query", buildExpandNode(deps))
	factory.Register("recall.fanout", buildFanoutNode(deps))
	factory.Register("filter.rule", buildRuleFilterNode)
	factory.Register("rank.ctr", buildCTRNode(deps))
	factory.Register("rank.rpc", buildRPCNode(deps))
	factory.Register("slot.optimize", buildSlotNode(deps))
	return factory
}

func buildExpandNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(config map[string]any) (pipeline.Node, error) {
		cfg := deps.Config
		if n := conv.ConfigGetInt(config, "max_variants", 0); n > 0 {
			cfg.MaxVariants = n
		}
		if sec := conv.ConfigGetFloat64(config, "timeout", 0); sec > 0 {
			cfg.Timeout = time.Duration(sec * float64(time.Second))
		}
		return &expand.Node{Expander: expand.New(cfg, deps.Backend, deps.Logger)}, nil
	}
}

func buildFanoutNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(config map[string]any) (pipeline.Node, error) {
		if deps.Holder == nil || deps.Embedder == nil {
			return nil, fmt.Errorf("fanout node requires catalog holder and embedder")
		}
		retriever := &recall.SemanticRecall{
			Holder:      deps.Holder,
			Embedder:    deps.Embedder,
			BoostWeight: deps.Config.BoostWeight,
		}
		fanout := &recall.Fanout{
			Retriever:      retriever,
			TopKPerVariant: conv.ConfigGetInt(config, "top_k", 0),
			MaxMerged:      conv.ConfigGetInt(config, "max_merged", deps.Config.MaxResults),
		}
		if sec := conv.ConfigGetFloat64(config, "timeout", 0); sec > 0 {
			fanout.Timeout = time.Duration(sec * float64(time.Second))
		}
		if n := conv.ConfigGetInt(config, "max_concurrent", 0); n > 0 {
			fanout.MaxConcurrent = n
		}
		return fanout, nil
	}
}

func buildRuleFilterNode(config map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](config, "expr", "")
	return &filter.Node{Filters: []filter.Filter{&filter.RuleFilter{Expr: expr}}}, nil
}

func buildCTRNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(_ map[string]any) (pipeline.Node, error) {
		ranker := rank.New(deps.Holder, nil, deps.Config, deps.Logger)
		ranker.Source = deps.CTRSource
		return &rank.Node{Ranker: ranker}, nil
	}
}

func buildRPCNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(config map[string]any) (pipeline.Node, error) {
		endpoint := conv.ConfigGet[string](config, "endpoint", "")
		if endpoint == "" {
			return nil, fmt.Errorf("endpoint not found")
		}
		timeout := 5 * time.Second
		if sec := conv.ConfigGetFloat64(config, "timeout", 0); sec > 0 {
			timeout = time.Duration(sec * float64(time.Second))
		}
		name := conv.ConfigGet[string](config, "model_name", "rpc")
		svc := service.NewHTTPClient(endpoint, timeout)
		rpcModel := model.NewRPCModel(name, svc, timeout)

		ranker := rank.New(deps.Holder, rpcModel, deps.Config, deps.Logger)
		ranker.Source = deps.CTRSource
		return &rank.Node{Ranker: ranker}, nil
	}
}

func buildSlotNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(config map[string]any) (pipeline.Node, error) {
		cfg := deps.Config
		if n := conv.ConfigGetInt(config, "max_ads", 0); n > 0 {
			cfg.MaxAds = n
		}
		if n := conv.ConfigGetInt(config, "min_spacing", 0); n > 0 {
			cfg.MinSpacing = n
		}
		if n := conv.ConfigGetInt(config, "preferred_position", 0); n > 0 {
			cfg.PreferredPosition = n
		}
		return &slot.Node{Holder: deps.Holder, Config: cfg, Logger: deps.Logger}, nil
	}
}
