package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/adkit/core"
)

type noopNode struct {
	name string
	kind Kind
}

func (n *noopNode) Name() string { return n.name }
func (n *noopNode) Kind() Kind   { return n.kind }
func (n *noopNode) Process(_ context.Context, _ *core.AdContext, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

func TestLoadFromYAMLAndBuild(t *testing.T) {
	content := `
pipeline:
  name: ad_pipeline
  nodes:
    - type: recall.fanout
      config:
        top_k: 30
    - type: rank.ctr
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置文件: %v", err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if cfg.Pipeline.Name != "ad_pipeline" {
		t.Errorf("pipeline 名称 = %q", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("期望 2 个 node，实际 %d", len(cfg.Pipeline.Nodes))
	}
	if cfg.Pipeline.Nodes[0].Config["top_k"] != 30 {
		t.Errorf("top_k = %v", cfg.Pipeline.Nodes[0].Config["top_k"])
	}

	factory := NewNodeFactory()
	factory.Register("recall.fanout", func(_ map[string]any) (Node, error) {
		return &noopNode{name: "recall.fanout", kind: KindRecall}, nil
	})
	factory.Register("rank.ctr", func(_ map[string]any) (Node, error) {
		return &noopNode{name: "rank.ctr", kind: KindRank}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 2 {
		t.Errorf("期望 2 个 node，实际 %d", len(p.Nodes))
	}
}

func TestBuildPipelineUnknownType(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "nope"}}

	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Error("未注册的 node 类型应报错")
	}
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&noopNode{name: "a", kind: KindRecall},
		&noopNode{name: "b", kind: KindRank},
	}}

	items := []*core.Item{core.NewItem("p1")}
	out, err := p.Run(context.Background(), &core.AdContext{}, items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p1" {
		t.Errorf("透传结果错误: %+v", out)
	}
}
