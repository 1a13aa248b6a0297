package vector

import (
	"context"
	"math"
	"testing"
)

func TestLocalEmbedderDeterministic(t *testing.T) {
	e := NewLocalEmbedder(64)
	ctx := context.Background()

	a, err := e.Embed(ctx, "cloud hosting")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := e.Embed(ctx, "cloud hosting")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(a) != 64 || len(b) != 64 {
		t.Fatalf("维度错误: %d / %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("同一文本应产生相同向量，位置 %d: %v != %v", i, a[i], b[i])
		}
	}
}

// TestLocalEmbedderNormalized 文本归一化后应视为同一输入；输出为单位向量
func TestLocalEmbedderNormalized(t *testing.T) {
	e := NewLocalEmbedder(32)
	ctx := context.Background()

	a, _ := e.Embed(ctx, "Cloud Hosting")
	b, _ := e.Embed(ctx, "  cloud hosting  ")
	if Cosine(a, b) < 1-1e-9 {
		t.Error("大小写与首尾空白不应影响向量")
	}

	var norm float64
	for _, x := range a {
		norm += x * x
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
		t.Errorf("向量模长 %v, 期望 1", math.Sqrt(norm))
	}
}

func TestLocalEmbedderDistinctTexts(t *testing.T) {
	e := NewLocalEmbedder(128)
	ctx := context.Background()

	a, _ := e.Embed(ctx, "cloud hosting")
	b, _ := e.Embed(ctx, "gaming laptop")
	if Cosine(a, b) > 1-1e-9 {
		t.Error("不同文本不应产生同一向量")
	}
}

func TestNewLocalEmbedderDefaultDim(t *testing.T) {
	e := NewLocalEmbedder(0)
	if e.Dim() != 384 {
		t.Errorf("默认维度应为 384，实际 %d", e.Dim())
	}
}
