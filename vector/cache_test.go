package vector

import (
	"context"
	"testing"

	"github.com/rushteam/adkit/store"
)

// countingEmbedder 记录底层 Embed 的调用次数
type countingEmbedder struct {
	inner *LocalEmbedder
	calls int
}

func (e *countingEmbedder) Name() string { return "counting" }
func (e *countingEmbedder) Dim() int     { return e.inner.Dim() }
func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	return e.inner.Embed(ctx, text)
}

func TestCachedEmbedder(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	counting := &countingEmbedder{inner: NewLocalEmbedder(16)}
	cached := NewCachedEmbedder(counting, ms, 0, nil)
	ctx := context.Background()

	a, err := cached.Embed(ctx, "cloud hosting")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := cached.Embed(ctx, "cloud hosting")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("第二次应命中缓存，底层调用次数 %d", counting.calls)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("缓存命中应返回相同向量")
		}
	}

	// 大小写与首尾空白折叠到同一缓存键
	if _, err := cached.Embed(ctx, "  Cloud Hosting  "); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if counting.calls != 1 {
		t.Errorf("归一化后的同一文本应命中缓存，底层调用次数 %d", counting.calls)
	}

	if _, err := cached.Embed(ctx, "different text"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if counting.calls != 2 {
		t.Errorf("不同文本应穿透缓存，底层调用次数 %d", counting.calls)
	}

	if cached.Dim() != 16 {
		t.Errorf("Dim 应透传底层实现，实际 %d", cached.Dim())
	}
}
