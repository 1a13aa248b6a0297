package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/adkit/core"
)

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.EmbeddingDim = 3
	return cfg
}

func validRecord(id string) core.Promotion {
	return core.Promotion{
		ID:        id,
		Title:     "Promo " + id,
		PriceTier: core.PriceTierMedium,
		BaseCTR:   0.1,
		Embedding: []float64{1, 0, 0},
	}
}

func TestLoadStableOrder(t *testing.T) {
	records := []core.Promotion{validRecord("p3"), validRecord("p1"), validRecord("p2")}

	cat, err := Load(context.Background(), records, testConfig(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, cat.Len())

	// 迭代顺序为加载顺序
	all := cat.All()
	assert.Equal(t, "p3", all[0].ID)
	assert.Equal(t, "p1", all[1].ID)
	assert.Equal(t, "p2", all[2].ID)

	got, ok := cat.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Promo p1", got.Title)

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

// TestLoadSkipsInvalidRecords 非法记录只跳过，不中断加载
func TestLoadSkipsInvalidRecords(t *testing.T) {
	noID := validRecord("")
	noTitle := validRecord("p2")
	noTitle.Title = ""
	badTier := validRecord("p3")
	badTier.PriceTier = "premium"
	badCTR := validRecord("p4")
	badCTR.BaseCTR = 1.5
	badDim := validRecord("p5")
	badDim.Embedding = []float64{1, 0}

	records := []core.Promotion{noID, noTitle, badTier, badCTR, badDim, validRecord("p6")}

	cat, err := Load(context.Background(), records, testConfig(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	_, ok := cat.Get("p6")
	assert.True(t, ok)
}

func TestLoadSkipsDuplicateID(t *testing.T) {
	first := validRecord("p1")
	second := validRecord("p1")
	second.Title = "Other"

	cat, err := Load(context.Background(), []core.Promotion{first, second}, testConfig(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	got, _ := cat.Get("p1")
	assert.Equal(t, "Promo p1", got.Title, "重复 id 应保留首条")
}

type fixedEmbedder struct {
	dim int
	vec []float64
}

func (e *fixedEmbedder) Name() string { return "fixed" }
func (e *fixedEmbedder) Dim() int     { return e.dim }
func (e *fixedEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return e.vec, nil
}

// TestLoadEmbedsMissingVectors 无预置向量的记录在加载时现算
func TestLoadEmbedsMissingVectors(t *testing.T) {
	rec := validRecord("p1")
	rec.Embedding = nil

	embedder := &fixedEmbedder{dim: 3, vec: []float64{0, 1, 0}}
	cat, err := Load(context.Background(), []core.Promotion{rec}, testConfig(), embedder, nil)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	got, _ := cat.Get("p1")
	assert.Equal(t, []float64{0, 1, 0}, got.Embedding)
}

// TestLoadNoEmbedderNoVector embedder 缺失且记录无向量时跳过该记录
func TestLoadNoEmbedderNoVector(t *testing.T) {
	rec := validRecord("p1")
	rec.Embedding = nil

	cat, err := Load(context.Background(), []core.Promotion{rec}, testConfig(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())
}

// TestLoadEmbedderDimMismatch embedder 维度与配置不一致是致命配置错误
func TestLoadEmbedderDimMismatch(t *testing.T) {
	embedder := &fixedEmbedder{dim: 5, vec: make([]float64, 5)}
	_, err := Load(context.Background(), []core.Promotion{validRecord("p1")}, testConfig(), embedder, nil)
	require.Error(t, err)
	assert.True(t, core.IsConfiguration(err))
}

func TestLoadInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.EmbeddingDim = 0
	_, err := Load(context.Background(), nil, cfg, nil, nil)
	require.Error(t, err)
	assert.True(t, core.IsConfiguration(err))
}

func TestHolderSwap(t *testing.T) {
	old, err := Load(context.Background(), []core.Promotion{validRecord("p1")}, testConfig(), nil, nil)
	require.NoError(t, err)

	holder := NewHolder(old)
	assert.Equal(t, 1, holder.Current().Len())

	// 旧快照在换入新目录后保持可用
	snapshot := holder.Current()

	fresh, err := Load(context.Background(), []core.Promotion{validRecord("p2"), validRecord("p3")}, testConfig(), nil, nil)
	require.NoError(t, err)
	holder.Swap(fresh)

	assert.Equal(t, 2, holder.Current().Len())
	assert.Equal(t, 1, snapshot.Len())
	_, ok := snapshot.Get("p1")
	assert.True(t, ok)
}
