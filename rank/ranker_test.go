package rank

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/rushteam/adkit/catalog"
	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/model"
)

func testHolder(t *testing.T, records []core.Promotion) *catalog.Holder {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.EmbeddingDim = 3
	cat, err := catalog.Load(context.Background(), records, cfg, nil, nil)
	if err != nil {
		t.Fatalf("加载目录失败: %v", err)
	}
	return catalog.NewHolder(cat)
}

func promo(id string, tier core.PriceTier, ctr float64, categories ...string) core.Promotion {
	return core.Promotion{
		ID:         id,
		Title:      "Promo " + id,
		Categories: categories,
		PriceTier:  tier,
		BaseCTR:    ctr,
		Embedding:  []float64{1, 0, 0},
	}
}

func newTestRanker(t *testing.T, records []core.Promotion, m model.RankModel) *Ranker {
	t.Helper()
	return New(testHolder(t, records), m, core.DefaultConfig(), nil)
}

// TestRankPermutation 输出是输入候选的一个排列：不增不减
func TestRankPermutation(t *testing.T) {
	r := newTestRanker(t, []core.Promotion{
		promo("p1", core.PriceTierMedium, 0.1),
		promo("p2", core.PriceTierLow, 0.2),
	}, nil)

	candidates := []core.Candidate{
		{ID: "p1", Similarity: 0.5},
		{ID: "p2", Similarity: 0.3},
		{ID: "unknown", Similarity: 0.9}, // 不在目录中也不丢
	}
	ranked, err := r.Rank(context.Background(), candidates, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != len(candidates) {
		t.Fatalf("输出条数 %d != 输入条数 %d", len(ranked), len(candidates))
	}

	gotIDs := make([]string, 0, len(ranked))
	for _, rp := range ranked {
		gotIDs = append(gotIDs, rp.ID)
	}
	sort.Strings(gotIDs)
	if gotIDs[0] != "p1" || gotIDs[1] != "p2" || gotIDs[2] != "unknown" {
		t.Errorf("输出应为输入 id 的排列: %v", gotIDs)
	}
}

func TestRankOrdering(t *testing.T) {
	r := newTestRanker(t, []core.Promotion{
		promo("p1", core.PriceTierMedium, 0.3),
		promo("p2", core.PriceTierMedium, 0.1),
	}, nil)

	ranked, err := r.Rank(context.Background(), []core.Candidate{
		{ID: "p1", Similarity: 0.5},
		{ID: "p2", Similarity: 0.5},
	}, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].ID != "p1" {
		t.Errorf("高 CTR 候选应在前: %+v", ranked)
	}
	if ranked[0].Score < ranked[1].Score {
		t.Error("分数应降序")
	}
}

// TestRankTieBreak 同分按 id 升序
func TestRankTieBreak(t *testing.T) {
	r := newTestRanker(t, []core.Promotion{
		promo("pb", core.PriceTierMedium, 0.1),
		promo("pa", core.PriceTierMedium, 0.1),
	}, nil)

	ranked, err := r.Rank(context.Background(), []core.Candidate{
		{ID: "pb", Similarity: 0.4},
		{ID: "pa", Similarity: 0.4},
	}, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].ID != "pa" || ranked[1].ID != "pb" {
		t.Errorf("同分应按 id 升序: %+v", ranked)
	}
}

func TestRankBudgetAndInterestFeatures(t *testing.T) {
	r := newTestRanker(t, []core.Promotion{
		promo("exact", core.PriceTierLow, 0.1, "cloud", "hosting"),
		promo("adjacent", core.PriceTierMedium, 0.1),
		promo("far", core.PriceTierHigh, 0.1),
	}, nil)
	profile := &core.UserProfile{
		BudgetLevel: core.PriceTierLow,
		Interests:   []string{"cloud"},
	}

	ranked, err := r.Rank(context.Background(), []core.Candidate{
		{ID: "exact", Similarity: 0.5},
		{ID: "adjacent", Similarity: 0.5},
		{ID: "far", Similarity: 0.5},
	}, profile)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	byID := make(map[string]core.RankedPromotion)
	for _, rp := range ranked {
		byID[rp.ID] = rp
	}

	exact := byID["exact"]
	if exact.Features[model.FeatureBudgetExact] != 1 {
		t.Error("low/low 应是预算精确匹配")
	}
	if math.Abs(exact.Features[model.FeatureInterestOverlap]-0.5) > 1e-9 {
		t.Errorf("兴趣命中比例 = %v, 期望 0.5", exact.Features[model.FeatureInterestOverlap])
	}

	adjacent := byID["adjacent"]
	if adjacent.Features[model.FeatureBudgetAdjacent] != 1 || adjacent.Features[model.FeatureBudgetExact] != 0 {
		t.Error("low/medium 应是预算相邻匹配")
	}
	far := byID["far"]
	if far.Features[model.FeatureBudgetExact] != 0 || far.Features[model.FeatureBudgetAdjacent] != 0 {
		t.Error("low/high 不应有预算加成")
	}

	// exact: 0.1*1.0 + 0.05 + 0.1*0.5 = 0.2; adjacent: 0.1 + 0.02; far: 0.1
	if ranked[0].ID != "exact" || ranked[1].ID != "adjacent" || ranked[2].ID != "far" {
		t.Errorf("排序错误: %+v", ranked)
	}
}

// TestRankUnknownCandidateDefaultCTR 目录外候选使用兜底基础 CTR
func TestRankUnknownCandidateDefaultCTR(t *testing.T) {
	r := newTestRanker(t, nil, nil)

	ranked, err := r.Rank(context.Background(), []core.Candidate{{ID: "ghost", Similarity: 0.5}}, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].Features[model.FeatureBaseCTR] != defaultBaseCTR {
		t.Errorf("兜底 base_ctr = %v, 期望 %v", ranked[0].Features[model.FeatureBaseCTR], defaultBaseCTR)
	}
}

type failingModel struct{}

func (failingModel) Name() string                                 { return "failing" }
func (failingModel) Predict(map[string]float64) (float64, error)  { return 0, errors.New("model down") }

// TestRankModelFailureFallback 模型失败降级到确定性公式，排序不失败
func TestRankModelFailureFallback(t *testing.T) {
	r := newTestRanker(t, []core.Promotion{promo("p1", core.PriceTierMedium, 0.1)}, failingModel{})

	ranked, err := r.Rank(context.Background(), []core.Candidate{{ID: "p1", Similarity: 0.5}}, nil)
	if err != nil {
		t.Fatalf("模型失败不应导致排序失败: %v", err)
	}
	want := 0.1 * 1.0
	if math.Abs(ranked[0].Score-want) > 1e-9 {
		t.Errorf("兜底公式分数 = %v, 期望 %v", ranked[0].Score, want)
	}
}

type stubCTRSource struct {
	ctrs map[string]float64
	err  error
}

func (s *stubCTRSource) Name() string { return "stub" }
func (s *stubCTRSource) BaseCTR(_ context.Context, _ []string) (map[string]float64, error) {
	return s.ctrs, s.err
}

// TestRankRealtimeCTROverride 实时 ctr 覆盖目录静态值；失败时静默回退
func TestRankRealtimeCTROverride(t *testing.T) {
	r := newTestRanker(t, []core.Promotion{promo("p1", core.PriceTierMedium, 0.1)}, nil)
	r.Source = &stubCTRSource{ctrs: map[string]float64{"p1": 0.4}}

	ranked, err := r.Rank(context.Background(), []core.Candidate{{ID: "p1", Similarity: 0.5}}, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].Features[model.FeatureBaseCTR] != 0.4 {
		t.Errorf("实时 ctr 应覆盖静态值，实际 %v", ranked[0].Features[model.FeatureBaseCTR])
	}

	r.Source = &stubCTRSource{err: errors.New("feast down")}
	ranked, err = r.Rank(context.Background(), []core.Candidate{{ID: "p1", Similarity: 0.5}}, nil)
	if err != nil {
		t.Fatalf("实时源失败不应导致排序失败: %v", err)
	}
	if ranked[0].Features[model.FeatureBaseCTR] != 0.1 {
		t.Errorf("实时源失败应回退到静态 ctr，实际 %v", ranked[0].Features[model.FeatureBaseCTR])
	}
}

func TestRankEmptyCandidates(t *testing.T) {
	r := newTestRanker(t, nil, nil)
	ranked, err := r.Rank(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("空候选应返回空结果: %+v", ranked)
	}
}
