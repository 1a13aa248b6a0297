package model

import (
	"math"
	"testing"
)

func TestWeightFactor(t *testing.T) {
	tests := []struct {
		sim  float64
		want float64
	}{
		{0, 0.5},
		{0.5, 1.0},
		{1.0, 1.5},
		{-0.3, 0.5},  // 下界截断
		{1.2, 1.5},   // 上界截断
	}
	for _, tt := range tests {
		if got := WeightFactor(tt.sim); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WeightFactor(%v) = %v, 期望 %v", tt.sim, got, tt.want)
		}
	}
}

func TestCTRModelPredict(t *testing.T) {
	m := NewCTRModel()

	tests := []struct {
		name     string
		features map[string]float64
		want     float64
	}{
		{
			"仅基础 CTR",
			map[string]float64{FeatureBaseCTR: 0.1},
			0.1 * 0.5,
		},
		{
			"满相似度",
			map[string]float64{FeatureBaseCTR: 0.1, FeatureSimilarity: 1.0},
			0.1 * 1.5,
		},
		{
			"预算精确匹配",
			map[string]float64{FeatureBaseCTR: 0.1, FeatureSimilarity: 0.5, FeatureBudgetExact: 1},
			0.1*1.0 + 0.05,
		},
		{
			"预算相邻匹配",
			map[string]float64{FeatureBaseCTR: 0.1, FeatureSimilarity: 0.5, FeatureBudgetAdjacent: 1},
			0.1*1.0 + 0.02,
		},
		{
			"精确匹配优先于相邻",
			map[string]float64{FeatureBaseCTR: 0.1, FeatureBudgetExact: 1, FeatureBudgetAdjacent: 1},
			0.1*0.5 + 0.05,
		},
		{
			"兴趣命中加分",
			map[string]float64{FeatureBaseCTR: 0.2, FeatureSimilarity: 0.5, FeatureInterestOverlap: 0.5},
			0.2*1.0 + 0.1*0.5,
		},
		{
			"空特征",
			map[string]float64{},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Predict(tt.features)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Predict = %v, 期望 %v", got, tt.want)
			}
		})
	}
}
