package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rushteam/adkit/core"
)

func TestHTTPClientPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FeaturesList []map[string]float64 `json:"features_list"`
			ModelName    string               `json:"model_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.ModelName != "ctr_v2" {
			t.Errorf("model_name = %q", req.ModelName)
		}

		scores := make([]float64, len(req.FeaturesList))
		for i, f := range req.FeaturesList {
			scores[i] = f["base_ctr"] * 2
		}
		json.NewEncoder(w).Encode(map[string]any{
			"scores":        scores,
			"model_version": "v2",
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	defer client.Close()

	resp, err := client.Predict(context.Background(), &core.MLPredictRequest{
		Features: []map[string]float64{
			{"base_ctr": 0.1},
			{"base_ctr": 0.2},
		},
		ModelName: "ctr_v2",
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(resp.Predictions) != 2 {
		t.Fatalf("期望 2 个预测值，实际 %d", len(resp.Predictions))
	}
	if resp.Predictions[0] != 0.2 || resp.Predictions[1] != 0.4 {
		t.Errorf("预测值错误: %v", resp.Predictions)
	}
	if resp.ModelVersion != "v2" {
		t.Errorf("model_version = %q", resp.ModelVersion)
	}
}

func TestHTTPClientPredictErrors(t *testing.T) {
	// 服务端 500
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	client := NewHTTPClient(bad.URL, time.Second)
	_, err := client.Predict(context.Background(), &core.MLPredictRequest{
		Features: []map[string]float64{{"x": 1}},
	})
	if err == nil {
		t.Error("服务端错误应上抛")
	}

	// 返回条数不匹配
	mismatch := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"scores": []float64{0.1, 0.2}})
	}))
	defer mismatch.Close()

	client = NewHTTPClient(mismatch.URL, time.Second)
	_, err = client.Predict(context.Background(), &core.MLPredictRequest{
		Features: []map[string]float64{{"x": 1}},
	})
	if err == nil {
		t.Error("条数不匹配应上抛")
	}
}

func TestHTTPClientPredictEmpty(t *testing.T) {
	client := NewHTTPClient("http://localhost:1", time.Second)
	resp, err := client.Predict(context.Background(), &core.MLPredictRequest{})
	if err != nil {
		t.Fatalf("空请求不应发起网络调用: %v", err)
	}
	if len(resp.Predictions) != 0 {
		t.Errorf("空请求应返回空结果: %v", resp.Predictions)
	}
}

func TestHTTPClientHealth(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	client := NewHTTPClient(ok.URL, time.Second)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("健康服务不应报错: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	client = NewHTTPClient(down.URL, time.Second)
	if err := client.Health(context.Background()); err == nil {
		t.Error("5xx 应视为不健康")
	}
}
