// Package service 提供 core.MLService 的具体实现，对接外部打分服务。
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/adkit/core"
)

// HTTPClient 是通用 HTTP 模型服务客户端，实现 core.MLService。
// 适配自建打分服务或任意暴露 JSON 接口的模型网关。
//
// 请求格式（JSON）：
//
//	{"features_list": [{"base_ctr": 0.12, "similarity": 0.8, ...}, ...], "model_name": "ctr_v2"}
//
// 响应格式（JSON）：
//
//	{"scores": [0.85, 0.72, ...], "model_version": "v2"}
type HTTPClient struct {
	Endpoint string // 例如 "http://localhost:8080/predict"
	Client   *http.Client
}

// NewHTTPClient 创建 HTTP 模型服务客户端。
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Predict(ctx context.Context, req *core.MLPredictRequest) (*core.MLPredictResponse, error) {
	if len(req.Features) == 0 {
		return &core.MLPredictResponse{Predictions: []float64{}}, nil
	}

	reqBody := map[string]any{
		"features_list": req.Features,
	}
	if req.ModelName != "" {
		reqBody["model_name"] = req.ModelName
	}
	if req.ModelVersion != "" {
		reqBody["model_version"] = req.ModelVersion
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("rpc error: status=%d, read body failed: %w", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("rpc error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Scores       []float64 `json:"scores"`
		ModelVersion string    `json:"model_version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Scores) != len(req.Features) {
		return nil, fmt.Errorf("response scores count mismatch: expected %d, got %d",
			len(req.Features), len(result.Scores))
	}

	return &core.MLPredictResponse{
		Predictions:  result.Scores,
		ModelVersion: result.ModelVersion,
	}, nil
}

// Health 对 Endpoint 发起一次 GET 探活。
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("unhealthy: status=%d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.Client.CloseIdleConnections()
	return nil
}

var _ core.MLService = (*HTTPClient)(nil)
