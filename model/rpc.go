package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/adkit/core"
)

// RPCModel 是通过 core.MLService 调用外部模型服务的 RankModel 实现。
// 支持 GBDT、XGBoost、TensorFlow Serving、TorchServe 等任意后端。
//
// 调用带强制超时；失败以 UNAVAILABLE 上抛，由 rank 节点降级到确定性公式。
type RPCModel struct {
	name    string
	Service core.MLService
	Timeout time.Duration
}

func NewRPCModel(name string, svc core.MLService, timeout time.Duration) *RPCModel {
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return &RPCModel{name: name, Service: svc, Timeout: timeout}
}

func (m *RPCModel) Name() string {
	return m.name
}

// Predict 调用远程模型服务进行预测（单个特征，内部调用批量接口）。
func (m *RPCModel) Predict(features map[string]float64) (float64, error) {
	scores, err := m.PredictBatch(context.Background(), []map[string]float64{features})
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, core.NewUnavailableError(core.ModuleService, "empty prediction response")
	}
	return scores[0], nil
}

// PredictBatch 批量预测，推荐使用（减少网络往返）。
func (m *RPCModel) PredictBatch(ctx context.Context, featuresList []map[string]float64) ([]float64, error) {
	if m.Service == nil {
		return nil, core.NewUnavailableError(core.ModuleService, "ml service not configured")
	}
	if len(featuresList) == 0 {
		return []float64{}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	resp, err := m.Service.Predict(callCtx, &core.MLPredictRequest{
		Features:  featuresList,
		ModelName: m.name,
	})
	if err != nil {
		return nil, core.NewUnavailableError(core.ModuleService, "predict: %v", err)
	}
	if len(resp.Predictions) != len(featuresList) {
		return nil, fmt.Errorf("response scores count mismatch: expected %d, got %d",
			len(featuresList), len(resp.Predictions))
	}
	return resp.Predictions, nil
}

var _ RankModel = (*RPCModel)(nil)
