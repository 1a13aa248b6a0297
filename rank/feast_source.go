package rank

import (
	"context"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/feast"
	"github.com/rushteam/adkit/pkg/conv"
)

// FeastCTRSource 从 Feast 特征服务获取推广位的小时级实时点击率。
//
// 特征约定：
//   - 实体键：promotion_id
//   - 特征名：promotion_hourly_stats:ctr
type FeastCTRSource struct {
	Client feast.Client

	// Feature 特征全名，默认 "promotion_hourly_stats:ctr"。
	Feature string

	// EntityKey 实体键名，默认 "promotion_id"。
	EntityKey string

	// Project Feast 项目名。
	Project string
}

func (s *FeastCTRSource) Name() string { return "rank.feast_ctr" }

// BaseCTR 批量获取实时 ctr。返回值只包含成功取到的 id。
func (s *FeastCTRSource) BaseCTR(ctx context.Context, ids []string) (map[string]float64, error) {
	if s.Client == nil {
		return nil, core.NewUnavailableError(core.ModuleRank, "feast client is not configured")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	feature := s.Feature
	if feature == "" {
		feature = "promotion_hourly_stats:ctr"
	}
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "promotion_id"
	}

	entityRows := make([]map[string]any, len(ids))
	for i, id := range ids {
		entityRows[i] = map[string]any{entityKey: id}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   []string{feature},
		EntityRows: entityRows,
		Project:    s.Project,
	})
	if err != nil {
		return nil, core.NewUnavailableError(core.ModuleRank, "feast online features failed: %v", err)
	}

	ctrs := make(map[string]float64, len(ids))
	for i, vec := range resp.FeatureVectors {
		if i >= len(ids) {
			break
		}
		raw, ok := vec.Values[feature]
		if !ok {
			continue
		}
		ctr, ok := conv.ToFloat64(raw)
		if !ok || ctr < 0 || ctr > 1 {
			continue
		}
		ctrs[ids[i]] = ctr
	}
	return ctrs, nil
}

var _ CTRSource = (*FeastCTRSource)(nil)
