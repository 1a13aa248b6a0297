package slot

import (
	"go.uber.org/zap"

	"github.com/rushteam/adkit/core"
)

// Optimize 将推广位按顺序插入自然结果，生成混排计划。
//
// 放置策略：
//   - 首个推广插在第 PreferredPosition 条自然结果之后，确保头部是自然结果
//   - 后续推广之间至少间隔 MinSpacing 条自然结果
//   - 最多插入 MaxAds 条；放不下的推广直接丢弃，间隔约束优先于数量
//   - 尾部追加也必须满足间隔约束
//   - 自然结果相对顺序不变，推广条目始终带 sponsored 标记
//   - 自然结果不足 2 条时不做任何插入
//
// cfg 须先通过 Config.Validate（MinSpacing/PreferredPosition ≥ 1）。
func Optimize(organic []string, promotions []*core.Promotion, cfg core.Config, logger *zap.Logger) *Plan {
	if logger == nil {
		logger = zap.NewNop()
	}

	plan := &Plan{Entries: make([]Entry, 0, len(organic)+len(promotions))}
	if len(organic) < 2 || len(promotions) == 0 {
		for _, res := range organic {
			plan.Entries = append(plan.Entries, Entry{Kind: EntryOrganic, Text: res})
		}
		return plan
	}

	maxAds := cfg.MaxAds
	if maxAds > len(promotions) {
		maxAds = len(promotions)
	}

	inserted := 0
	next := cfg.PreferredPosition
	for i, res := range organic {
		plan.Entries = append(plan.Entries, Entry{Kind: EntryOrganic, Text: res})
		if inserted < maxAds && i+1 == next {
			promo := promotions[inserted]
			plan.Entries = append(plan.Entries, Entry{
				Kind:        EntrySponsored,
				Text:        renderAdCopy(promo, organic, i),
				PromotionID: promo.ID,
			})
			inserted++
			next += cfg.MinSpacing
		}
	}

	if dropped := maxAds - inserted; dropped > 0 {
		logger.Debug("dropped promotions to preserve ad spacing",
			zap.Int("dropped", dropped),
			zap.Int("inserted", inserted),
			zap.Int("organic", len(organic)),
		)
	}
	return plan
}
