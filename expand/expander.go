// Package expand 将一条短查询扩展为一组语义相关的长尾查询变体。
//
// 主路径是可插拔的 Backend（通常由 LLM 驱动），任何失败（超时、响应
// 不可解析、能力未配置）都会降级到确定性的规则扩展，保证链路在此阶段
// 永不停摆：至少返回轻度归一化后的原始查询本身。
package expand

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pkg/utils"
)

// Backend 是查询扩展的可插拔能力接口。
// 实现可以是 LLM（见 LLMBackend）或任意外部服务；失败由 Expander 兜底。
type Backend interface {
	Name() string
	Expand(ctx context.Context, query string, max int) ([]string, error)
}

// Expander 是扩展阶段的编排器：主路径 + 超时 + 规则兜底 + 去重截断。
type Expander struct {
	cfg     core.Config
	backend Backend // 可为 nil，此时直接走规则扩展
	logger  *zap.Logger
}

// New 创建 Expander。backend 为 nil 时只使用规则扩展。
func New(cfg core.Config, backend Backend, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{cfg: cfg, backend: backend, logger: logger}
}

// Expand 扩展查询。
//
// 输出保证：
//   - 非空查询必有至少一个变体（归一化原查询兜底）
//   - 条数不超过 cfg.MaxVariants
//   - 规则兜底路径的输出必含归一化原查询，截断也不会把它挤掉
//   - 全部变体非空、去除首尾空白
//   - 大小写不敏感去重，保留首次出现（高置信来源优先）
//
// rctx 可为 nil；不为 nil 时会写入降级标签，便于 explain。
func (e *Expander) Expand(ctx context.Context, query string, rctx *core.AdContext) ([]string, error) {
	normalized := Normalize(query)
	if normalized == "" {
		return nil, core.NewValidationError(core.ModuleExpand, "empty query")
	}
	if e.cfg.MaxVariants <= 0 {
		return nil, core.NewConfigurationError(core.ModuleExpand,
			"max_variants must be positive, got %d", e.cfg.MaxVariants)
	}

	fromRules := false
	var variants []string
	if e.backend != nil {
		callCtx := ctx
		if e.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
			defer cancel()
		}
		got, err := e.backend.Expand(callCtx, normalized, e.cfg.MaxVariants)
		if err != nil || len(got) == 0 {
			// 降级到规则扩展；对调用方不可见，仅记日志与标签
			e.logger.Warn("expansion backend degraded, falling back to rules",
				zap.String("backend", e.backend.Name()),
				zap.Error(err))
			if rctx != nil {
				rctx.PutLabel("expand_degraded", utils.Label{Value: e.backend.Name(), Source: "expand"})
			}
		} else {
			variants = got
		}
	}
	if variants == nil {
		fromRules = true
		variants = RuleExpand(normalized)
	}

	out := dedupCap(variants, e.cfg.MaxVariants)
	if fromRules && !containsFold(out, normalized) {
		// 规则兜底必须带上归一化原查询：截断挤掉时让扩展让出末位
		if len(out) >= e.cfg.MaxVariants {
			out = out[:e.cfg.MaxVariants-1]
		}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		out = []string{normalized}
	}
	if rctx != nil {
		rctx.Variants = out
	}
	return out, nil
}

// Normalize 对查询做轻度归一化：去首尾空白、压缩连续空白。
// 不做大小写折叠，保持用户原始写法进入下游。
func Normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// containsFold 大小写不敏感地检查 target 是否已在列表中。
func containsFold(list []string, target string) bool {
	for _, v := range list {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

// dedupCap 去重（大小写不敏感、保留首次出现）并截断到 max。
func dedupCap(variants []string, max int) []string {
	seen := make(map[string]bool, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}
