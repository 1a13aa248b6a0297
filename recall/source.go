package recall

import (
	"context"

	"github.com/rushteam/adkit/core"
)

// Source 表示一个可复用的召回源。
// 你可以把它理解为“可并发 fan-out 的策略单元”：语义检索是默认实现，
// 接入带索引的向量库时只要保持排序语义不变即可替换。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.AdContext) ([]*core.Item, error)
}
