package recall

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/adkit/core"
	"github.com/rushteam/adkit/pipeline"
)

// Fanout 是召回 Node：对每个查询变体并发执行一次语义检索，再合并候选池。
// 同一促销在多个变体下命中时保留最大相似度（高分永远不会被低分覆盖）。
type Fanout struct {
	Retriever *SemanticRecall

	// TopKPerVariant 每个变体的检索条数
	TopKPerVariant int

	// MaxMerged 合并后的候选池上限（0 表示不截断）
	MaxMerged int

	// Timeout 每个变体检索的超时时间
	Timeout time.Duration

	// MaxConcurrent 最大并发数（0 表示无限制）
	MaxConcurrent int
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.AdContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if n.Retriever == nil || rctx == nil {
		return nil, nil
	}
	variants := rctx.Variants
	if len(variants) == 0 && rctx.Query != "" {
		variants = []string{rctx.Query}
	}
	if len(variants) == 0 {
		return nil, nil
	}

	topK := n.TopKPerVariant
	if topK <= 0 {
		topK = 20
	}

	type variantResult struct {
		query string
		cands []core.Candidate
	}

	var (
		mu      sync.Mutex
		results []variantResult
		fatal   error
	)
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for _, v := range variants {
		variant := v
		eg.Go(func() error {
			searchCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				searchCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			cands, err := n.Retriever.Search(searchCtx, variant, rctx.User, topK)
			if err != nil {
				// 配置错误是致命的；其余错误（超时、后端故障）只丢弃该变体
				if core.IsConfiguration(err) {
					mu.Lock()
					if fatal == nil {
						fatal = err
					}
					mu.Unlock()
					return err
				}
				return nil
			}

			mu.Lock()
			results = append(results, variantResult{query: variant, cands: cands})
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if fatal != nil {
		return nil, fatal
	}

	// 按变体在 rctx 中的顺序合并，保证相同输入输出可复现
	order := make(map[string]int, len(variants))
	for i, v := range variants {
		order[v] = i
	}
	sort.Slice(results, func(i, j int) bool {
		return order[results[i].query] < order[results[j].query]
	})

	lists := make([][]core.Candidate, 0, len(results))
	for _, r := range results {
		lists = append(lists, r.cands)
	}
	merged := core.MergeCandidates(lists...)

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Similarity != merged[j].Similarity {
			return merged[i].Similarity > merged[j].Similarity
		}
		return merged[i].ID < merged[j].ID
	})
	if n.MaxMerged > 0 && len(merged) > n.MaxMerged {
		merged = merged[:n.MaxMerged]
	}

	return CandidatesToItems(merged, ""), nil
}

var _ pipeline.Node = (*Fanout)(nil)
