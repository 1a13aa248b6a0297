package catalog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rushteam/adkit/core"
)

// LoadJSONL 从 JSONL 文件加载目录：每行一个促销记录。
// 解析失败的行按非法记录处理（跳过 + 日志），与 Load 的校验语义一致。
func LoadJSONL(ctx context.Context, path string, cfg core.Config, embedder core.Embedder, logger *zap.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	if logger == nil {
		logger = zap.NewNop()
	}

	records := make([]core.Promotion, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec core.Promotion
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("skipping malformed catalog line",
				zap.String("path", path),
				zap.Int("line", line),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	return Load(ctx, records, cfg, embedder, logger)
}
