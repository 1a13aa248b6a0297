package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONL(t *testing.T) {
	content := `{"id":"p1","title":"Promo 1","price_tier":"medium","base_ctr":0.1,"embedding":[1,0,0]}
not json at all
{"id":"p2","title":"Promo 2","price_tier":"low","base_ctr":0.2,"embedding":[0,1,0]}

{"id":"p3","title":"Promo 3","price_tier":"premium","base_ctr":0.1,"embedding":[0,0,1]}
`
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := LoadJSONL(context.Background(), path, testConfig(), nil, nil)
	require.NoError(t, err)

	// 非法 JSON 行与非法 price_tier 记录被跳过
	assert.Equal(t, 2, cat.Len())
	_, ok := cat.Get("p1")
	assert.True(t, ok)
	_, ok = cat.Get("p2")
	assert.True(t, ok)
	_, ok = cat.Get("p3")
	assert.False(t, ok)
}

func TestLoadJSONLMissingFile(t *testing.T) {
	_, err := LoadJSONL(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl"), testConfig(), nil, nil)
	assert.Error(t, err)
}
