package expand

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rushteam/adkit/core"
)

// LLMBackend 是基于 OpenAI 兼容 Chat API 的扩展能力实现。
// 任何错误（网络、超时、响应不可解析）都以 UNAVAILABLE 返回，
// 由 Expander 降级到规则扩展，调用方不感知。
type LLMBackend struct {
	client *openai.Client
	model  string
}

// LLMConfig 是 LLMBackend 的配置。
type LLMConfig struct {
	APIKey  string
	BaseURL string // 为空时使用官方默认地址
	Model   string // 为空时使用 gpt-4o-mini
}

// NewLLMBackend 创建 LLM 扩展后端。
func NewLLMBackend(cfg *LLMConfig) *LLMBackend {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &LLMBackend{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (b *LLMBackend) Name() string { return "llm" }

func (b *LLMBackend) Expand(ctx context.Context, query string, max int) ([]string, error) {
	prompt := buildPrompt(query, max)

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: 0.7,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, core.NewUnavailableError(core.ModuleExpand, "chat api: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, core.NewUnavailableError(core.ModuleExpand, "empty chat response")
	}

	variants, err := parseVariants(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, core.NewUnavailableError(core.ModuleExpand, "parse response: %v", err)
	}
	return variants, nil
}

func buildPrompt(query string, max int) string {
	return fmt.Sprintf(`Expand this search query into %d related long-tail keyword variations that would help find relevant promotions and deals:

Original Query: %q

Generate variations that include:
- Specific product names and brands
- Feature-focused terms (e.g., "discount", "sale", "offer", "deal")
- Category-specific terms
- Price and budget related terms

Return ONLY a JSON array of strings, no other text:
["variation1", "variation2", "variation3", ...]`, max, query)
}

// parseVariants 从模型输出中解析 JSON 数组；模型偶尔会在数组外包一层
// 说明文字，此处截取首个 '[' 到末个 ']' 再解析。
func parseVariants(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	var variants []string
	if err := json.Unmarshal([]byte(content), &variants); err == nil {
		return variants, nil
	}
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

var _ Backend = (*LLMBackend)(nil)
