package expand

import "strings"

// promoTerms 是促销词增补表：查询未包含的词才会生成变体。
var promoTerms = []string{"deal", "discount", "sale", "offer", "promotion", "coupon"}

// categoryRules 是类目关键词注入表：命中触发词的查询家族追加类目化变体。
// 模板中 %q 占位原查询。
var categoryRules = []struct {
	triggers  []string
	templates []string
}{
	{
		triggers:  []string{"cloud", "aws", "server", "hosting"},
		templates: []string{"%q cloud computing", "%q web hosting deal", "aws %q discount"},
	},
	{
		triggers:  []string{"phone", "mobile", "smartphone"},
		templates: []string{"%q smartphone deal", "%q mobile phone offer", "%q electronics sale"},
	},
	{
		triggers:  []string{"laptop", "computer", "pc"},
		templates: []string{"%q computer deal", "%q laptop discount", "%q electronics promotion"},
	},
}

// genericTemplates 在没有任何类目命中时使用。
var genericTemplates = []string{"best %q deals", "%q special offer", "cheap %q"}

// RuleExpand 是确定性的规则扩展：类目关键词注入 + 促销词增补。
//
// 输出顺序体现置信度：真正的扩展在前，归一化原查询固定排在最后，
// 避免原查询在去重时抢占真实扩展的位次；同一输入永远得到同一输出。
func RuleExpand(query string) []string {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	lower := strings.ToLower(q)
	words := strings.Fields(lower)

	out := make([]string, 0, 8)

	matched := false
	for _, rule := range categoryRules {
		if !containsAny(words, rule.triggers) {
			continue
		}
		matched = true
		for _, tpl := range rule.templates {
			out = append(out, strings.ReplaceAll(tpl, "%q", q))
		}
		break
	}
	if !matched {
		for _, tpl := range genericTemplates {
			out = append(out, strings.ReplaceAll(tpl, "%q", q))
		}
	}

	for _, term := range promoTerms {
		if !strings.Contains(lower, term) {
			out = append(out, q+" "+term)
		}
	}

	// 原查询固定最后
	out = append(out, q)
	return out
}

func containsAny(words []string, targets []string) bool {
	for _, w := range words {
		for _, t := range targets {
			if w == t {
				return true
			}
		}
	}
	return false
}
