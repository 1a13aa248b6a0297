package slot

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rushteam/adkit/core"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// stopWords 上下文关键词提取时忽略的高频词。
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "it": {},
	"we": {}, "they": {},
}

var (
	techKeywords     = map[string]struct{}{"cloud": {}, "server": {}, "hosting": {}, "aws": {}, "api": {}, "database": {}, "software": {}}
	mobileKeywords   = map[string]struct{}{"phone": {}, "mobile": {}, "smartphone": {}, "android": {}, "ios": {}}
	businessKeywords = map[string]struct{}{"business": {}, "enterprise": {}, "professional": {}, "office": {}, "productivity": {}}
)

// renderAdCopy 结合周边自然结果的上下文，为推广生成带 [SPONSORED] 标记的文案。
func renderAdCopy(promo *core.Promotion, organic []string, position int) string {
	title := promo.Title
	if title == "" {
		title = "Special Offer"
	}
	link := promo.Link
	if link == "" {
		link = "#"
	}

	keywords := contextKeywords(organic, position)
	intro := contextualIntro(keywords)

	var b strings.Builder
	b.WriteString("[SPONSORED] ")
	b.WriteString(intro)
	b.WriteString("\n\n**")
	b.WriteString(title)
	b.WriteString("**\n")
	b.WriteString(promo.Description)
	b.WriteString("\n\nLearn more: ")
	b.WriteString(link)
	return b.String()
}

// contextKeywords 从插入位置前后各 2 条自然结果中按词频提取最多 5 个关键词。
func contextKeywords(organic []string, position int) []string {
	const window = 2
	start := position - window
	if start < 0 {
		start = 0
	}
	end := position + window + 1
	if end > len(organic) {
		end = len(organic)
	}
	text := strings.ToLower(strings.Join(organic[start:end], " "))

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, w := range wordPattern.FindAllString(text, -1) {
		if _, skip := stopWords[w]; skip {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

// contextualIntro 根据关键词类目生成导语。
func contextualIntro(keywords []string) string {
	if len(keywords) == 0 {
		return "Looking for great deals?"
	}
	for _, k := range keywords {
		if _, ok := techKeywords[k]; ok {
			return "Perfect for your tech needs!"
		}
	}
	for _, k := range keywords {
		if _, ok := mobileKeywords[k]; ok {
			return "Great mobile deals for you!"
		}
	}
	for _, k := range keywords {
		if _, ok := businessKeywords[k]; ok {
			return "Boost your business with these offers!"
		}
	}
	return fmt.Sprintf("Related to %s - check this out!", keywords[0])
}
