package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify 标题 → URL slug：小写、去音调符号、标点直接删除、空白折叠为连字符
// "The Writer's Journey" → "the-writers-journey"
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_':
			pendingHyphen = true
		default:
			// 标点不产生分隔："writer's" → "writers"
		}
	}
	return b.String()
}

// UniqueSlug 在 existing 内找不冲突的值：base、base-1、base-2 …
func UniqueSlug(base string, existing []string) string {
	used := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		used[s] = struct{}{}
	}
	slug := base
	for i := 1; ; i++ {
		if _, ok := used[slug]; !ok {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Truncate 按字符硬截断并追加省略号（不保证词边界，与线上行为一致）
func Truncate(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
