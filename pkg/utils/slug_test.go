package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Midnight Thoughts", "midnight-thoughts"},
		{"The Writer's Journey", "the-writers-journey"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"Café au Lait", "cafe-au-lait"},
		{"UPPER case 123", "upper-case-123"},
		{"---!!!---", ""},
		{"réflexions d'été", "reflexions-dete"},
		{"Hello, World!", "hello-world"},
		{"snake_case title", "snake-case-title"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSlugifyCharset(t *testing.T) {
	for _, in := range []string{"Hello, World!", "a b\tc", "¿Qué pasa?", "42 is the answer"} {
		got := Slugify(in)
		assert.False(t, strings.HasPrefix(got, "-"), "leading hyphen in %q", got)
		assert.False(t, strings.HasSuffix(got, "-"), "trailing hyphen in %q", got)
		for _, r := range got {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			require.True(t, ok, "unexpected rune %q in %q", r, got)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	assert.Equal(t, "hello-world", UniqueSlug("hello-world", nil))
	assert.Equal(t, "hello-world-1", UniqueSlug("hello-world", []string{"hello-world"}))
	assert.Equal(t, "hello-world-2",
		UniqueSlug("hello-world", []string{"hello-world", "hello-world-1"}))

	existing := []string{"post", "post-1", "post-2", "post-4"}
	got := UniqueSlug("post", existing)
	assert.Equal(t, "post-3", got)
	assert.NotContains(t, existing, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 200))
	long := strings.Repeat("a", 250)
	got := Truncate(long, 200)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)

	// 截断按 rune 计数，不会切开多字节字符
	got = Truncate("日本語のテキストです", 5)
	assert.Equal(t, "日本語のテ...", got)
}
