package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveEmptyStrings(t *testing.T) {
	got := RemoveEmptyStrings([]string{"a", "", "b", ""})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSHA1Hex_StableAcrossCalls(t *testing.T) {
	a := SHA1Hex("https://example.com/x", "Title")
	b := SHA1Hex("https://example.com/x", "Title")
	assert.Equal(t, a, b)
	assert.Len(t, a, 40)
	assert.NotEqual(t, a, SHA1Hex("https://example.com/y", "Title"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Technology", "technology"},
		{"World News", "world-news"},
		{"  Arts & Culture  ", "arts-culture"},
		{"general", "general"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "General", Capitalize("general"))
	assert.Equal(t, "", Capitalize(""))
}
