package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty input", "", ""},
		{"basic paragraph", "<p>Hello world</p>", "Hello world"},
		{"h1 header", "<h1>Title</h1>", "# Title"},
		{"bold text", "<p>This is <strong>bold</strong> text</p>", "This is **bold** text"},
		{"unordered list", "<ul><li>Item 1</li><li>Item 2</li></ul>", "- Item 1\n- Item 2"},
		{"link", `<p><a href="https://example.com/docs">the docs</a></p>`, "[the docs](https://example.com/docs)"},
		{"comments dropped", "<p>kept<!-- not this --></p>", "kept"},
		{"head and scripts dropped", "<html><head><title>Ignored</title></head><body><p>Hi</p><script>alert(1)</script></body></html>", "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHTML(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromHTML_FeedsTokenizer(t *testing.T) {
	markdown, err := FromHTML("<h2>Section</h2><ol><li>one</li><li>two</li></ol>")
	require.NoError(t, err)

	blocks := Tokenize(SplitLines([]byte(markdown)))
	var kinds []BlockKind
	for _, b := range blocks {
		if b.Kind != BlockBlank {
			kinds = append(kinds, b.Kind)
		}
	}
	assert.Equal(t, []BlockKind{BlockHeading, BlockList}, kinds)
}
