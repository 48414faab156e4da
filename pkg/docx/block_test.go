package docx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-cli-collective/md2docx/pkg/md"
)

func TestEmitBlock(t *testing.T) {
	tests := []struct {
		name     string
		block    md.Block
		expected string
	}{
		{
			name:     "heading",
			block:    md.Block{Kind: md.BlockHeading, Level: 1, Text: "Title"},
			expected: `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t xml:space="preserve">Title</w:t></w:r></w:p>`,
		},
		{
			name:     "heading is one run with escapes resolved",
			block:    md.Block{Kind: md.BlockHeading, Level: 3, Text: `A **b** \*`},
			expected: `<w:p><w:pPr><w:pStyle w:val="Heading3"/></w:pPr><w:r><w:t xml:space="preserve">A **b** *</w:t></w:r></w:p>`,
		},
		{
			name:     "heading level clamped",
			block:    md.Block{Kind: md.BlockHeading, Level: 9, Text: "Deep"},
			expected: `<w:p><w:pPr><w:pStyle w:val="Heading6"/></w:pPr><w:r><w:t xml:space="preserve">Deep</w:t></w:r></w:p>`,
		},
		{
			name:     "paragraph",
			block:    md.Block{Kind: md.BlockParagraph, Text: "plain"},
			expected: `<w:p><w:r><w:t xml:space="preserve">plain</w:t></w:r></w:p>`,
		},
		{
			name:     "escaped fence stays literal",
			block:    md.Block{Kind: md.BlockParagraph, Text: "\\`\\`\\`not a real fence"},
			expected: "<w:p><w:r><w:t xml:space=\"preserve\">```not a real fence</w:t></w:r></w:p>",
		},
		{
			name:  "quote parses spans",
			block: md.Block{Kind: md.BlockQuote, Text: "*x*"},
			expected: `<w:p><w:pPr><w:pStyle w:val="Quote"/><w:ind w:left="720"/></w:pPr>` +
				`<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">x</w:t></w:r></w:p>`,
		},
		{
			name:     "rule",
			block:    md.Block{Kind: md.BlockRule},
			expected: `<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr></w:pPr></w:p>`,
		},
		{
			name:  "empty list item keeps its run",
			block: md.Block{Kind: md.BlockList, Items: []string{""}},
			expected: `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr>` +
				`<w:r><w:t xml:space="preserve"></w:t></w:r></w:p>`,
		},
		{
			name:  "code line",
			block: md.Block{Kind: md.BlockCode, Lines: []string{"if a < b {"}},
			expected: `<w:p><w:pPr><w:pStyle w:val="Code"/></w:pPr>` +
				`<w:r><w:rPr><w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/><w:sz w:val="18"/></w:rPr>` +
				`<w:t xml:space="preserve"><![CDATA[if a < b {]]></w:t></w:r></w:p>`,
		},
		{
			name:     "empty code block",
			block:    md.Block{Kind: md.BlockCode, Lines: []string{}},
			expected: "",
		},
		{
			name:     "blank",
			block:    md.Block{Kind: md.BlockBlank},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmitBlock(tt.block))
		})
	}
}

func TestEmitBlock_ListNumbering(t *testing.T) {
	ordered := EmitBlock(md.Block{Kind: md.BlockList, Ordered: true, Items: []string{"one", "two", "three"}})
	assert.Equal(t, 3, strings.Count(ordered, "<w:p>"))
	assert.Equal(t, 3, strings.Count(ordered, `<w:numId w:val="1"/>`))
	assert.NotContains(t, ordered, `<w:numId w:val="2"/>`)

	bullets := EmitBlock(md.Block{Kind: md.BlockList, Items: []string{"a", "**b**"}})
	assert.Equal(t, 2, strings.Count(bullets, `<w:numId w:val="2"/>`))
	assert.Equal(t, 2, strings.Count(bullets, `<w:ilvl w:val="0"/>`))
	assert.Contains(t, bullets, `<w:b/>`)
}

func TestEmitBlock_ResolvedSpans(t *testing.T) {
	blocks := md.TokenizeCommonMark([]byte("**bold *it* x**\n\n- *foo `a*b` bar*"))
	assert.Len(t, blocks, 2)

	para := `<w:p>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">bold </w:t></w:r>` +
		`<w:r><w:rPr><w:b/><w:i/></w:rPr><w:t xml:space="preserve">it</w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve"> x</w:t></w:r>` +
		`</w:p>`
	assert.Equal(t, para, EmitBlock(blocks[0]))

	item := EmitBlock(blocks[1])
	assert.Contains(t, item, `<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">foo </w:t></w:r>`)
	assert.Contains(t, item, `<w:i/><w:shd w:val="clear" w:color="auto" w:fill="`)
	assert.Contains(t, item, `<w:t xml:space="preserve">a*b</w:t>`)
	assert.Contains(t, item, `<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve"> bar</w:t></w:r>`)
}

func TestEmitBlock_CodeIsLiteral(t *testing.T) {
	out := EmitBlock(md.Block{Kind: md.BlockCode, Lines: []string{"**not bold**", "a]]>b", ""}})
	assert.Equal(t, 3, strings.Count(out, "<w:p>"))
	assert.Contains(t, out, "**not bold**")
	assert.NotContains(t, out, "<w:b/>")
	assert.Contains(t, out, "a]]&gt;b")
}

func TestEmitBody_NeverEmpty(t *testing.T) {
	assert.Equal(t, EmptyParagraph, EmitBody(nil))
	assert.Equal(t, EmptyParagraph, EmitBody(md.Tokenize(md.SplitLines([]byte("")))))
	assert.Equal(t, EmptyParagraph, EmitBody(md.Tokenize(md.SplitLines([]byte("\n  \n\t\n")))))
	assert.Equal(t, EmptyParagraph, EmitBody([]md.Block{{Kind: md.BlockCode, Lines: []string{}}}))
}

func TestEmitBody_Scenario(t *testing.T) {
	input := "# Title\nSome **bold** and *italic* text.\n- item one\n- item two\n"
	body := EmitBody(md.Tokenize(md.SplitLines([]byte(input))))

	item := func(text string) string {
		return `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr>` +
			`<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
	}
	expected := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t xml:space="preserve">Title</w:t></w:r></w:p>` +
		`<w:p>` +
		`<w:r><w:t xml:space="preserve">Some </w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">bold</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve"> and </w:t></w:r>` +
		`<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">italic</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve"> text.</w:t></w:r>` +
		`</w:p>` +
		item("item one") +
		item("item two")

	assert.Equal(t, expected, body)
}
