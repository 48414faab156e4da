package md

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// cmParser is a goldmark instance configured for the CommonMark engine.
var cmParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
	),
)

// TokenizeCommonMark parses src with a full CommonMark parser and maps the
// result onto the same flat block model Tokenize produces. Inline content
// is resolved from the parse tree into Spans, so nested emphasis and marker
// characters inside code keep the meaning CommonMark gives them. Text and
// Items hold the same content as escaped plain text.
func TokenizeCommonMark(src []byte) []Block {
	if len(src) == 0 {
		return nil
	}

	doc := cmParser.Parser().Parse(text.NewReader(src))
	c := &cmConverter{source: src}
	return c.convertChildren(doc)
}

// cmConverter holds state during AST conversion.
type cmConverter struct {
	source []byte
}

func (c *cmConverter) convertChildren(n ast.Node) []Block {
	var blocks []Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, c.convertNode(child)...)
	}
	return blocks
}

func (c *cmConverter) convertNode(n ast.Node) []Block {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > MaxHeadingLevel {
			level = MaxHeadingLevel
		}
		return []Block{{Kind: BlockHeading, Level: level, Text: EscapeMarkup(c.plainText(node))}}
	case *ast.Paragraph, *ast.TextBlock:
		spans := c.inlineSpans(node)
		return []Block{{Kind: BlockParagraph, Text: EscapeMarkup(PlainText(spans)), Spans: spans}}
	case *ast.List:
		list := Block{Kind: BlockList, Ordered: node.IsOrdered()}
		c.collectItems(node, &list)
		return []Block{list}
	case *ast.Blockquote:
		return c.convertBlockquote(node)
	case *ast.FencedCodeBlock:
		return []Block{{Kind: BlockCode, Lines: c.codeLines(node), Language: string(node.Language(c.source))}}
	case *ast.CodeBlock:
		return []Block{{Kind: BlockCode, Lines: c.codeLines(node)}}
	case *ast.ThematicBreak:
		return []Block{{Kind: BlockRule}}
	case *ast.HTMLBlock:
		var blocks []Block
		for _, line := range c.codeLines(node) {
			if strings.TrimSpace(line) != "" {
				blocks = append(blocks, Block{Kind: BlockParagraph, Text: EscapeMarkup(strings.TrimSpace(line))})
			}
		}
		return blocks
	default:
		return c.convertChildren(n)
	}
}

// collectItems flattens a list and any lists nested in it into one block.
func (c *cmConverter) collectItems(n *ast.List, list *Block) {
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		var b spanBuilder
		var nested []*ast.List
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if len(b.spans) > 0 {
				b.add(" ", 0, "")
			}
			switch ch := child.(type) {
			case *ast.List:
				nested = append(nested, ch)
			case *ast.Paragraph, *ast.TextBlock:
				c.collectChildren(&b, ch, 0, "")
			default:
				b.add(c.plainText(ch), 0, "")
			}
		}
		spans := b.finish()
		list.Items = append(list.Items, EscapeMarkup(PlainText(spans)))
		list.ItemSpans = append(list.ItemSpans, spans)
		for _, sub := range nested {
			c.collectItems(sub, list)
		}
	}
}

// convertBlockquote turns each paragraph of a quote into its own quote block.
func (c *cmConverter) convertBlockquote(n *ast.Blockquote) []Block {
	var blocks []Block
	for _, b := range c.convertChildren(n) {
		if b.Kind == BlockParagraph {
			b.Kind = BlockQuote
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func (c *cmConverter) codeLines(n ast.Node) []string {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(c.source))
	}
	s := strings.TrimSuffix(code.String(), "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// inlineSpans resolves the inline children of n into spans.
func (c *cmConverter) inlineSpans(n ast.Node) []Span {
	var b spanBuilder
	c.collectChildren(&b, n, 0, "")
	return b.finish()
}

func (c *cmConverter) collectChildren(b *spanBuilder, n ast.Node, f Format, target string) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.collect(b, child, f, target)
	}
}

// collect appends the text under n to b. f and target carry the formatting
// of every enclosing inline node.
func (c *cmConverter) collect(b *spanBuilder, n ast.Node, f Format, target string) {
	switch node := n.(type) {
	case *ast.Text:
		b.add(c.textValue(node), f, target)
		if node.SoftLineBreak() || node.HardLineBreak() {
			b.add(" ", f, target)
		}

	case *ast.String:
		b.add(string(node.Value), f, target)

	case *ast.Emphasis:
		if node.Level == 2 {
			c.collectChildren(b, node, f|Bold, target)
		} else {
			c.collectChildren(b, node, f|Italic, target)
		}

	case *extast.Strikethrough:
		c.collectChildren(b, node, f|Strike, target)

	case *ast.CodeSpan:
		b.add(c.plainText(node), f|Code, target)

	case *ast.Link:
		if dest := string(node.Destination); dest != "" {
			c.collectChildren(b, node, f|Link, dest)
		} else {
			c.collectChildren(b, node, f, target)
		}

	case *ast.AutoLink:
		url := string(node.URL(c.source))
		b.add(url, f|Link, url)

	case *ast.Image:
		alt := c.plainText(node)
		if alt == "" {
			alt = string(node.Destination)
		}
		b.add(alt, f, target)

	case *ast.RawHTML:
		segs := node.Segments
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			b.add(string(seg.Value(c.source)), f, target)
		}

	default:
		c.collectChildren(b, node, f, target)
	}
}

// spanBuilder accumulates spans, merging neighbours that share formatting.
type spanBuilder struct {
	spans []Span
}

func (b *spanBuilder) add(text string, f Format, target string) {
	if text == "" {
		return
	}
	if !f.Has(Link) {
		target = ""
	}
	if n := len(b.spans); n > 0 && b.spans[n-1].Format == f && b.spans[n-1].Target == target {
		b.spans[n-1].Text += text
		return
	}
	b.spans = append(b.spans, Span{Text: text, Format: f, Target: target})
}

// finish trims surrounding whitespace and returns the spans. A builder with
// no text yields a single empty span.
func (b *spanBuilder) finish() []Span {
	spans := b.spans
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " \t\n")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " \t\n")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	if len(spans) == 0 {
		return []Span{{}}
	}
	return spans
}

// plainText returns the literal text under n with all markup dropped.
func (c *cmConverter) plainText(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch ch := child.(type) {
		case *ast.Text:
			sb.WriteString(c.textValue(ch))
			if ch.SoftLineBreak() || ch.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(ch.Value)
		default:
			sb.WriteString(c.plainText(ch))
		}
	}
	return sb.String()
}

// textValue returns the literal text of a text node. Code span text is raw;
// elsewhere backslash escapes and character references are resolved.
func (c *cmConverter) textValue(n *ast.Text) string {
	v := n.Segment.Value(c.source)
	if n.IsRaw() {
		return string(v)
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

// inlineMarkers are the characters ParseSpans or Unescape act on.
const inlineMarkers = "\\`*_~[]"

// EscapeMarkup backslash-escapes inline marker characters so that
// ParseSpans treats s as plain text and Unescape(EscapeMarkup(s)) == s.
func EscapeMarkup(s string) string {
	if !strings.ContainsAny(s, inlineMarkers) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(inlineMarkers, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
