package docx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/open-cli-collective/md2docx/pkg/md"
)

// EmitRun renders one span as a w:r element. Run properties are written in
// schema order; an empty span still produces a run with an empty w:t.
func EmitRun(s md.Span) string {
	var sb strings.Builder
	sb.WriteString("<w:r>")
	if props := runProps(s.Format); props != "" {
		sb.WriteString("<w:rPr>" + props + "</w:rPr>")
	}
	writeText(&sb, s.Text)
	sb.WriteString("</w:r>")
	return sb.String()
}

// EmitRuns renders every span in order.
func EmitRuns(spans []md.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(EmitRun(s))
	}
	return sb.String()
}

func runProps(f md.Format) string {
	var sb strings.Builder
	if f.Has(md.Code) {
		sb.WriteString(`<w:rFonts w:ascii="` + codeFont + `" w:hAnsi="` + codeFont + `"/>`)
	}
	if f.Has(md.Bold) {
		sb.WriteString("<w:b/>")
	}
	if f.Has(md.Italic) {
		sb.WriteString("<w:i/>")
	}
	if f.Has(md.Strike) {
		sb.WriteString("<w:strike/>")
	}
	if f.Has(md.Link) {
		sb.WriteString(`<w:color w:val="` + linkColor + `"/><w:u w:val="single"/>`)
	}
	if f.Has(md.Code) {
		sb.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + codeShade + `"/>`)
	}
	return sb.String()
}

// codeRun renders one literal line of a code block.
func codeRun(line string) string {
	var sb strings.Builder
	sb.WriteString(`<w:r><w:rPr><w:rFonts w:ascii="` + codeFont + `" w:hAnsi="` + codeFont + `"/>`)
	sb.WriteString(`<w:sz w:val="` + strconv.Itoa(codeSize) + `"/></w:rPr>`)
	writeText(&sb, line)
	sb.WriteString("</w:r>")
	return sb.String()
}

func writeText(sb *strings.Builder, text string) {
	sb.WriteString(`<w:t xml:space="preserve">`)
	sb.WriteString(EscapeText(text))
	sb.WriteString("</w:t>")
}

var entityEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText makes text safe as element content. Text without markup
// characters is written as is. Otherwise it is wrapped in a CDATA section,
// unless it contains the CDATA terminator, in which case all five XML
// special characters are entity-escaped. Runes XML 1.0 cannot carry are
// dropped.
func EscapeText(text string) string {
	text = xmlChars(text)
	switch {
	case !strings.ContainsAny(text, "&<>"):
		return text
	case !strings.Contains(text, "]]>"):
		return "<![CDATA[" + text + "]]>"
	default:
		return entityEscaper.Replace(text)
	}
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// xmlChars removes characters XML 1.0 does not allow and replaces invalid
// UTF-8 with U+FFFD.
func xmlChars(s string) string {
	clean := true
	for _, r := range s {
		if !isXMLChar(r) || r == utf8.RuneError {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isXMLChar(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
