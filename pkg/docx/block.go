package docx

import (
	"strconv"
	"strings"

	"github.com/open-cli-collective/md2docx/pkg/md"
)

// EmptyParagraph is the body written for a document with no content.
const EmptyParagraph = "<w:p/>"

const ruleBorder = `<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr>`

// EmitBlock renders one block as zero or more w:p elements.
//
// Headings carry their text as a single run with escapes resolved. Lists
// produce one numbered paragraph per item at level 0. Code blocks produce
// one paragraph per line and are never inline-parsed. Blank blocks and
// empty code blocks produce nothing.
func EmitBlock(b md.Block) string {
	switch b.Kind {
	case md.BlockHeading:
		return paragraph(pStyle(HeadingStyle(b.Level)), EmitRun(md.Span{Text: md.Unescape(b.Text)}))

	case md.BlockParagraph:
		return paragraph("", EmitRuns(b.Inline()))

	case md.BlockQuote:
		props := pStyle(StyleQuote) + `<w:ind w:left="` + strconv.Itoa(quoteIndent) + `"/>`
		return paragraph(props, EmitRuns(b.Inline()))

	case md.BlockList:
		var sb strings.Builder
		props := numPr(NumID(b.Ordered))
		for i := range b.Items {
			sb.WriteString(paragraph(props, EmitRuns(b.ItemInline(i))))
		}
		return sb.String()

	case md.BlockCode:
		var sb strings.Builder
		for _, line := range b.Lines {
			sb.WriteString(paragraph(pStyle(StyleCode), codeRun(line)))
		}
		return sb.String()

	case md.BlockRule:
		return paragraph(ruleBorder, "")

	default:
		return ""
	}
}

// EmitBody renders every block in order. The result always holds at least
// one paragraph.
func EmitBody(blocks []md.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(EmitBlock(b))
	}
	if sb.Len() == 0 {
		return EmptyParagraph
	}
	return sb.String()
}

func paragraph(props, runs string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if props != "" {
		sb.WriteString("<w:pPr>" + props + "</w:pPr>")
	}
	sb.WriteString(runs)
	sb.WriteString("</w:p>")
	return sb.String()
}

func pStyle(id string) string {
	return `<w:pStyle w:val="` + id + `"/>`
}

func numPr(numID int) string {
	return `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="` + strconv.Itoa(numID) + `"/></w:numPr>`
}
