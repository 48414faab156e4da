// Package md tokenizes markdown into the block and span model the docx emitters consume.
package md

// BlockKind identifies the structural kind of a Block.
type BlockKind int

const (
	BlockBlank     BlockKind = iota // empty line
	BlockHeading                    // # .. ######
	BlockParagraph                  // anything else
	BlockList                       // run of adjacent list items
	BlockQuote                      // > quoted line
	BlockCode                       // fenced code block
	BlockRule                       // --- horizontal rule
)

var blockKindNames = map[BlockKind]string{
	BlockBlank:     "blank",
	BlockHeading:   "heading",
	BlockParagraph: "paragraph",
	BlockList:      "list",
	BlockQuote:     "quote",
	BlockCode:      "code",
	BlockRule:      "rule",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Block is one structural unit of a tokenized document.
// Only the fields relevant to Kind are set.
//
// Spans and ItemSpans are set by tokenizers that resolve inline formatting
// themselves. When they are nil the emitters parse Text and Items instead.
type Block struct {
	Kind      BlockKind
	Level     int      // BlockHeading: 1..6
	Text      string   // BlockHeading, BlockParagraph, BlockQuote (inline markup, escapes intact)
	Ordered   bool     // BlockList
	Items     []string // BlockList: inline markup per item
	Lines     []string // BlockCode: literal lines, never inline-parsed
	Language  string   // BlockCode: fence info string
	Spans     []Span   // BlockParagraph, BlockQuote: resolved spans for Text
	ItemSpans [][]Span // BlockList: resolved spans per item
}

// Inline returns the spans of a paragraph or quote block.
func (b Block) Inline() []Span {
	if b.Spans != nil {
		return b.Spans
	}
	return ParseSpans(b.Text)
}

// ItemInline returns the spans of list item i.
func (b Block) ItemInline(i int) []Span {
	if i < len(b.ItemSpans) && b.ItemSpans[i] != nil {
		return b.ItemSpans[i]
	}
	return ParseSpans(b.Items[i])
}

// Format is a set of inline formatting flags.
type Format uint8

const (
	Bold Format = 1 << iota
	Italic
	Strike
	Code
	Link
)

// Has reports whether every flag in f2 is set in f.
func (f Format) Has(f2 Format) bool {
	return f&f2 == f2
}

// Span is a run of text carrying one combination of inline formatting.
type Span struct {
	Text   string // literal text with escapes resolved and markers consumed
	Source string // the exact input substring this span was parsed from; empty for resolved spans
	Format Format
	Target string // link destination when Format has Link
}
