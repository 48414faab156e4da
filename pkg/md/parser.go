// parser.go implements the line-driven block tokenizer.

package md

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxHeadingLevel is the deepest heading level; deeper markers are clamped.
const MaxHeadingLevel = 6

var (
	headingRe   = regexp.MustCompile(`^(#+)[ \t]+(.*)$`)
	closingRe   = regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`)
	ruleRe      = regexp.MustCompile(`^-{3,}$`)
	unorderedRe = regexp.MustCompile(`^[-*+][ \t]+(.*)$`)
	orderedRe   = regexp.MustCompile(`^\d+\.[ \t]+(.*)$`)
	fenceRe     = regexp.MustCompile("^(`{3,}|~{3,})(.*)$")
)

// ParseResult is the output of Parse: the block sequence plus any
// degradation warnings noticed on the way.
type ParseResult struct {
	Blocks   []Block
	Warnings []string
}

// AddWarning records a warning about the input.
func (pr *ParseResult) AddWarning(format string, args ...interface{}) {
	pr.Warnings = append(pr.Warnings, fmt.Sprintf(format, args...))
}

func (pr *ParseResult) add(b Block) {
	pr.Blocks = append(pr.Blocks, b)
}

// addListItem appends item to the preceding list block when it is of the
// same kind, otherwise starts a new list.
func (pr *ParseResult) addListItem(ordered bool, item string) {
	if n := len(pr.Blocks); n > 0 {
		last := &pr.Blocks[n-1]
		if last.Kind == BlockList && last.Ordered == ordered {
			last.Items = append(last.Items, item)
			return
		}
	}
	pr.add(Block{Kind: BlockList, Ordered: ordered, Items: []string{item}})
}

// SplitLines splits source text into lines, accepting LF, CRLF and CR
// line endings. A trailing line ending does not produce an extra line.
func SplitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	s := strings.ReplaceAll(string(src), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Tokenize splits a document into block tokens in input order.
func Tokenize(lines []string) []Block {
	return Parse(lines).Blocks
}

// Parse tokenizes lines, one line at a time with one line of lookahead
// for list grouping and fences. Unrecognized syntax becomes a paragraph;
// Parse never fails.
func Parse(lines []string) *ParseResult {
	result := &ParseResult{}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimLeft(lines[i], " \t")

		if strings.TrimSpace(line) == "" {
			result.add(Block{Kind: BlockBlank})
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			if level > MaxHeadingLevel {
				level = MaxHeadingLevel
			}
			text := closingRe.ReplaceAllString(m[2], "")
			result.add(Block{Kind: BlockHeading, Level: level, Text: strings.TrimSpace(text)})
			continue
		}

		if strings.HasPrefix(line, ">") {
			text := strings.TrimPrefix(line[1:], " ")
			result.add(Block{Kind: BlockQuote, Text: strings.TrimRight(text, " \t")})
			continue
		}

		if ruleRe.MatchString(strings.TrimRight(line, " \t")) {
			result.add(Block{Kind: BlockRule})
			continue
		}

		if m := unorderedRe.FindStringSubmatch(line); m != nil {
			result.addListItem(false, strings.TrimSpace(m[1]))
			continue
		}

		if m := orderedRe.FindStringSubmatch(line); m != nil {
			result.addListItem(true, strings.TrimSpace(m[1]))
			continue
		}

		if fence, info, ok := openFence(line); ok {
			block, next, closed := readFence(lines, i+1, fence)
			block.Language = info
			result.add(block)
			if !closed {
				result.AddWarning("line %d: code fence %q is never closed", i+1, fence)
			}
			i = next
			continue
		}

		result.add(Block{Kind: BlockParagraph, Text: strings.TrimSpace(line)})
	}

	return result
}

// openFence reports whether line opens a fenced code block and returns the
// fence marker and the info string.
func openFence(line string) (fence, info string, ok bool) {
	m := fenceRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil {
		return "", "", false
	}
	fence, info = m[1], strings.TrimSpace(m[2])
	// A backtick fence's info string cannot contain backticks; such a line is
	// inline code, not a fence.
	if fence[0] == '`' && strings.Contains(info, "`") {
		return "", "", false
	}
	return fence, info, true
}

// isClosingFence reports whether line closes a block opened with fence.
func isClosingFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

// readFence consumes code lines starting at lines[start] until the closing
// fence. It returns the code block, the index of the last consumed line,
// and whether a closing fence was found. An unterminated fence consumes
// the rest of the input.
func readFence(lines []string, start int, fence string) (Block, int, bool) {
	block := Block{Kind: BlockCode, Lines: []string{}}
	for j := start; j < len(lines); j++ {
		if isClosingFence(lines[j], fence) {
			return block, j, true
		}
		block.Lines = append(block.Lines, lines[j])
	}
	return block, len(lines) - 1, false
}
