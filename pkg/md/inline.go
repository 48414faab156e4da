// inline.go splits a line of inline markup into formatted spans.

package md

import (
	"regexp"
)

// spanPattern describes one inline marker pair. Patterns are listed from
// highest to lowest priority; regexp values keep no scan state, so the
// table is safe to share between goroutines.
type spanPattern struct {
	re     *regexp.Regexp
	format Format
}

var spanPatterns = []spanPattern{
	{regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), Bold | Italic},
	{regexp.MustCompile(`___(.+?)___`), Bold | Italic},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), Bold},
	{regexp.MustCompile(`__(.+?)__`), Bold},
	{regexp.MustCompile(`\*(.+?)\*`), Italic},
	{regexp.MustCompile(`_(.+?)_`), Italic},
	{regexp.MustCompile(`~~(.+?)~~`), Strike},
	{regexp.MustCompile("`([^`]+)`"), Code},
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), Link},
}

// candidate is a pattern match expressed as byte offsets into masked text.
type candidate struct {
	start, end         int
	textStart, textEnd int
	targetStart        int
	targetEnd          int
	priority           int
	format             Format
}

// ParseSpans splits text into an ordered sequence of spans covering the
// whole input. Matches are chosen by start offset (pattern priority breaks
// ties) and a match is kept only when it does not overlap one already kept.
// Text between kept matches becomes plain spans. ParseSpans never fails;
// empty input yields a single empty plain span.
func ParseSpans(text string) []Span {
	masked := Mask(text)
	kept := selectCandidates(masked)

	spans := make([]Span, 0, 2*len(kept)+1)
	pos := 0
	for _, c := range kept {
		if c.start > pos {
			spans = append(spans, plainSpan(masked[pos:c.start]))
		}
		span := Span{
			Text:   Unmask(masked[c.textStart:c.textEnd]),
			Source: unmaskSource(masked[c.start:c.end]),
			Format: c.format,
		}
		if c.format.Has(Link) {
			span.Target = Unmask(masked[c.targetStart:c.targetEnd])
		}
		spans = append(spans, span)
		pos = c.end
	}
	if pos < len(masked) || len(spans) == 0 {
		spans = append(spans, plainSpan(masked[pos:]))
	}
	return spans
}

func plainSpan(masked string) Span {
	return Span{Text: Unmask(masked), Source: unmaskSource(masked)}
}

// matchFrom returns the leftmost match of pattern p starting at or after pos.
func matchFrom(p int, masked string, pos int) (candidate, bool) {
	m := spanPatterns[p].re.FindStringSubmatchIndex(masked[pos:])
	if m == nil {
		return candidate{}, false
	}
	c := candidate{
		start:     pos + m[0],
		end:       pos + m[1],
		textStart: pos + m[2],
		textEnd:   pos + m[3],
		priority:  p,
		format:    spanPatterns[p].format,
	}
	if len(m) >= 6 {
		c.targetStart, c.targetEnd = pos+m[4], pos+m[5]
	}
	return c, true
}

// selectCandidates walks masked left to right, keeping at each step the
// earliest-starting match at or after the end of the last kept one. Each
// pattern's next match is cached and searched again only once a kept match
// has passed its start, and a pattern with no match left is never searched
// again, so a line costs at most one search per pattern per kept match.
func selectCandidates(masked string) []candidate {
	next := make([]candidate, len(spanPatterns))
	state := make([]int8, len(spanPatterns)) // 0 unknown, 1 cached, -1 exhausted

	var kept []candidate
	for pos := 0; pos < len(masked); {
		best := -1
		for p := range spanPatterns {
			if state[p] < 0 {
				continue
			}
			if state[p] == 0 || next[p].start < pos {
				c, ok := matchFrom(p, masked, pos)
				if !ok {
					state[p] = -1
					continue
				}
				next[p], state[p] = c, 1
			}
			if best < 0 || next[p].start < next[best].start {
				best = p
			}
		}
		if best < 0 {
			break
		}
		kept = append(kept, next[best])
		pos = next[best].end
	}
	return kept
}

// PlainText returns the concatenated literal text of the spans.
func PlainText(spans []Span) string {
	var n int
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
