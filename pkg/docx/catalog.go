// Package docx emits WordprocessingML from the md token model and assembles
// the parts of a .docx package.
package docx

import "strconv"

// Paragraph style ids declared in styles.xml.
const (
	StyleNormal = "Normal"
	StyleQuote  = "Quote"
	StyleCode   = "Code"
)

// Numbering ids declared in numbering.xml.
const (
	NumOrdered = 1
	NumBullet  = 2
)

// MaxHeadingLevel is the deepest heading style the catalog declares.
const MaxHeadingLevel = 6

// Run formatting values.
const (
	codeFont    = "Courier New"
	codeSize    = 18 // half-points
	codeShade   = "F2F2F2"
	linkColor   = "0563C1"
	quoteIndent = 720 // twentieths of a point
)

// HeadingStyle returns the style id for a heading of the given level,
// clamped to 1..6.
func HeadingStyle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > MaxHeadingLevel {
		level = MaxHeadingLevel
	}
	return "Heading" + strconv.Itoa(level)
}

// NumID returns the numbering id for an ordered or unordered list.
func NumID(ordered bool) int {
	if ordered {
		return NumOrdered
	}
	return NumBullet
}

// StyleIDs returns every paragraph style id styles.xml declares.
func StyleIDs() []string {
	ids := []string{StyleNormal}
	for level := 1; level <= MaxHeadingLevel; level++ {
		ids = append(ids, HeadingStyle(level))
	}
	return append(ids, StyleQuote, StyleCode)
}

// NumIDs returns every numbering id numbering.xml declares.
func NumIDs() []int {
	return []int{NumOrdered, NumBullet}
}
