package md

import (
	"path/filepath"
	"strings"
)

// DocxExt is the extension of produced documents.
const DocxExt = ".docx"

// markdownExts lists the extensions treated as markdown input.
var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkd":      true,
}

// htmlExts lists the extensions converted from HTML before tokenizing.
var htmlExts = map[string]bool{
	".html": true,
	".htm":  true,
}

// IsMarkdown reports whether name has a markdown extension.
func IsMarkdown(name string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(name))]
}

// IsHTML reports whether name has an HTML extension.
func IsHTML(name string) bool {
	return htmlExts[strings.ToLower(filepath.Ext(name))]
}

// IsSource reports whether name is an input md2docx converts.
func IsSource(name string) bool {
	return IsMarkdown(name) || IsHTML(name)
}

// OutputName returns name with its source extension replaced by .docx.
// Names without an extension get .docx appended.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + DocxExt
}
