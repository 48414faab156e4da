package md

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata fields md2docx understands from a YAML
// front matter block.
type FrontMatter struct {
	Title  string   `yaml:"title"`
	Author string   `yaml:"author"`
	Tags   []string `yaml:"tags"`
}

// StripFrontMatter removes a leading front matter block from source and
// returns its metadata with the remaining body. Source without front
// matter, or with front matter that does not parse, is returned unchanged
// with ok set to false.
func StripFrontMatter(source []byte) (meta FrontMatter, body []byte, ok bool) {
	if !bytes.HasPrefix(source, []byte("---")) && !bytes.HasPrefix(source, []byte("+++")) {
		return FrontMatter{}, source, false
	}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil || len(body) == len(source) {
		return FrontMatter{}, source, false
	}
	return meta, body, true
}
