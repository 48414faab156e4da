package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/open-cli-collective/md2docx/pkg/md"
)

// Part names of a WordprocessingML package.
const (
	PartContentTypes = "[Content_Types].xml"
	PartRels         = "_rels/.rels"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartStyles       = "word/styles.xml"
	PartNumbering    = "word/numbering.xml"
	PartDocument     = "word/document.xml"
)

// RequiredParts lists the parts every package must contain, in write order.
var RequiredParts = []string{
	PartContentTypes,
	PartRels,
	PartDocumentRels,
	PartStyles,
	PartNumbering,
	PartDocument,
}

// maxPartSize bounds how much of a single part ReadPackage will load.
const maxPartSize = 64 << 20

// PackageTime is the modification time stamped on every archive entry, so
// identical input produces byte-identical packages.
var PackageTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Part is one named entry of a package.
type Part struct {
	Name string
	Data []byte
}

// Package is an ordered set of named parts.
type Package struct {
	parts []Part

	// Warnings collects tokenizer degradation notes from Convert.
	Warnings []string
}

// Assemble wraps body markup in the document part and adds the fixed
// manifest, relationship, style and numbering parts.
func Assemble(body string) *Package {
	return &Package{parts: []Part{
		{Name: PartContentTypes, Data: []byte(contentTypesXML)},
		{Name: PartRels, Data: []byte(rootRelsXML)},
		{Name: PartDocumentRels, Data: []byte(documentRelsXML)},
		{Name: PartStyles, Data: []byte(stylesXML)},
		{Name: PartNumbering, Data: []byte(numberingXML)},
		{Name: PartDocument, Data: []byte(documentXML(body))},
	}}
}

// Part returns the content of the named part.
func (p *Package) Part(name string) ([]byte, bool) {
	for _, part := range p.parts {
		if part.Name == name {
			return part.Data, true
		}
	}
	return nil, false
}

// Names returns the part names in package order.
func (p *Package) Names() []string {
	names := make([]string, len(p.parts))
	for i, part := range p.parts {
		names[i] = part.Name
	}
	return names
}

// Engine selects the markdown front end.
type Engine string

const (
	// EngineNative is the line-driven tokenizer.
	EngineNative Engine = "native"
	// EngineCommonMark parses with a full CommonMark implementation.
	EngineCommonMark Engine = "commonmark"
)

// ValidEngines lists the accepted engine names.
var ValidEngines = []string{string(EngineNative), string(EngineCommonMark)}

// Options controls Convert.
type Options struct {
	Engine Engine // defaults to EngineNative
	Title  string // when set, emitted as a leading Heading1
}

// Convert runs the whole pipeline over markdown source and returns the
// assembled package.
func Convert(src []byte, opts Options) (*Package, error) {
	var blocks []md.Block
	var warnings []string

	switch opts.Engine {
	case EngineNative, "":
		result := md.Parse(md.SplitLines(src))
		blocks, warnings = result.Blocks, result.Warnings
	case EngineCommonMark:
		blocks = md.TokenizeCommonMark(src)
	default:
		return nil, fmt.Errorf("unknown engine %q (valid: native, commonmark)", opts.Engine)
	}

	if opts.Title != "" {
		title := md.Block{Kind: md.BlockHeading, Level: 1, Text: md.EscapeMarkup(opts.Title)}
		blocks = append([]md.Block{title}, blocks...)
	}

	pkg := Assemble(EmitBody(blocks))
	pkg.Warnings = warnings
	return pkg, nil
}

// WriteTo writes the package as a zip archive. The content type manifest
// is always the first entry.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	ordered := make([]Part, 0, len(p.parts))
	for _, part := range p.parts {
		if part.Name == PartContentTypes {
			ordered = append([]Part{part}, ordered...)
		} else {
			ordered = append(ordered, part)
		}
	}

	for _, part := range ordered {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.Name,
			Method:   zip.Deflate,
			Modified: PackageTime,
		})
		if err != nil {
			return cw.n, fmt.Errorf("creating %s: %w", part.Name, err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return cw.n, fmt.Errorf("writing %s: %w", part.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("finishing archive: %w", err)
	}
	return cw.n, nil
}

// Bytes returns the package as zip archive bytes.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadPackage loads every entry of a zip archive as a package part.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("invalid package archive: %w", err)
	}

	pkg := &Package{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		pkg.parts = append(pkg.parts, Part{Name: f.Name, Data: data})
	}
	return pkg, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("part %s exceeds %d bytes", f.Name, maxPartSize)
	}
	return data, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
