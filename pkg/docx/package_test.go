package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	pkg := Assemble(EmptyParagraph)

	assert.Equal(t, RequiredParts, pkg.Names())

	doc, ok := pkg.Part(PartDocument)
	require.True(t, ok)
	assert.Contains(t, string(doc), "<w:body><w:p/></w:body>")
	assert.True(t, bytes.HasPrefix(doc, []byte(`<?xml version="1.0"`)))

	styles, ok := pkg.Part(PartStyles)
	require.True(t, ok)
	for _, id := range StyleIDs() {
		assert.Contains(t, string(styles), `w:styleId="`+id+`"`)
	}

	numbering, ok := pkg.Part(PartNumbering)
	require.True(t, ok)
	assert.Contains(t, string(numbering), `<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`)
	assert.Contains(t, string(numbering), `<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>`)
	assert.Contains(t, string(numbering), `<w:numFmt w:val="decimal"/>`)

	_, ok = pkg.Part("word/missing.xml")
	assert.False(t, ok)
}

func TestAssemble_FixedPartsDoNotDependOnBody(t *testing.T) {
	a := Assemble(EmptyParagraph)
	b := Assemble(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`)

	for _, name := range RequiredParts {
		if name == PartDocument {
			continue
		}
		pa, _ := a.Part(name)
		pb, _ := b.Part(name)
		assert.Equal(t, pa, pb, name)
	}
}

func TestConvert_Scenario(t *testing.T) {
	src := []byte("# Title\nSome **bold** and *italic* text.\n- item one\n- item two\n")

	pkg, err := Convert(src, Options{})
	require.NoError(t, err)
	require.NoError(t, Verify(pkg))
	assert.Empty(t, pkg.Warnings)

	doc, _ := pkg.Part(PartDocument)
	refs, err := NumberingRefs(doc)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{NumBullet: 2}, refs)
	assert.Contains(t, string(doc), `<w:pStyle w:val="Heading1"/>`)
}

func TestConvert_Engines(t *testing.T) {
	src := []byte("1. one\n2. two\n\n> quoted\n")

	for _, engine := range []Engine{EngineNative, EngineCommonMark} {
		t.Run(string(engine), func(t *testing.T) {
			pkg, err := Convert(src, Options{Engine: engine})
			require.NoError(t, err)
			require.NoError(t, Verify(pkg))

			doc, _ := pkg.Part(PartDocument)
			refs, err := NumberingRefs(doc)
			require.NoError(t, err)
			assert.Equal(t, map[int]int{NumOrdered: 2}, refs)
			assert.Contains(t, string(doc), `<w:pStyle w:val="Quote"/>`)
		})
	}
}

func TestConvert_UnknownEngine(t *testing.T) {
	_, err := Convert([]byte("x"), Options{Engine: "pandoc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestConvert_Title(t *testing.T) {
	pkg, err := Convert([]byte("body"), Options{Title: "Notes *draft*"})
	require.NoError(t, err)

	doc, _ := pkg.Part(PartDocument)
	assert.Contains(t, string(doc),
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t xml:space="preserve">Notes *draft*</w:t></w:r></w:p>`)
}

func TestConvert_WarnsOnUnterminatedFence(t *testing.T) {
	pkg, err := Convert([]byte("```\ncode"), Options{})
	require.NoError(t, err)
	require.Len(t, pkg.Warnings, 1)
	assert.Contains(t, pkg.Warnings[0], "never closed")
}

func TestConvert_EmptyDocument(t *testing.T) {
	pkg, err := Convert(nil, Options{})
	require.NoError(t, err)
	require.NoError(t, Verify(pkg))

	doc, _ := pkg.Part(PartDocument)
	assert.Contains(t, string(doc), "<w:body><w:p/></w:body>")
}

func TestPackage_WriteTo(t *testing.T) {
	pkg, err := Convert([]byte("# Hi\n\ntext & more"), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := pkg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, len(RequiredParts))
	assert.Equal(t, PartContentTypes, zr.File[0].Name)
	for _, f := range zr.File {
		assert.Equal(t, zip.Deflate, f.Method, f.Name)
	}

	read, err := ReadPackage(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, pkg.Names(), read.Names())
	for _, name := range pkg.Names() {
		want, _ := pkg.Part(name)
		got, _ := read.Part(name)
		assert.Equal(t, want, got, name)
	}
	assert.NoError(t, Verify(read))
}

func TestPackage_WriteToContentTypesFirst(t *testing.T) {
	pkg := Assemble(EmptyParagraph)
	pkg.parts = append(pkg.parts[1:], pkg.parts[0])

	data, err := pkg.Bytes()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, PartContentTypes, zr.File[0].Name)
}

func TestPackage_BytesDeterministic(t *testing.T) {
	a, err := Assemble(EmptyParagraph).Bytes()
	require.NoError(t, err)
	b, err := Assemble(EmptyParagraph).Bytes()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReadPackage_NotAZip(t *testing.T) {
	data := []byte("definitely not a zip archive")
	_, err := ReadPackage(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid package archive")
}
