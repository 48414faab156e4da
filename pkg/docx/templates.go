package docx

import (
	"fmt"
	"strconv"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Namespaces used by the package parts.
const (
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relTypeBase     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
)

// Content types of the package parts.
const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering     = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
)

var contentTypesXML = xmlHeader + `<Types xmlns="` + nsContentTypes + `">
  <Default Extension="rels" ContentType="` + ctRelationships + `"/>
  <Default Extension="xml" ContentType="` + ctXML + `"/>
  <Override PartName="/` + PartDocument + `" ContentType="` + ctDocument + `"/>
  <Override PartName="/` + PartStyles + `" ContentType="` + ctStyles + `"/>
  <Override PartName="/` + PartNumbering + `" ContentType="` + ctNumbering + `"/>
</Types>`

var rootRelsXML = xmlHeader + `<Relationships xmlns="` + nsRelationships + `">
  <Relationship Id="rId1" Type="` + relTypeBase + `officeDocument" Target="` + PartDocument + `"/>
</Relationships>`

var documentRelsXML = xmlHeader + `<Relationships xmlns="` + nsRelationships + `">
  <Relationship Id="rId1" Type="` + relTypeBase + `styles" Target="styles.xml"/>
  <Relationship Id="rId2" Type="` + relTypeBase + `numbering" Target="numbering.xml"/>
</Relationships>`

// headingFormat holds per-level heading size (half-points) and spacing before.
var headingFormat = [MaxHeadingLevel]struct {
	size   int
	before int
}{
	{32, 240},
	{26, 200},
	{24, 160},
	{22, 140},
	{22, 120},
	{22, 120},
}

var stylesXML = buildStyles()

func buildStyles() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:styles xmlns:w="` + nsMain + `">` + "\n")
	sb.WriteString(`  <w:style w:type="paragraph" w:default="1" w:styleId="` + StyleNormal + `">
    <w:name w:val="Normal"/>
    <w:qFormat/>
    <w:pPr><w:spacing w:after="120"/></w:pPr>
    <w:rPr><w:sz w:val="22"/></w:rPr>
  </w:style>` + "\n")

	for i, h := range headingFormat {
		level := i + 1
		fmt.Fprintf(&sb, `  <w:style w:type="paragraph" w:styleId="%s">
    <w:name w:val="heading %d"/>
    <w:basedOn w:val="%s"/>
    <w:next w:val="%s"/>
    <w:qFormat/>
    <w:pPr><w:keepNext/><w:spacing w:before="%d" w:after="120"/><w:outlineLvl w:val="%d"/></w:pPr>
    <w:rPr><w:b/><w:color w:val="2F5597"/><w:sz w:val="%d"/></w:rPr>
  </w:style>`+"\n", HeadingStyle(level), level, StyleNormal, StyleNormal, h.before, level-1, h.size)
	}

	fmt.Fprintf(&sb, `  <w:style w:type="paragraph" w:styleId="%s">
    <w:name w:val="Quote"/>
    <w:basedOn w:val="%s"/>
    <w:qFormat/>
    <w:pPr><w:spacing w:before="120" w:after="120"/><w:ind w:left="%d"/></w:pPr>
    <w:rPr><w:i/><w:color w:val="666666"/></w:rPr>
  </w:style>`+"\n", StyleQuote, StyleNormal, quoteIndent)

	fmt.Fprintf(&sb, `  <w:style w:type="paragraph" w:styleId="%s">
    <w:name w:val="Code"/>
    <w:basedOn w:val="%s"/>
    <w:pPr><w:shd w:val="clear" w:color="auto" w:fill="F5F5F5"/><w:spacing w:before="0" w:after="0"/><w:ind w:left="360"/></w:pPr>
    <w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:sz w:val="%d"/></w:rPr>
  </w:style>`+"\n", StyleCode, StyleNormal, codeFont, codeFont, codeSize)

	sb.WriteString(`</w:styles>`)
	return sb.String()
}

var numberingXML = xmlHeader + `<w:numbering xmlns:w="` + nsMain + `">
  <w:abstractNum w:abstractNumId="0">
    <w:multiLevelType w:val="singleLevel"/>
    <w:lvl w:ilvl="0">
      <w:start w:val="1"/>
      <w:numFmt w:val="decimal"/>
      <w:lvlText w:val="%1."/>
      <w:lvlJc w:val="left"/>
      <w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr>
    </w:lvl>
  </w:abstractNum>
  <w:abstractNum w:abstractNumId="1">
    <w:multiLevelType w:val="singleLevel"/>
    <w:lvl w:ilvl="0">
      <w:start w:val="1"/>
      <w:numFmt w:val="bullet"/>
      <w:lvlText w:val="•"/>
      <w:lvlJc w:val="left"/>
      <w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr>
    </w:lvl>
  </w:abstractNum>
  <w:num w:numId="` + strconv.Itoa(NumOrdered) + `"><w:abstractNumId w:val="0"/></w:num>
  <w:num w:numId="` + strconv.Itoa(NumBullet) + `"><w:abstractNumId w:val="1"/></w:num>
</w:numbering>`

// documentXML wraps emitted body markup in the document root.
func documentXML(body string) string {
	return xmlHeader + `<w:document xmlns:w="` + nsMain + `"><w:body>` + body + `</w:body></w:document>`
}
