package docx

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Element selectors match on local name so they hold whatever prefix a
// producer bound the namespaces to.
var (
	selOverride     = xpath.MustCompile(`//*[local-name()='Override']`)
	selDefault      = xpath.MustCompile(`//*[local-name()='Default']`)
	selRelationship = xpath.MustCompile(`//*[local-name()='Relationship']`)
	selStyle        = xpath.MustCompile(`//*[local-name()='style']`)
	selNum          = xpath.MustCompile(`//*[local-name()='num']`)
	selAbstractNum  = xpath.MustCompile(`//*[local-name()='abstractNum']`)
	selAbstractRef  = xpath.MustCompile(`*[local-name()='abstractNumId']`)
	selPStyle       = xpath.MustCompile(`//*[local-name()='pStyle']`)
	selNumID        = xpath.MustCompile(`//*[local-name()='numPr']/*[local-name()='numId']`)
	selBody         = xpath.MustCompile(`/*[local-name()='document']/*[local-name()='body']`)
)

// VerifyError lists every problem Verify found in a package.
type VerifyError struct {
	Problems []string
}

func (e *VerifyError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid package: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid package: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type verifier struct {
	pkg      *Package
	docs     map[string]*xmlquery.Node
	problems []string
}

func (v *verifier) addProblem(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// Verify checks that a package is structurally sound: the mandatory parts
// exist and are well-formed XML, every part has a content type, every
// relationship target exists, and every style and numbering reference in
// the document is declared. All problems are reported in one *VerifyError.
func Verify(pkg *Package) error {
	v := &verifier{pkg: pkg, docs: make(map[string]*xmlquery.Node)}

	for _, name := range RequiredParts {
		if _, ok := pkg.Part(name); !ok {
			v.addProblem("missing part %s", name)
		}
	}

	for _, part := range pkg.parts {
		if !isXMLPart(part.Name) {
			continue
		}
		doc, err := xmlquery.Parse(bytes.NewReader(part.Data))
		if err != nil {
			v.addProblem("%s: not well-formed: %v", part.Name, err)
			continue
		}
		v.docs[part.Name] = doc
	}

	v.checkContentTypes()
	v.checkRelationships()
	v.checkDocument()

	if len(v.problems) > 0 {
		return &VerifyError{Problems: v.problems}
	}
	return nil
}

func isXMLPart(name string) bool {
	return strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".rels")
}

func (v *verifier) checkContentTypes() {
	doc := v.docs[PartContentTypes]
	if doc == nil {
		return
	}

	overrides := make(map[string]bool)
	for _, n := range xmlquery.QuerySelectorAll(doc, selOverride) {
		name := strings.TrimPrefix(attr(n, "PartName"), "/")
		overrides[name] = true
		if _, ok := v.pkg.Part(name); !ok {
			v.addProblem("%s: override for missing part /%s", PartContentTypes, name)
		}
	}

	defaults := make(map[string]bool)
	for _, n := range xmlquery.QuerySelectorAll(doc, selDefault) {
		defaults[strings.ToLower(attr(n, "Extension"))] = true
	}

	for _, name := range v.pkg.Names() {
		if name == PartContentTypes || overrides[name] {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if !defaults[ext] {
			v.addProblem("%s: no content type for %s", PartContentTypes, name)
		}
	}
}

func (v *verifier) checkRelationships() {
	names := make([]string, 0, len(v.docs))
	for name := range v.docs {
		if strings.HasSuffix(name, ".rels") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		for _, n := range xmlquery.QuerySelectorAll(v.docs[name], selRelationship) {
			if attr(n, "TargetMode") == "External" {
				continue
			}
			target := resolveTarget(name, attr(n, "Target"))
			if _, ok := v.pkg.Part(target); !ok {
				v.addProblem("%s: relationship %s targets missing part %s", name, attr(n, "Id"), target)
			}
		}
	}
}

// resolveTarget resolves a relationship target against the part the
// relationship file describes: "word/_rels/document.xml.rels" resolves
// relative to "word/".
func resolveTarget(relsName, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	base := path.Dir(path.Dir(relsName))
	if base == "." {
		return path.Clean(target)
	}
	return path.Join(base, target)
}

func (v *verifier) checkDocument() {
	doc := v.docs[PartDocument]
	if doc == nil {
		return
	}
	if xmlquery.QuerySelector(doc, selBody) == nil {
		v.addProblem("%s: no document body", PartDocument)
	}

	if styles := v.docs[PartStyles]; styles != nil {
		declared := make(map[string]bool)
		for _, n := range xmlquery.QuerySelectorAll(styles, selStyle) {
			declared[attr(n, "styleId")] = true
		}
		for _, id := range distinctVals(doc, selPStyle) {
			if !declared[id] {
				v.addProblem("%s: paragraph style %q is not declared", PartDocument, id)
			}
		}
	}

	if numbering := v.docs[PartNumbering]; numbering != nil {
		abstract := make(map[string]bool)
		for _, n := range xmlquery.QuerySelectorAll(numbering, selAbstractNum) {
			abstract[attr(n, "abstractNumId")] = true
		}
		declared := make(map[string]bool)
		for _, n := range xmlquery.QuerySelectorAll(numbering, selNum) {
			id := attr(n, "numId")
			declared[id] = true
			if ref := xmlquery.QuerySelector(n, selAbstractRef); ref == nil || !abstract[attr(ref, "val")] {
				v.addProblem("%s: num %s has no abstract definition", PartNumbering, id)
			}
		}
		for _, id := range distinctVals(doc, selNumID) {
			if !declared[id] {
				v.addProblem("%s: numbering id %s is not declared", PartDocument, id)
			}
		}
	} else if len(distinctVals(doc, selNumID)) > 0 {
		v.addProblem("%s: numbering referenced without a numbering part", PartDocument)
	}
}

// distinctVals returns the distinct val attributes of the selected
// elements in document order.
func distinctVals(doc *xmlquery.Node, sel *xpath.Expr) []string {
	seen := make(map[string]bool)
	var vals []string
	for _, n := range xmlquery.QuerySelectorAll(doc, sel) {
		val := attr(n, "val")
		if !seen[val] {
			seen[val] = true
			vals = append(vals, val)
		}
	}
	return vals
}

// attr returns the value of the attribute with the given local name.
func attr(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// NumberingRefs counts the numbered paragraphs per numbering id in a
// document part.
func NumberingRefs(document []byte) (map[int]int, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	counts := make(map[int]int)
	for _, n := range xmlquery.QuerySelectorAll(doc, selNumID) {
		id, err := strconv.Atoi(attr(n, "val"))
		if err != nil {
			return nil, fmt.Errorf("invalid numbering id %q", attr(n, "val"))
		}
		counts[id]++
	}
	return counts, nil
}
