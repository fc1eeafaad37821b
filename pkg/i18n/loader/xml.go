package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// XLIFF1Parser reads XLIFF 1.2 files.
type XLIFF1Parser struct{}

// XLIFF2Parser reads XLIFF 2.0 files.
type XLIFF2Parser struct{}

// XTBParser reads XTB translation bundles.
type XTBParser struct{}

type innerXML struct {
	Content []byte `xml:",innerxml"`
}

type xliff1Document struct {
	XMLName xml.Name `xml:"xliff"`
	Files   []struct {
		TargetLanguage string       `xml:"target-language,attr"`
		Units          []xliff1Unit `xml:"body>trans-unit"`
		GroupUnits     []xliff1Unit `xml:"body>group>trans-unit"`
	} `xml:"file"`
}

type xliff1Unit struct {
	ID     string    `xml:"id,attr"`
	Target *innerXML `xml:"target"`
}

type xliff2Document struct {
	XMLName xml.Name `xml:"xliff"`
	TrgLang string   `xml:"trgLang,attr"`
	Files   []struct {
		Units      []xliff2Unit `xml:"unit"`
		GroupUnits []xliff2Unit `xml:"group>unit"`
	} `xml:"file"`
}

type xliff2Unit struct {
	ID       string `xml:"id,attr"`
	Segments []struct {
		Target *innerXML `xml:"target"`
	} `xml:"segment"`
}

type xtbDocument struct {
	XMLName      xml.Name `xml:"translationbundle"`
	Lang         string   `xml:"lang,attr"`
	Translations []struct {
		ID      string `xml:"id,attr"`
		Content []byte `xml:",innerxml"`
	} `xml:"translation"`
}

// Format implements Parser.
func (XLIFF1Parser) Format() string { return "xliff" }

// CanParse implements Parser.
func (XLIFF1Parser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	return canParseXLIFF(path, contents, diags, "1.2")
}

// Parse implements Parser.
func (XLIFF1Parser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var doc xliff1Document
	if err := xml.Unmarshal(contents, &doc); err != nil {
		diags.Error("Invalid XLIFF 1.2 document: %v", err)
		return "", nil
	}
	messages := map[string]i18n.Message{}
	locale := ""
	for _, file := range doc.Files {
		if locale == "" {
			locale = file.TargetLanguage
		}
		units := append(append([]xliff1Unit(nil), file.Units...), file.GroupUnits...)
		for _, unit := range units {
			addXMLMessage(messages, diags, unit.ID, unit.Target, renderXLIFF1)
		}
	}
	if len(doc.Files) > 1 {
		diags.Warn("More than one <file> element found in XLIFF file; messages of all files were merged.")
	}
	return locale, messages
}

// Format implements Parser.
func (XLIFF2Parser) Format() string { return "xliff2" }

// CanParse implements Parser.
func (XLIFF2Parser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	return canParseXLIFF(path, contents, diags, "2.0")
}

// Parse implements Parser.
func (XLIFF2Parser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var doc xliff2Document
	if err := xml.Unmarshal(contents, &doc); err != nil {
		diags.Error("Invalid XLIFF 2.0 document: %v", err)
		return "", nil
	}
	messages := map[string]i18n.Message{}
	for _, file := range doc.Files {
		units := append(append([]xliff2Unit(nil), file.Units...), file.GroupUnits...)
		for _, unit := range units {
			if len(unit.Segments) == 0 {
				diags.Warn("Missing required <segment> element for message '%s'.", unit.ID)
				continue
			}
			// multiple segments of one unit form a single message
			var target *innerXML
			for _, segment := range unit.Segments {
				if segment.Target == nil {
					continue
				}
				if target == nil {
					target = &innerXML{}
				}
				target.Content = append(target.Content, segment.Target.Content...)
			}
			addXMLMessage(messages, diags, unit.ID, target, renderXLIFF2)
		}
	}
	return doc.TrgLang, messages
}

// Format implements Parser.
func (XTBParser) Format() string { return "xtb" }

// CanParse implements Parser.
func (XTBParser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xtb" && ext != ".xmb" {
		return false
	}
	root, err := rootElement(contents)
	if err != nil {
		diags.Warn("Unable to read XML root element: %v", err)
		return false
	}
	if root.Name.Local != "translationbundle" {
		diags.Warn("The root element is <%s>; expected <translationbundle>.", root.Name.Local)
		return false
	}
	return true
}

// Parse implements Parser.
func (XTBParser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var doc xtbDocument
	if err := xml.Unmarshal(contents, &doc); err != nil {
		diags.Error("Invalid XTB document: %v", err)
		return "", nil
	}
	messages := map[string]i18n.Message{}
	for _, translation := range doc.Translations {
		addXMLMessage(messages, diags, translation.ID, &innerXML{Content: translation.Content}, renderXTB)
	}
	return doc.Lang, messages
}

func canParseXLIFF(path string, contents []byte, diags *Diagnostics, version string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlf" && ext != ".xliff" {
		return false
	}
	root, err := rootElement(contents)
	if err != nil {
		diags.Warn("Unable to read XML root element: %v", err)
		return false
	}
	if root.Name.Local != "xliff" {
		diags.Warn("The root element is <%s>; expected <xliff>.", root.Name.Local)
		return false
	}
	if got := attr(root, "version"); got != version {
		diags.Warn("The XLIFF file is version %q; expected %q.", got, version)
		return false
	}
	return true
}

func addXMLMessage(messages map[string]i18n.Message, diags *Diagnostics, id string, target *innerXML, render func(xml.StartElement, bool) string) {
	if id == "" {
		diags.Error("Missing required \"id\" attribute on translation unit.")
		return
	}
	if target == nil {
		diags.Warn("Missing required <target> element for message '%s'.", id)
		return
	}
	text, err := renderContent(target.Content, render)
	if err != nil {
		diags.Error("Invalid content for message '%s': %v", id, err)
		return
	}
	if _, exists := messages[id]; exists {
		diags.Warn("Duplicate translation unit '%s' in file; the last one is used.", id)
	}
	messages[id] = newMessage(text)
}

// renderContent turns mixed XML content into message text. render maps inline
// elements to placeholder text; its second argument is true for end elements.
func renderContent(content []byte, render func(xml.StartElement, bool) string) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = false
	var out strings.Builder
	var open []xml.StartElement
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			out.Write(t)
		case xml.StartElement:
			open = append(open, t.Copy())
			out.WriteString(render(t, false))
		case xml.EndElement:
			if len(open) == 0 {
				return "", fmt.Errorf("unexpected </%s>", t.Name.Local)
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			out.WriteString(render(start, true))
		}
	}
	return out.String(), nil
}

func renderXLIFF1(el xml.StartElement, end bool) string {
	switch el.Name.Local {
	case "x":
		if end {
			return ""
		}
		return placeholder(attr(el, "id"))
	case "g":
		if end {
			return placeholder("CLOSE_" + attr(el, "id"))
		}
		return placeholder("START_" + attr(el, "id"))
	}
	return ""
}

func renderXLIFF2(el xml.StartElement, end bool) string {
	switch el.Name.Local {
	case "ph":
		if end {
			return ""
		}
		return placeholder(firstAttr(el, "equiv", "id"))
	case "pc":
		if end {
			return placeholder(firstAttr(el, "equivEnd", "id"))
		}
		return placeholder(firstAttr(el, "equivStart", "id"))
	}
	return ""
}

func renderXTB(el xml.StartElement, end bool) string {
	if el.Name.Local == "ph" && !end {
		return placeholder(attr(el, "name"))
	}
	return ""
}

func rootElement(contents []byte) (xml.StartElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(contents))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func firstAttr(el xml.StartElement, names ...string) string {
	for _, name := range names {
		if v := attr(el, name); v != "" {
			return v
		}
	}
	return ""
}
