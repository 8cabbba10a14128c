package svgdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoSVG is returned when the input contains no <svg> element.
var ErrNoSVG = errors.New("svgdoc: no <svg> element found")

// nonRendered lists container elements whose children are never painted directly.
var nonRendered = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"marker":   true,
	"pattern":  true,
	"symbol":   true,
}

// frame is the inherited presentation state of an open element.
type frame struct {
	stroke      string
	strokeWidth float64
	hidden      bool
}

// ParseFile parses an SVG file.
//
// Example:
//
//	doc, err := ParseFile("assets/svg/signature.svg")
//	if err != nil {
//	    log.Fatalf("Failed to parse svg: %v", err)
//	}
//	fmt.Printf("Paths: %d\n", len(doc.Paths))
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read svg file '%s': %w", path, err)
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg from '%s': %w", path, err)
	}
	return doc, nil
}

// Parse reads an SVG document and collects its <path> elements in document order.
// Stroke and stroke-width are inherited from ancestors; paths inside
// non-rendered containers such as <defs> are skipped.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc *Document
	var stack []frame

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var parent frame
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			current := inheritFrame(parent, t)
			stack = append(stack, current)

			switch t.Name.Local {
			case "svg":
				if doc == nil {
					doc = newDocument(t.Attr)
				}
			case "path":
				if doc == nil || current.hidden {
					continue
				}
				doc.Paths = append(doc.Paths, PathElement{
					ID:          attr(t.Attr, "id"),
					Data:        attr(t.Attr, "d"),
					Stroke:      current.stroke,
					StrokeWidth: current.strokeWidth,
				})
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if doc == nil {
		return nil, ErrNoSVG
	}
	return doc, nil
}

// inheritFrame applies an element's own presentation attributes over its parent's.
// The style attribute takes precedence over presentation attributes.
func inheritFrame(parent frame, el xml.StartElement) frame {
	f := parent
	if nonRendered[el.Name.Local] {
		f.hidden = true
	}

	props := map[string]string{}
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "stroke", "stroke-width":
			props[a.Name.Local] = a.Value
		}
	}
	for k, v := range parseStyle(attr(el.Attr, "style")) {
		props[k] = v
	}

	if v, ok := props["stroke"]; ok && v != "inherit" {
		f.stroke = v
	}
	if v, ok := props["stroke-width"]; ok {
		if w := parseLength(v); w > 0 {
			f.strokeWidth = w
		}
	}
	return f
}

func newDocument(attrs []xml.Attr) *Document {
	doc := &Document{
		Width:  parseLength(attr(attrs, "width")),
		Height: parseLength(attr(attrs, "height")),
	}
	if vb, ok := parseViewBox(attr(attrs, "viewBox")); ok {
		doc.ViewBox = vb
	}
	return doc
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// parseStyle splits an inline style declaration into properties.
func parseStyle(style string) map[string]string {
	props := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name != "" && value != "" {
			props[name] = value
		}
	}
	return props
}

// parseLength parses an absolute length in user units ("12", "12px").
// Percentages and unknown units yield 0.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseViewBox(s string) (*ViewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return nil, false
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return nil, false
	}
	return &ViewBox{MinX: v[0], MinY: v[1], Width: v[2], Height: v[3]}, true
}
