// Package svgdoc provides the SVG document model and parsers used to discover
// drawable paths. Only <path> elements are collected; other shapes are ignored.
package svgdoc

// Document is a parsed SVG document reduced to what the stroke animation needs.
type Document struct {
	// Width and Height are the outer <svg> dimensions in user units.
	// Zero when the attribute is missing or not an absolute length (e.g. "100%").
	Width  float64
	Height float64

	// ViewBox is the <svg> viewBox, nil when absent
	ViewBox *ViewBox

	// Paths lists every rendered <path> in document order,
	// including paths nested inside groups.
	Paths []PathElement
}

// ViewBox is the user coordinate rectangle of the document.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// PathElement is a single <path> element.
type PathElement struct {
	// ID is the element id attribute, may be empty
	ID string

	// Data is the raw "d" attribute
	Data string

	// Stroke is the effective stroke paint (inherited from ancestor groups),
	// e.g. "#333" or "none". Empty when never specified.
	Stroke string

	// StrokeWidth is the effective stroke width, 0 when never specified
	StrokeWidth float64
}

// Size returns the document size in user units.
// Falls back to the viewBox dimensions when width/height are missing.
func (d *Document) Size() (width, height float64) {
	width, height = d.Width, d.Height
	if d.ViewBox != nil {
		if width == 0 {
			width = d.ViewBox.Width
		}
		if height == 0 {
			height = d.ViewBox.Height
		}
	}
	return width, height
}
