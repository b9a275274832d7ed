package canvas

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// markerRadius is the snap-point marker radius in logical units.
const markerRadius = 1.2

// DefaultSVGScale maps logical canvas units to SVG user units.
const DefaultSVGScale = 10.0

// SVG is a Canvas backend that writes an SVG document. Coordinates are
// scaled from logical units; svgo works in integer user units.
type SVG struct {
	doc   *svg.SVG
	scale float64
}

// NewSVG starts an SVG document covering width x height logical units.
// A scale <= 0 uses DefaultSVGScale. Call End to close the document.
func NewSVG(w io.Writer, width, height int, scale float64) *SVG {
	if scale <= 0 {
		scale = DefaultSVGScale
	}
	doc := svg.New(w)
	doc.Start(int(float64(width)*scale), int(float64(height)*scale))
	return &SVG{doc: doc, scale: scale}
}

// End closes the SVG document.
func (s *SVG) End() { s.doc.End() }

func (s *SVG) px(v float64) int {
	return int(math.Round(v * s.scale))
}

func (s *SVG) Circle(center v2.Vec, r float64, style Style) {
	s.doc.Circle(s.px(center.X), s.px(center.Y), s.px(r), strokeStyle(style))
}

func (s *SVG) Segment(a, b v2.Vec, style Style) {
	s.doc.Line(s.px(a.X), s.px(a.Y), s.px(b.X), s.px(b.Y), strokeStyle(style))
}

func (s *SVG) Marker(at v2.Vec, style Style) {
	s.doc.Circle(s.px(at.X), s.px(at.Y), s.px(markerRadius), markerStyle(style))
}

// strokeStyle maps a Style to SVG style properties for outlines.
func strokeStyle(style Style) string {
	switch style {
	case StyleAvailable:
		return "fill:none;stroke:blue"
	case StyleSelected:
		return "fill:none;stroke:blue;stroke-width:2"
	case StyleSelectedFree:
		return "fill:none;stroke:blue;stroke-dasharray:2,2"
	case StyleError:
		return "fill:none;stroke:gray;stroke-dasharray:4,2"
	default:
		return "fill:none;stroke:black"
	}
}

// markerStyle maps a Style to SVG style properties for snap markers.
// A selected (bound) marker is filled; a free candidate is not.
func markerStyle(style Style) string {
	switch style {
	case StyleAvailable:
		return "fill:none;stroke:blue"
	case StyleSelected:
		return "fill:blue;stroke:blue"
	case StyleSelectedFree:
		return "fill:none;stroke:blue"
	case StyleError:
		return "fill:none;stroke:gray;stroke-dasharray:4,2"
	default:
		return "fill:none;stroke:black"
	}
}
