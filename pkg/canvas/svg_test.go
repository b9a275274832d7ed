package canvas

import (
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestSVGDocument(t *testing.T) {
	var buf strings.Builder
	c := NewSVG(&buf, 100, 60, 10)

	c.Circle(v2.Vec{X: 5, Y: 5}, 0.8, StyleNormal)
	c.Segment(v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 0}, StyleNormal)
	c.Marker(v2.Vec{X: 5, Y: 0}, StyleAvailable)
	c.End()

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not a closed svg document:\n%s", out)
	}
	if !strings.Contains(out, `width="1000"`) || !strings.Contains(out, `height="600"`) {
		t.Errorf("document size not scaled: %s", firstLine(out))
	}
	if !strings.Contains(out, "<circle") {
		t.Error("no circle element emitted")
	}
	if !strings.Contains(out, "<line") {
		t.Error("no line element emitted")
	}
}

func TestSVGScalesCoordinates(t *testing.T) {
	var buf strings.Builder
	c := NewSVG(&buf, 20, 20, 10)
	c.Segment(v2.Vec{X: 1.5, Y: 2}, v2.Vec{X: 3, Y: 4}, StyleNormal)
	c.End()

	out := buf.String()
	for _, attr := range []string{`x1="15"`, `y1="20"`, `x2="30"`, `y2="40"`} {
		if !strings.Contains(out, attr) {
			t.Errorf("missing scaled attribute %s in:\n%s", attr, out)
		}
	}
}

func TestSVGStyles(t *testing.T) {
	var buf strings.Builder
	c := NewSVG(&buf, 20, 20, 0)
	c.Marker(v2.Vec{X: 1, Y: 1}, StyleSelected)
	c.Segment(v2.Vec{}, v2.Vec{X: 1, Y: 0}, StyleError)
	c.End()

	out := buf.String()
	if !strings.Contains(out, "fill:blue") {
		t.Error("selected marker is not filled")
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("error segment is not dashed")
	}
}

func TestSVGDefaultScale(t *testing.T) {
	var buf strings.Builder
	c := NewSVG(&buf, 10, 10, -1)
	c.End()

	if !strings.Contains(buf.String(), `width="100"`) {
		t.Errorf("scale fallback not applied: %s", firstLine(buf.String()))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
