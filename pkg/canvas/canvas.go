// Package canvas defines the abstract drawing surface interface.
// Implementations (command recorder, SVG writer) sit behind this interface
// so the frontend drawing collaborator can be swapped freely.
package canvas

import v2 "github.com/deadsy/sdfx/vec/v2"

// Style selects how a shape is drawn.
type Style int

const (
	StyleNormal       Style = iota // literal primitives, idle state
	StyleAvailable                 // snap points highlighted while infer is armed
	StyleSelected                  // hover candidate bound to a snap point (filled)
	StyleSelectedFree              // hover candidate at a free position (unfilled)
	StyleError                     // unresolvable primitive (dashed)
)

func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleAvailable:
		return "available"
	case StyleSelected:
		return "selected"
	case StyleSelectedFree:
		return "selected-free"
	case StyleError:
		return "error"
	default:
		return "unknown"
	}
}

// Canvas is the abstract drawing surface. Coordinates are logical canvas
// units; scaling to device pixels is the implementation's concern.
type Canvas interface {
	// Circle strokes a circle outline.
	Circle(center v2.Vec, r float64, style Style)
	// Segment strokes a line segment.
	Segment(a, b v2.Vec, style Style)
	// Marker draws a snap-point marker.
	Marker(at v2.Vec, style Style)
}

// Op enumerates recorded drawing operations.
type Op int

const (
	OpCircle Op = iota
	OpSegment
	OpMarker
)

func (o Op) String() string {
	switch o {
	case OpCircle:
		return "circle"
	case OpSegment:
		return "segment"
	case OpMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Command is one recorded drawing operation. A redraw is a pure function of
// session state; the command list is its value.
type Command struct {
	Op    Op
	A     v2.Vec  // center, or segment start
	B     v2.Vec  // segment end
	R     float64 // circle radius
	Style Style
}

// Recorder is a Canvas that records commands instead of drawing.
type Recorder struct {
	cmds []Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Circle(center v2.Vec, radius float64, style Style) {
	r.cmds = append(r.cmds, Command{Op: OpCircle, A: center, R: radius, Style: style})
}

func (r *Recorder) Segment(a, b v2.Vec, style Style) {
	r.cmds = append(r.cmds, Command{Op: OpSegment, A: a, B: b, Style: style})
}

func (r *Recorder) Marker(at v2.Vec, style Style) {
	r.cmds = append(r.cmds, Command{Op: OpMarker, A: at, Style: style})
}

// Commands returns the recorded command list in draw order.
func (r *Recorder) Commands() []Command { return r.cmds }

// Reset clears the recorder for the next frame.
func (r *Recorder) Reset() { r.cmds = r.cmds[:0] }
