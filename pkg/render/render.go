// Package render walks a session and produces drawing operations through a
// canvas.Canvas. One redraw is a pure function of (steps, data, armed infer
// target, cursor); recording into a canvas.Recorder yields the command list
// consumed by the frontend.
package render

import (
	"github.com/chazu/drawling/pkg/canvas"
	"github.com/chazu/drawling/pkg/infer"
	"github.com/chazu/drawling/pkg/sketch"
)

// PointRadius is the stroked radius of a draw-point step in logical units.
const PointRadius = 0.8

// StepError reports a step whose geometry could not be fully resolved
// during a redraw. The rest of the scene still draws.
type StepError struct {
	StepID int
	Err    error
}

// Scene performs a full redraw pass: every step's resolved geometry, then
// the snap-point markers, then the infer hover candidate. The controller
// may be nil for a non-interactive render.
//
// A step with a dangling or otherwise unresolvable reference is skipped and
// reported instead of aborting the pass; partially resolvable lines draw an
// error marker at the endpoint that did resolve.
func Scene(s *sketch.Session, ctl *infer.Controller, c canvas.Canvas) []StepError {
	var errs []StepError

	for _, st := range s.Steps() {
		switch data := st.Data.(type) {
		case *sketch.PointStep:
			pos, err := s.ResolvePoint(data.Pos)
			if err != nil {
				errs = append(errs, StepError{StepID: st.ID, Err: err})
				continue
			}
			c.Circle(pos, PointRadius, canvas.StyleNormal)

		case *sketch.LineStep:
			a, errA := s.ResolvePoint(data.Start)
			b, errB := s.ResolvePoint(data.End)
			switch {
			case errA == nil && errB == nil:
				c.Segment(a, b, canvas.StyleNormal)
			case errA == nil:
				c.Marker(a, canvas.StyleError)
				errs = append(errs, StepError{StepID: st.ID, Err: errB})
			case errB == nil:
				c.Marker(b, canvas.StyleError)
				errs = append(errs, StepError{StepID: st.ID, Err: errA})
			default:
				errs = append(errs, StepError{StepID: st.ID, Err: errA})
			}
		}
	}

	armed := ctl != nil && ctl.State() == infer.Armed
	markerStyle := canvas.StyleNormal
	if armed {
		markerStyle = canvas.StyleAvailable
	}
	for _, anchor := range s.SnapPoints() {
		pos, err := s.Resolve(anchor.Path)
		if err != nil {
			// Already reported through the owning step above.
			continue
		}
		c.Marker(pos, markerStyle)
	}

	if ctl != nil {
		if hover, ok := ctl.Hover(); ok {
			style := canvas.StyleSelectedFree
			if hover.Bound {
				style = canvas.StyleSelected
			}
			c.Marker(hover.At, style)
		}
	}

	return errs
}
