// Package infer implements the hit-test state machine behind the infer
// gesture: arm a rebindable slot, track the cursor against the session's
// snap points, and commit the highlighted candidate on click.
//
// The controller is UI-agnostic and deterministic; it consumes logical
// canvas coordinates and never touches a drawing surface.
package infer

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/drawling/pkg/sketch"
)

// DefaultThreshold is the hit distance in logical canvas units below which
// the cursor is considered on a snap point.
const DefaultThreshold = 5.0

// State enumerates the controller states.
type State int

const (
	Idle  State = iota // no infer gesture active
	Armed              // a slot is armed; the cursor is being tracked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	default:
		return "unknown"
	}
}

// Candidate is the value the infer gesture would commit right now: a bound
// reference to the nearest snap point within threshold, or a free literal
// at the cursor.
type Candidate struct {
	Bound bool
	Path  sketch.Path // anchor path, valid when Bound
	At    v2.Vec      // resolved snap position, or the cursor when free
}

// Controller drives the infer gesture for one session. At most one slot is
// armed at a time; arming replaces any prior target.
type Controller struct {
	session   *sketch.Session
	threshold float64

	state    State
	slot     sketch.Slot
	hover    Candidate
	hasHover bool
}

// NewController creates a controller with the default hit threshold.
func NewController(s *sketch.Session) *Controller {
	return &Controller{session: s, threshold: DefaultThreshold}
}

// SetThreshold overrides the hit threshold. Values <= 0 keep the default.
func (c *Controller) SetThreshold(t float64) {
	if t > 0 {
		c.threshold = t
	}
}

// State returns the current controller state.
func (c *Controller) State() State { return c.state }

// ArmedSlot returns the armed slot, if any.
func (c *Controller) ArmedSlot() (sketch.Slot, bool) {
	return c.slot, c.state == Armed
}

// Hover returns the current candidate, valid while armed after at least one
// Track call.
func (c *Controller) Hover() (Candidate, bool) {
	return c.hover, c.state == Armed && c.hasHover
}

// Arm records the slot the next commit writes to. The slot must address an
// existing rebindable value.
func (c *Controller) Arm(slot sketch.Slot) error {
	if err := c.session.ValidSlot(slot); err != nil {
		return fmt.Errorf("infer: cannot arm %s: %w", slot, err)
	}
	c.state = Armed
	c.slot = slot
	c.hasHover = false
	return nil
}

// Cancel clears the armed state without mutating the slot.
func (c *Controller) Cancel() {
	c.state = Idle
	c.hasHover = false
}

// Track recomputes the hover candidate for the given cursor position. It is
// called once per redraw while armed and is a no-op when idle.
//
// The nearest snap point within threshold wins; on an exact distance tie
// the anchor of the earlier step wins, so hit-testing is deterministic.
// Unresolvable anchors (dangling references behind them) are skipped.
func (c *Controller) Track(cursor v2.Vec) (Candidate, bool) {
	if c.state != Armed {
		return Candidate{}, false
	}

	best := Candidate{At: cursor}
	bestDist := c.threshold
	for _, a := range c.session.SnapPoints() {
		pos, err := c.session.Resolve(a.Path)
		if err != nil {
			continue
		}
		d := pos.Sub(cursor).Length()
		if d < bestDist {
			bestDist = d
			best = Candidate{Bound: true, Path: a.Path, At: pos}
		}
	}

	c.hover = best
	c.hasHover = true
	return best, true
}

// Commit writes the current candidate into the armed slot, replacing its
// prior value entirely, and returns the controller to idle. Committing
// without a tracked candidate is an error; cancel instead.
func (c *Controller) Commit() error {
	if c.state != Armed {
		return fmt.Errorf("infer: commit while idle")
	}
	if !c.hasHover {
		return fmt.Errorf("infer: commit before any cursor tracking")
	}

	var err error
	if c.slot.Scalar() {
		err = c.session.SetScalarSlot(c.slot, c.scalarValue())
	} else {
		err = c.session.SetPointSlot(c.slot, c.pointValue())
	}
	if err != nil {
		return fmt.Errorf("infer: commit to %s: %w", c.slot, err)
	}

	c.state = Idle
	c.hasHover = false
	return nil
}

// pointValue renders the candidate as the PointValue to store in a point slot.
func (c *Controller) pointValue() sketch.PointValue {
	if c.hover.Bound {
		return sketch.PointRef(c.hover.Path)
	}
	return sketch.XY(c.hover.At.X, c.hover.At.Y)
}

// scalarValue renders the candidate for a coordinate slot: the bound form
// appends the slot's coordinate selector to the anchor path.
func (c *Controller) scalarValue() sketch.Value {
	if c.hover.Bound {
		if p, err := c.hover.Path.WithCoord(c.slot.Coord); err == nil {
			return sketch.Ref(p)
		}
	}
	if c.slot.Coord == sketch.PropX {
		return sketch.Lit(c.hover.At.X)
	}
	return sketch.Lit(c.hover.At.Y)
}
