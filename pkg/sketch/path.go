package sketch

import "fmt"

// Collection selects which entity sequence a path addresses.
type Collection int

const (
	Steps Collection = iota // drawing steps
	Datum                   // free-standing named values
)

func (c Collection) String() string {
	switch c {
	case Steps:
		return "steps"
	case Datum:
		return "data"
	default:
		return "unknown"
	}
}

// Property enumerates the selectors a path may use. Which selectors are
// legal depends on the kind of the entity the path addresses; that check
// happens at resolution time, but the shape of the selector chain is
// checked when the path is built.
type Property int

const (
	PropNone  Property = iota // absence of a selector
	PropSelf                  // a point step's own position, or a data entry's value
	PropStart                 // a line's start point
	PropMid                   // a line's computed midpoint
	PropEnd                   // a line's end point
	PropX                     // x coordinate of the otherwise-resolved point
	PropY                     // y coordinate of the otherwise-resolved point
)

func (p Property) String() string {
	switch p {
	case PropSelf:
		return "self"
	case PropStart:
		return "start"
	case PropMid:
		return "mid"
	case PropEnd:
		return "end"
	case PropX:
		return "x"
	case PropY:
		return "y"
	default:
		return "none"
	}
}

// ParseProperty converts a selector name from the UI boundary into its
// enum form. The empty string parses to PropNone.
func ParseProperty(name string) (Property, error) {
	switch name {
	case "":
		return PropNone, nil
	case "self":
		return PropSelf, nil
	case "start":
		return PropStart, nil
	case "mid":
		return PropMid, nil
	case "end":
		return PropEnd, nil
	case "x":
		return PropX, nil
	case "y":
		return PropY, nil
	}
	return PropNone, fmt.Errorf("unknown selector %q", name)
}

// isAnchor reports whether p selects a point on an entity.
func (p Property) isAnchor() bool {
	switch p {
	case PropSelf, PropStart, PropMid, PropEnd:
		return true
	}
	return false
}

// isCoord reports whether p selects a single coordinate.
func (p Property) isCoord() bool {
	return p == PropX || p == PropY
}

// Path is an immutable address: a collection, an entity id within it, and a
// selector chain. A well-formed path is always anchor-first, with at most
// one trailing coordinate selector.
type Path struct {
	Col    Collection
	ID     int
	Anchor Property // PropSelf, PropStart, PropMid, or PropEnd
	Coord  Property // PropX or PropY for scalar paths, PropNone otherwise
}

// NewPath builds a path from a raw selector chain, rejecting malformed
// shapes so that only resolvable-shaped paths exist by construction.
func NewPath(col Collection, id int, props ...Property) (Path, error) {
	p := Path{Col: col, ID: id}
	switch len(props) {
	case 1:
		if !props[0].isAnchor() {
			return Path{}, &ResolveError{Path: p, Kind: ErrMalformedPath,
				Detail: fmt.Sprintf("first selector must be an anchor, got %s", props[0])}
		}
		p.Anchor = props[0]
	case 2:
		if !props[0].isAnchor() || !props[1].isCoord() {
			return Path{}, &ResolveError{Path: p, Kind: ErrMalformedPath,
				Detail: fmt.Sprintf("selector chain %s/%s is not anchor then coordinate", props[0], props[1])}
		}
		p.Anchor = props[0]
		p.Coord = props[1]
	default:
		return Path{}, &ResolveError{Path: p, Kind: ErrMalformedPath,
			Detail: fmt.Sprintf("expected 1 or 2 selectors, got %d", len(props))}
	}
	return p, nil
}

// StepAnchor returns the path addressing one snap point of a step.
// It panics on a non-anchor property; callers pass enum constants.
func StepAnchor(id int, anchor Property) Path {
	if !anchor.isAnchor() {
		panic(fmt.Sprintf("sketch: %s is not an anchor selector", anchor))
	}
	return Path{Col: Steps, ID: id, Anchor: anchor}
}

// DataRef returns the path addressing a data entry's own value.
func DataRef(id int) Path {
	return Path{Col: Datum, ID: id, Anchor: PropSelf}
}

// WithCoord returns a scalar path selecting one coordinate of p.
func (p Path) WithCoord(coord Property) (Path, error) {
	if !coord.isCoord() {
		return Path{}, &ResolveError{Path: p, Kind: ErrMalformedPath,
			Detail: fmt.Sprintf("%s is not a coordinate selector", coord)}
	}
	if p.Coord != PropNone {
		return Path{}, &ResolveError{Path: p, Kind: ErrMalformedPath,
			Detail: "path already selects a coordinate"}
	}
	p.Coord = coord
	return p, nil
}

// Scalar reports whether the path resolves to a single number.
func (p Path) Scalar() bool {
	return p.Coord != PropNone
}

// Describe renders the path for UI display, e.g. "steps[2].mid.x".
func (p Path) Describe() string {
	s := fmt.Sprintf("%s[%d].%s", p.Col, p.ID, p.Anchor)
	if p.Coord != PropNone {
		s += "." + p.Coord.String()
	}
	return s
}
