package sketch

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Resolve dereferences a point-shaped path to concrete coordinates,
// recursing through any further references it encounters. The mid anchor of
// a line is computed, not stored: it is the componentwise mean of the
// resolved endpoints.
func (s *Session) Resolve(p Path) (v2.Vec, error) {
	return s.resolvePath(p, make(map[Path]bool))
}

// ResolveScalar dereferences a scalar-shaped path (trailing coordinate
// selector, or a scalar data entry) to a concrete number.
func (s *Session) ResolveScalar(p Path) (float64, error) {
	return s.resolveScalarPath(p, make(map[Path]bool))
}

// ResolvePoint resolves a stored PointValue, literal or reference.
func (s *Session) ResolvePoint(pv PointValue) (v2.Vec, error) {
	return s.resolvePointValue(pv, make(map[Path]bool))
}

// ResolveValue resolves a stored scalar Value, literal or reference.
func (s *Session) ResolveValue(v Value) (float64, error) {
	return s.resolveValue(v, make(map[Path]bool))
}

// seen tracks the paths on the current resolution stack. A path revisited
// while still on the stack is a reference cycle; entries are removed on the
// way back out so that diamonds (two coordinates sharing one target) are
// not misreported.

func (s *Session) resolvePath(p Path, seen map[Path]bool) (v2.Vec, error) {
	if p.Scalar() {
		return v2.Vec{}, &ResolveError{Path: p, Kind: ErrInvalidProperty,
			Detail: "scalar path in point context"}
	}
	if seen[p] {
		return v2.Vec{}, &ResolveError{Path: p, Kind: ErrCycle}
	}
	seen[p] = true
	defer delete(seen, p)

	switch p.Col {
	case Steps:
		st := s.Step(p.ID)
		if st == nil {
			return v2.Vec{}, &ResolveError{Path: p, Kind: ErrUnknownID}
		}
		switch data := st.Data.(type) {
		case *PointStep:
			if p.Anchor != PropSelf {
				return v2.Vec{}, &ResolveError{Path: p, Kind: ErrInvalidProperty,
					Detail: fmt.Sprintf("%s exposes only self", data.Kind())}
			}
			return s.resolvePointValue(data.Pos, seen)
		case *LineStep:
			switch p.Anchor {
			case PropStart:
				return s.resolvePointValue(data.Start, seen)
			case PropEnd:
				return s.resolvePointValue(data.End, seen)
			case PropMid:
				a, err := s.resolvePointValue(data.Start, seen)
				if err != nil {
					return v2.Vec{}, err
				}
				b, err := s.resolvePointValue(data.End, seen)
				if err != nil {
					return v2.Vec{}, err
				}
				return a.Add(b).MulScalar(0.5), nil
			}
			return v2.Vec{}, &ResolveError{Path: p, Kind: ErrInvalidProperty,
				Detail: fmt.Sprintf("%s exposes start, mid, end", data.Kind())}
		}
		return v2.Vec{}, &ResolveError{Path: p, Kind: ErrInvalidProperty,
			Detail: fmt.Sprintf("unknown step data %T", st.Data)}

	case Datum:
		d := s.DataEntry(p.ID)
		if d == nil {
			return v2.Vec{}, &ResolveError{Path: p, Kind: ErrUnknownID}
		}
		if p.Anchor != PropSelf {
			return v2.Vec{}, &ResolveError{Path: p, Kind: ErrInvalidProperty,
				Detail: "data entries expose only self"}
		}
		pe, ok := d.Data.(*PointEntry)
		if !ok {
			return v2.Vec{}, &ResolveError{Path: p, Kind: ErrInvalidProperty,
				Detail: fmt.Sprintf("data entry %q is a %s, not a point", d.Name, d.Data.Kind())}
		}
		return s.resolvePointValue(pe.Pos, seen)
	}
	return v2.Vec{}, &ResolveError{Path: p, Kind: ErrMalformedPath,
		Detail: "unknown collection"}
}

func (s *Session) resolveScalarPath(p Path, seen map[Path]bool) (float64, error) {
	if seen[p] {
		return 0, &ResolveError{Path: p, Kind: ErrCycle}
	}
	seen[p] = true
	defer delete(seen, p)

	if p.Scalar() {
		base := p
		base.Coord = PropNone
		pt, err := s.resolvePath(base, seen)
		if err != nil {
			return 0, err
		}
		if p.Coord == PropX {
			return pt.X, nil
		}
		return pt.Y, nil
	}

	// Without a coordinate selector only a scalar data entry resolves to a
	// number; a bare step anchor is too short for a scalar request.
	if p.Col == Datum {
		d := s.DataEntry(p.ID)
		if d == nil {
			return 0, &ResolveError{Path: p, Kind: ErrUnknownID}
		}
		if p.Anchor != PropSelf {
			return 0, &ResolveError{Path: p, Kind: ErrInvalidProperty,
				Detail: "data entries expose only self"}
		}
		if ne, ok := d.Data.(*NumberEntry); ok {
			return s.resolveValue(ne.Val, seen)
		}
		return 0, &ResolveError{Path: p, Kind: ErrMalformedPath,
			Detail: fmt.Sprintf("data entry %q is a point; select x or y", d.Name)}
	}
	return 0, &ResolveError{Path: p, Kind: ErrMalformedPath,
		Detail: "point anchor needs an x or y selector to resolve as a scalar"}
}

func (s *Session) resolveValue(v Value, seen map[Path]bool) (float64, error) {
	if p, ok := v.Path(); ok {
		return s.resolveScalarPath(p, seen)
	}
	lit, _ := v.Literal()
	return lit, nil
}

func (s *Session) resolvePointValue(pv PointValue, seen map[Path]bool) (v2.Vec, error) {
	if p, ok := pv.Path(); ok {
		return s.resolvePath(p, seen)
	}
	x, y, _ := pv.Coords()
	xf, err := s.resolveValue(x, seen)
	if err != nil {
		return v2.Vec{}, err
	}
	yf, err := s.resolveValue(y, seen)
	if err != nil {
		return v2.Vec{}, err
	}
	return v2.Vec{X: xf, Y: yf}, nil
}
