package sketch

// Value is a resolvable scalar: either a stored literal or a reference to
// another entity's scalar. The zero value is the literal 0.
type Value struct {
	ref *Path
	lit float64
}

// Lit returns a literal scalar value.
func Lit(v float64) Value {
	return Value{lit: v}
}

// Ref returns a scalar value that resolves through the given path.
// The path must be scalar-shaped (trailing coordinate selector) unless it
// addresses a scalar data entry; that is checked at resolution time.
func Ref(p Path) Value {
	return Value{ref: &p}
}

// IsRef reports whether the value is an indirection.
func (v Value) IsRef() bool { return v.ref != nil }

// Path returns the reference path, if the value is one.
func (v Value) Path() (Path, bool) {
	if v.ref == nil {
		return Path{}, false
	}
	return *v.ref, true
}

// Literal returns the stored literal, if the value is one.
func (v Value) Literal() (float64, bool) {
	if v.ref != nil {
		return 0, false
	}
	return v.lit, true
}

// PointValue is a resolvable point. It is either a reference to another
// entity's anchor point, or a pair of coordinates each of which resolves
// independently (so a literal point may still have a referenced x).
type PointValue struct {
	ref  *Path
	x, y Value
}

// XY returns a fully literal point value.
func XY(x, y float64) PointValue {
	return PointValue{x: Lit(x), y: Lit(y)}
}

// PointOf returns a point whose coordinates are the given resolvables.
func PointOf(x, y Value) PointValue {
	return PointValue{x: x, y: y}
}

// PointRef returns a point that resolves through the given anchor path.
func PointRef(p Path) PointValue {
	return PointValue{ref: &p}
}

// IsRef reports whether the point is an indirection.
func (p PointValue) IsRef() bool { return p.ref != nil }

// Path returns the reference path, if the point is one.
func (p PointValue) Path() (Path, bool) {
	if p.ref == nil {
		return Path{}, false
	}
	return *p.ref, true
}

// Coords returns the coordinate resolvables of a non-reference point.
func (p PointValue) Coords() (x, y Value, ok bool) {
	if p.ref != nil {
		return Value{}, Value{}, false
	}
	return p.x, p.y, true
}
