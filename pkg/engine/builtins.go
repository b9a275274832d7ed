package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/drawling/pkg/sketch"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms sketch-script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. ; line comments become // comments, which is what zygomys expects.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a literal sketch.PointValue produced by (xy ...).
type sexpPoint struct {
	pv sketch.PointValue
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	x, y, ok := p.pv.Coords()
	if !ok {
		return "(xy ref)"
	}
	xf, _ := x.Literal()
	yf, _ := y.Literal()
	return fmt.Sprintf("(xy %.2f %.2f)", xf, yf)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpPath wraps a sketch.Path produced by (sref ...) or (dref ...).
type sexpPath struct {
	path sketch.Path
}

func (p *sexpPath) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(ref %s)", p.path.Describe())
}
func (p *sexpPath) Type() *zygo.RegisteredType { return nil }

// sexpStepRef wraps the id of a step created during this evaluation.
type sexpStepRef struct {
	id int
}

func (s *sexpStepRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(step %d)", s.id)
}
func (s *sexpStepRef) Type() *zygo.RegisteredType { return nil }

// sexpDataRef wraps the id of a data entry created during this evaluation.
type sexpDataRef struct {
	id   int
	name string
}

func (d *sexpDataRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(data %d %q)", d.id, d.name)
}
func (d *sexpDataRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without its prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if len(str.S) > len(kwPrefix) && str.S[:len(kwPrefix)] == kwPrefix {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer id from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toProperty converts a keyword to a path selector.
func toProperty(s zygo.Sexp) (sketch.Property, error) {
	name, ok := isKW(s)
	if !ok {
		str, err := toString(s)
		if err != nil {
			return sketch.PropNone, fmt.Errorf("expected selector keyword: %w", err)
		}
		name = str
	}
	p, err := sketch.ParseProperty(name)
	if err != nil || p == sketch.PropNone {
		return sketch.PropNone, fmt.Errorf("invalid selector %q, expected self/start/mid/end/x/y", name)
	}
	return p, nil
}

// toValue converts a Sexp to a resolvable scalar: a number literal or a
// scalar-shaped reference.
func toValue(s zygo.Sexp) (sketch.Value, error) {
	if ref, ok := s.(*sexpPath); ok {
		return sketch.Ref(ref.path), nil
	}
	f, err := toFloat64(s)
	if err != nil {
		return sketch.Value{}, err
	}
	return sketch.Lit(f), nil
}

// toPointValue converts a Sexp to a resolvable point: an (xy ...) literal
// or an anchor reference.
func toPointValue(s zygo.Sexp) (sketch.PointValue, error) {
	switch v := s.(type) {
	case *sexpPoint:
		return v.pv, nil
	case *sexpPath:
		if v.path.Scalar() {
			return sketch.PointValue{}, fmt.Errorf("reference %s is a scalar, not a point", v.path.Describe())
		}
		return sketch.PointRef(v.path), nil
	}
	return sketch.PointValue{}, fmt.Errorf("expected point or reference, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the sketch-script builtins into a zygomys
// environment. The builtins append to the provided session during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() first so that
// :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, session *sketch.Session) {

	// -----------------------------------------------------------------------
	// (xy 10 20) — a literal point; coordinates may be scalar references
	// -----------------------------------------------------------------------
	env.AddFunction("xy", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("xy requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toValue(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xy: x: %w", err)
		}
		y, err := toValue(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xy: y: %w", err)
		}
		return &sexpPoint{pv: sketch.PointOf(x, y)}, nil
	})

	// -----------------------------------------------------------------------
	// (sref 2 :mid) / (sref 2 :end :x) — reference into a step's anchors
	// -----------------------------------------------------------------------
	env.AddFunction("sref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 || len(args) > 3 {
			return zygo.SexpNull, fmt.Errorf("sref requires a step id and 1-2 selectors, got %d args", len(args))
		}
		id, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sref: id: %w", err)
		}
		props := make([]sketch.Property, 0, 2)
		for _, a := range args[1:] {
			p, err := toProperty(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sref: %w", err)
			}
			props = append(props, p)
		}
		path, err := sketch.NewPath(sketch.Steps, id, props...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sref: %w", err)
		}
		return &sexpPath{path: path}, nil
	})

	// -----------------------------------------------------------------------
	// (dref 1) / (dref 1 :x) — reference into a data entry
	// -----------------------------------------------------------------------
	env.AddFunction("dref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 || len(args) > 2 {
			return zygo.SexpNull, fmt.Errorf("dref requires a data id and an optional coordinate, got %d args", len(args))
		}
		id, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dref: id: %w", err)
		}
		path := sketch.DataRef(id)
		if len(args) == 2 {
			coord, err := toProperty(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("dref: %w", err)
			}
			path, err = path.WithCoord(coord)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("dref: %w", err)
			}
		}
		return &sexpPath{path: path}, nil
	})

	// -----------------------------------------------------------------------
	// (point :at (xy 10 20)) — append a draw-point step
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pos := sketch.XY(0, 0)
		if v, ok := pa.kw["at"]; ok {
			pv, err := toPointValue(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("point: at: %w", err)
			}
			pos = pv
		}
		st := session.AppendPointStep(pos)
		return &sexpStepRef{id: st.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (line :start (xy 0 0) :end (sref 0 :self)) — append a draw-line step
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		start := sketch.XY(0, 0)
		end := sketch.XY(0, 0)
		if v, ok := pa.kw["start"]; ok {
			pv, err := toPointValue(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: start: %w", err)
			}
			start = pv
		}
		if v, ok := pa.kw["end"]; ok {
			pv, err := toPointValue(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: end: %w", err)
			}
			end = pv
		}
		st := session.AppendLineStep(start, end)
		return &sexpStepRef{id: st.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (num "width" 19) — append a named scalar data entry
	// -----------------------------------------------------------------------
	env.AddFunction("num", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("num requires a name and a value, got %d args", len(args))
		}
		entryName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("num: name: %w", err)
		}
		val, err := toValue(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("num: value: %w", err)
		}
		d := session.AppendDataNumber(entryName, val)
		return &sexpDataRef{id: d.ID, name: entryName}, nil
	})

	// -----------------------------------------------------------------------
	// (pt "origin" (xy 0 0)) — append a named point data entry
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires a name and a point, got %d args", len(args))
		}
		entryName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: name: %w", err)
		}
		pos, err := toPointValue(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: point: %w", err)
		}
		d := session.AppendDataPoint(entryName, pos)
		return &sexpDataRef{id: d.ID, name: entryName}, nil
	})
}
