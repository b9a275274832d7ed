package sketch

import (
	"errors"
	"fmt"
)

// Severity indicates whether a finding describes a broken reference or an
// advisory condition.
type Severity int

const (
	SeverityError   Severity = iota // reference will fail to resolve
	SeverityWarning                 // advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result.
type Finding struct {
	StepID   int    // step holding the reference (-1 for data entries)
	DataID   int    // data entry holding the reference (-1 for steps)
	Ref      Path   // the stored reference
	Message  string
	Severity Severity
}

func (f Finding) String() string {
	where := fmt.Sprintf("step %d", f.StepID)
	if f.StepID < 0 {
		where = fmt.Sprintf("data %d", f.DataID)
	}
	return fmt.Sprintf("[%s] %s: %s: %s", f.Severity, where, f.Ref.Describe(), f.Message)
}

// storedRef is one reference held somewhere in the session.
type storedRef struct {
	stepID int // -1 when held by a data entry
	dataID int // -1 when held by a step
	path   Path
	scalar bool
}

// storedRefs collects every reference currently stored in the session.
func (s *Session) storedRefs() []storedRef {
	var refs []storedRef

	addPoint := func(stepID, dataID int, pv PointValue) {
		if p, ok := pv.Path(); ok {
			refs = append(refs, storedRef{stepID: stepID, dataID: dataID, path: p})
			return
		}
		x, y, _ := pv.Coords()
		if p, ok := x.Path(); ok {
			refs = append(refs, storedRef{stepID: stepID, dataID: dataID, path: p, scalar: true})
		}
		if p, ok := y.Path(); ok {
			refs = append(refs, storedRef{stepID: stepID, dataID: dataID, path: p, scalar: true})
		}
	}

	for _, st := range s.steps {
		switch data := st.Data.(type) {
		case *PointStep:
			addPoint(st.ID, -1, data.Pos)
		case *LineStep:
			addPoint(st.ID, -1, data.Start)
			addPoint(st.ID, -1, data.End)
		}
	}
	for _, d := range s.data {
		switch data := d.Data.(type) {
		case *NumberEntry:
			if p, ok := data.Val.Path(); ok {
				refs = append(refs, storedRef{stepID: -1, dataID: d.ID, path: p, scalar: true})
			}
		case *PointEntry:
			addPoint(-1, d.ID, data.Pos)
		}
	}
	return refs
}

// Validate runs advisory checks over every stored reference: dangling ids,
// properties invalid for the target's kind, reference cycles, and forward
// references. It is read-only and never mutates the session.
//
// Forward references (a step referencing a step declared at or after it)
// resolve fine and are reported as warnings only; the legacy rule that a
// step may only reference earlier steps no longer applies.
func Validate(s *Session) []Finding {
	var findings []Finding

	for _, ref := range s.storedRefs() {
		var err error
		if ref.scalar {
			_, err = s.ResolveScalar(ref.path)
		} else {
			_, err = s.Resolve(ref.path)
		}
		if err != nil {
			msg := err.Error()
			var re *ResolveError
			if errors.As(err, &re) {
				switch {
				case errors.Is(err, ErrUnknownID):
					msg = fmt.Sprintf("dangling reference: %s no longer exists", re.Path.Describe())
				case errors.Is(err, ErrCycle):
					msg = fmt.Sprintf("reference cycle through %s", re.Path.Describe())
				case errors.Is(err, ErrInvalidProperty):
					msg = fmt.Sprintf("invalid property: %s", re.Error())
				}
			}
			findings = append(findings, Finding{
				StepID:   ref.stepID,
				DataID:   ref.dataID,
				Ref:      ref.path,
				Message:  msg,
				Severity: SeverityError,
			})
			continue
		}

		if ref.stepID >= 0 && ref.path.Col == Steps && ref.path.ID >= ref.stepID {
			findings = append(findings, Finding{
				StepID:   ref.stepID,
				DataID:   ref.dataID,
				Ref:      ref.path,
				Message:  fmt.Sprintf("forward reference to step %d", ref.path.ID),
				Severity: SeverityWarning,
			})
		}
	}

	return findings
}
