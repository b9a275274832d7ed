package sketch

import "fmt"

// Session owns the step and data sequences for one editing session. It is
// not safe for concurrent use; all mutation and redraw happens on a single
// event loop, mutate-then-redraw, never concurrently.
type Session struct {
	steps []*Step
	data  []*DataEntry

	nextStepID int
	nextDataID int

	// structRev changes when the set of steps changes (add/remove).
	// valueRev changes on literal edits and rebinds. The snap index is
	// memoized on structRev only; value edits must not invalidate it.
	structRev uint64
	valueRev  uint64

	snapRev   uint64
	snapCache []Anchor
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{structRev: 1}
}

// Steps returns the ordered step sequence. The slice is owned by the
// session; callers must not mutate it.
func (s *Session) Steps() []*Step { return s.steps }

// Data returns the ordered data sequence.
func (s *Session) Data() []*DataEntry { return s.data }

// Step returns the step with the given id, or nil.
func (s *Session) Step(id int) *Step {
	for _, st := range s.steps {
		if st.ID == id {
			return st
		}
	}
	return nil
}

// DataEntry returns the data entry with the given id, or nil.
func (s *Session) DataEntry(id int) *DataEntry {
	for _, d := range s.data {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// AppendPointStep appends a draw-point step and returns it.
func (s *Session) AppendPointStep(pos PointValue) *Step {
	st := &Step{ID: s.nextStepID, Data: &PointStep{Pos: pos}}
	s.nextStepID++
	s.steps = append(s.steps, st)
	s.structRev++
	return st
}

// AppendLineStep appends a draw-line step and returns it.
func (s *Session) AppendLineStep(start, end PointValue) *Step {
	st := &Step{ID: s.nextStepID, Data: &LineStep{Start: start, End: end}}
	s.nextStepID++
	s.steps = append(s.steps, st)
	s.structRev++
	return st
}

// RemoveStep removes the step with the given id. Removal is not guarded:
// references into the removed step dangle and fail at resolution time.
func (s *Session) RemoveStep(id int) bool {
	for i, st := range s.steps {
		if st.ID == id {
			s.steps = append(s.steps[:i], s.steps[i+1:]...)
			s.structRev++
			return true
		}
	}
	return false
}

// AppendDataNumber appends a named scalar data entry.
func (s *Session) AppendDataNumber(name string, v Value) *DataEntry {
	d := &DataEntry{ID: s.nextDataID, Name: name, Data: &NumberEntry{Val: v}}
	s.nextDataID++
	s.data = append(s.data, d)
	return d
}

// AppendDataPoint appends a named point data entry.
func (s *Session) AppendDataPoint(name string, p PointValue) *DataEntry {
	d := &DataEntry{ID: s.nextDataID, Name: name, Data: &PointEntry{Pos: p}}
	s.nextDataID++
	s.data = append(s.data, d)
	return d
}

// RemoveData removes the data entry with the given id.
func (s *Session) RemoveData(id int) bool {
	for i, d := range s.data {
		if d.ID == id {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true
		}
	}
	return false
}

// StructuralRev returns the current structural revision. It changes only
// when steps are added or removed.
func (s *Session) StructuralRev() uint64 { return s.structRev }

// ValueRev returns the current value revision.
func (s *Session) ValueRev() uint64 { return s.valueRev }

// ---------------------------------------------------------------------------
// Slots
// ---------------------------------------------------------------------------

// Slot addresses one rebindable value inside a step: a point step's
// position, a line endpoint, or a single coordinate of either.
type Slot struct {
	StepID int
	Point  Property // PropSelf, PropStart, or PropEnd
	Coord  Property // PropX or PropY for scalar slots, PropNone otherwise
}

func (sl Slot) String() string {
	s := fmt.Sprintf("steps[%d].%s", sl.StepID, sl.Point)
	if sl.Coord != PropNone {
		s += "." + sl.Coord.String()
	}
	return s
}

// Scalar reports whether the slot holds a single number.
func (sl Slot) Scalar() bool { return sl.Coord != PropNone }

// pointSlot returns a pointer to the PointValue the slot lives in.
func (s *Session) pointSlot(sl Slot) (*PointValue, error) {
	st := s.Step(sl.StepID)
	if st == nil {
		return nil, &ResolveError{Path: StepAnchor(sl.StepID, PropSelf), Kind: ErrUnknownID,
			Detail: fmt.Sprintf("no step %d", sl.StepID)}
	}
	switch data := st.Data.(type) {
	case *PointStep:
		if sl.Point != PropSelf {
			return nil, &ResolveError{Path: StepAnchor(sl.StepID, sl.Point), Kind: ErrInvalidProperty,
				Detail: fmt.Sprintf("%s has no %s slot", data.Kind(), sl.Point)}
		}
		return &data.Pos, nil
	case *LineStep:
		switch sl.Point {
		case PropStart:
			return &data.Start, nil
		case PropEnd:
			return &data.End, nil
		}
		return nil, &ResolveError{Path: StepAnchor(sl.StepID, sl.Point), Kind: ErrInvalidProperty,
			Detail: fmt.Sprintf("%s has no %s slot", data.Kind(), sl.Point)}
	}
	return nil, &ResolveError{Path: StepAnchor(sl.StepID, sl.Point), Kind: ErrInvalidProperty,
		Detail: fmt.Sprintf("unknown step data %T", st.Data)}
}

// ValidSlot reports whether the slot addresses an existing rebindable value.
func (s *Session) ValidSlot(sl Slot) error {
	_, err := s.pointSlot(sl)
	return err
}

// PointSlot reads the PointValue a non-scalar slot currently holds.
func (s *Session) PointSlot(sl Slot) (PointValue, error) {
	pv, err := s.pointSlot(sl)
	if err != nil {
		return PointValue{}, err
	}
	return *pv, nil
}

// SetPointSlot replaces the PointValue in a non-scalar slot, literal or
// reference. This is the commit half of the infer gesture.
func (s *Session) SetPointSlot(sl Slot, v PointValue) error {
	if sl.Scalar() {
		return fmt.Errorf("slot %s holds a scalar, not a point", sl)
	}
	pv, err := s.pointSlot(sl)
	if err != nil {
		return err
	}
	*pv = v
	s.valueRev++
	return nil
}

// ScalarSlot reads the Value a scalar slot currently holds. Referenced
// points have no addressable coordinate slots.
func (s *Session) ScalarSlot(sl Slot) (Value, error) {
	pv, err := s.pointSlot(sl)
	if err != nil {
		return Value{}, err
	}
	x, y, ok := pv.Coords()
	if !ok {
		return Value{}, fmt.Errorf("slot %s: point is a reference, coordinates are not addressable", sl)
	}
	switch sl.Coord {
	case PropX:
		return x, nil
	case PropY:
		return y, nil
	}
	return Value{}, fmt.Errorf("slot %s is not a scalar slot", sl)
}

// SetScalarSlot replaces the Value in a scalar slot.
func (s *Session) SetScalarSlot(sl Slot, v Value) error {
	pv, err := s.pointSlot(sl)
	if err != nil {
		return err
	}
	x, y, ok := pv.Coords()
	if !ok {
		return fmt.Errorf("slot %s: point is a reference, coordinates are not addressable", sl)
	}
	switch sl.Coord {
	case PropX:
		*pv = PointOf(v, y)
	case PropY:
		*pv = PointOf(x, v)
	default:
		return fmt.Errorf("slot %s is not a scalar slot", sl)
	}
	s.valueRev++
	return nil
}
