package sketch

// Anchor pairs an addressable snap-point path with the step exposing it.
// Anchors are synthesized from a step's id and kind; they are never stored
// on the step itself.
type Anchor struct {
	StepID int
	Prop   Property
	Path   Path
}

// SnapPoints returns every anchor path currently addressable: one per
// draw-point step, three per draw-line step. Data entries contribute none.
//
// The result is memoized on the structural revision: anchors depend only on
// which steps exist and their kind, so literal edits and rebinds reuse the
// cached index. Callers must not mutate the returned slice.
func (s *Session) SnapPoints() []Anchor {
	if s.snapCache != nil && s.snapRev == s.structRev {
		return s.snapCache
	}

	idx := make([]Anchor, 0, len(s.steps)*3)
	for _, st := range s.steps {
		for _, prop := range st.Data.Anchors() {
			idx = append(idx, Anchor{
				StepID: st.ID,
				Prop:   prop,
				Path:   StepAnchor(st.ID, prop),
			})
		}
	}

	s.snapCache = idx
	s.snapRev = s.structRev
	return idx
}
