package sketch

import (
	"errors"
	"testing"
)

func TestStepIDsMonotonic(t *testing.T) {
	s := NewSession()
	a := s.AppendPointStep(XY(0, 0))
	b := s.AppendLineStep(XY(0, 0), XY(1, 1))
	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", a.ID, b.ID)
	}

	// Removal never frees an id for reuse.
	s.RemoveStep(b.ID)
	c := s.AppendPointStep(XY(2, 2))
	if c.ID != 2 {
		t.Errorf("id after remove = %d, want 2", c.ID)
	}
}

func TestRemoveStep(t *testing.T) {
	s := NewSession()
	a := s.AppendPointStep(XY(0, 0))
	b := s.AppendPointStep(XY(1, 1))

	if !s.RemoveStep(a.ID) {
		t.Fatal("RemoveStep returned false for existing step")
	}
	if s.RemoveStep(a.ID) {
		t.Error("RemoveStep returned true for already-removed step")
	}
	if s.Step(a.ID) != nil {
		t.Error("removed step still retrievable")
	}
	if s.Step(b.ID) == nil {
		t.Error("unrelated step lost")
	}
	if len(s.Steps()) != 1 {
		t.Errorf("step count = %d, want 1", len(s.Steps()))
	}
}

func TestDataCRUD(t *testing.T) {
	s := NewSession()
	w := s.AppendDataNumber("width", Lit(19))
	o := s.AppendDataPoint("origin", XY(0, 0))
	if w.ID != 0 || o.ID != 1 {
		t.Fatalf("data ids = %d, %d, want 0, 1", w.ID, o.ID)
	}
	if s.DataEntry(w.ID) == nil {
		t.Fatal("data entry not retrievable")
	}
	if got := s.DataEntry(w.ID).Data.Kind(); got != DataNumber {
		t.Errorf("kind = %v, want %v", got, DataNumber)
	}

	if !s.RemoveData(w.ID) {
		t.Fatal("RemoveData returned false for existing entry")
	}
	if s.DataEntry(w.ID) != nil {
		t.Error("removed data entry still retrievable")
	}
}

func TestStructuralRevision(t *testing.T) {
	s := NewSession()
	rev := s.StructuralRev()

	st := s.AppendPointStep(XY(0, 0))
	if s.StructuralRev() == rev {
		t.Error("append did not bump structural revision")
	}

	rev = s.StructuralRev()
	if err := s.SetPointSlot(Slot{StepID: st.ID, Point: PropSelf}, XY(5, 5)); err != nil {
		t.Fatalf("SetPointSlot: %v", err)
	}
	if s.StructuralRev() != rev {
		t.Error("value edit bumped structural revision")
	}
	if s.ValueRev() == 0 {
		t.Error("value edit did not bump value revision")
	}

	s.RemoveStep(st.ID)
	if s.StructuralRev() == rev {
		t.Error("remove did not bump structural revision")
	}
}

func TestSlotAccess(t *testing.T) {
	s := NewSession()
	ln := s.AppendLineStep(XY(1, 2), XY(3, 4))

	pv, err := s.PointSlot(Slot{StepID: ln.ID, Point: PropStart})
	if err != nil {
		t.Fatalf("PointSlot: %v", err)
	}
	x, y, ok := pv.Coords()
	if !ok {
		t.Fatal("literal point reported as reference")
	}
	if xf, _ := x.Literal(); xf != 1 {
		t.Errorf("start.x = %v, want 1", xf)
	}
	if yf, _ := y.Literal(); yf != 2 {
		t.Errorf("start.y = %v, want 2", yf)
	}

	// Scalar slot write.
	if err := s.SetScalarSlot(Slot{StepID: ln.ID, Point: PropEnd, Coord: PropX}, Lit(9)); err != nil {
		t.Fatalf("SetScalarSlot: %v", err)
	}
	got, err := s.Resolve(StepAnchor(ln.ID, PropEnd))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.X != 9 || got.Y != 4 {
		t.Errorf("end = (%v, %v), want (9, 4)", got.X, got.Y)
	}
}

func TestSlotErrors(t *testing.T) {
	s := NewSession()
	pt := s.AppendPointStep(XY(0, 0))
	ln := s.AppendLineStep(XY(0, 0), XY(1, 1))

	if err := s.ValidSlot(Slot{StepID: 99, Point: PropSelf}); !errors.Is(err, ErrUnknownID) {
		t.Errorf("missing step: err = %v, want ErrUnknownID", err)
	}
	if err := s.ValidSlot(Slot{StepID: pt.ID, Point: PropStart}); !errors.Is(err, ErrInvalidProperty) {
		t.Errorf("point.start slot: err = %v, want ErrInvalidProperty", err)
	}
	if err := s.ValidSlot(Slot{StepID: ln.ID, Point: PropMid}); !errors.Is(err, ErrInvalidProperty) {
		t.Errorf("line.mid slot: err = %v, want ErrInvalidProperty (mid is derived, not a slot)", err)
	}

	// Coordinate slots of a referenced point are not addressable.
	s.SetPointSlot(Slot{StepID: ln.ID, Point: PropStart}, PointRef(StepAnchor(pt.ID, PropSelf)))
	if err := s.SetScalarSlot(Slot{StepID: ln.ID, Point: PropStart, Coord: PropX}, Lit(1)); err == nil {
		t.Error("scalar write through a referenced point should fail")
	}
}
