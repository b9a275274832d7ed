package main

import (
	"testing"
)

// ---------------------------------------------------------------------------
// 1. Empty editor: empty string -> 0 steps, 0 errors, non-nil slices.
// ---------------------------------------------------------------------------

func TestE2EEmptySource(t *testing.T) {
	app := NewApp(nil, Options{})
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Steps) != 0 {
		t.Errorf("expected 0 steps for empty source, got %d", len(result.Steps))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Steps == nil {
		t.Error("Steps should be non-nil empty slice, got nil")
	}
}

// ---------------------------------------------------------------------------
// 2. Syntax error: the session is not replaced, the editor keeps working
//    against the last good state.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorKeepsSession(t *testing.T) {
	app := NewApp(nil, Options{})

	good := app.Evaluate(`(point :at (xy 1 1))`)
	if len(good.Errors) != 0 {
		t.Fatalf("setup eval failed: %v", good.Errors)
	}

	bad := app.Evaluate(`(point :at (xy 1 1)`)
	if len(bad.Errors) == 0 {
		t.Fatal("expected eval error for unmatched paren")
	}
	if bad.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}

	// The last good session still renders.
	frame := app.Render()
	if len(frame.Errors) != 0 {
		t.Errorf("render errors after failed eval: %v", frame.Errors)
	}
	circles := 0
	for _, c := range frame.Commands {
		if c.Op == "circle" {
			circles++
		}
	}
	if circles != 1 {
		t.Errorf("circles = %d, want 1 from the last good session", circles)
	}
}

// ---------------------------------------------------------------------------
// 3. Dangling reference: removing a referenced step degrades that step to a
//    per-step error, the rest of the scene still renders.
// ---------------------------------------------------------------------------

func TestE2EDanglingReferenceRenders(t *testing.T) {
	app := NewApp(nil, Options{})

	result := app.Evaluate(`
(line :start (xy 0 0) :end (xy 10 0))
(point :at (sref 0 :mid))
(point :at (xy 3 3))
`)
	if len(result.Errors) != 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}

	if !app.RemoveStep(0) {
		t.Fatal("RemoveStep(0) returned false")
	}

	frame := app.Render()
	if len(frame.Errors) != 1 {
		t.Fatalf("got %d render errors, want 1: %v", len(frame.Errors), frame.Errors)
	}
	if frame.Errors[0].StepID != 1 {
		t.Errorf("error blames step %d, want 1", frame.Errors[0].StepID)
	}

	// The literal point still drew.
	circles := 0
	for _, c := range frame.Commands {
		if c.Op == "circle" {
			circles++
		}
	}
	if circles != 1 {
		t.Errorf("circles = %d, want 1", circles)
	}

	// Validate agrees and names the holder.
	findings := app.Validate()
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(findings), findings)
	}
	if findings[0].StepID != 1 || findings[0].Severity != "error" {
		t.Errorf("finding = %+v, want error on step 1", findings[0])
	}
}

// ---------------------------------------------------------------------------
// 4. Infer edge cases through the bindings.
// ---------------------------------------------------------------------------

func TestE2EArmInvalidSlot(t *testing.T) {
	app := NewApp(nil, Options{})
	app.AddPointStep(0, 0)

	if msg := app.ArmInfer(99, "self", ""); msg == "" {
		t.Error("arming a missing step should report an error")
	}
	if msg := app.ArmInfer(0, "mid", ""); msg == "" {
		t.Error("arming point.mid should report an error")
	}
	if msg := app.ArmInfer(0, "corner", ""); msg == "" {
		t.Error("arming an unknown selector should report an error")
	}
}

func TestE2EPointerDownWhileIdle(t *testing.T) {
	app := NewApp(nil, Options{})
	target := app.AddPointStep(7, 7)

	// A click with nothing armed is an ordinary click, not an error.
	if msg := app.PointerDown(1, 1); msg != "" {
		t.Errorf("idle PointerDown returned %q", msg)
	}

	frame := app.Render()
	for _, c := range frame.Commands {
		if c.Op == "circle" && (c.Ax != 7 || c.Ay != 7) {
			t.Errorf("point moved to (%v, %v) by an idle click", c.Ax, c.Ay)
		}
	}
	_ = target
}

func TestE2ECancelInfer(t *testing.T) {
	app := NewApp(nil, Options{})
	app.AddLineStep(0, 0, 10, 0)
	target := app.AddPointStep(50, 50)

	app.ArmInfer(target, "self", "")
	app.PointerMove(5, 0)
	app.CancelInfer()

	frame := app.Render()
	for _, c := range frame.Commands {
		if c.Op == "marker" && c.Style != "normal" {
			t.Errorf("marker style %q after cancel, want normal", c.Style)
		}
		if c.Op == "circle" && (c.Ax != 50 || c.Ay != 50) {
			t.Errorf("point moved to (%v, %v) by a cancelled gesture", c.Ax, c.Ay)
		}
	}
}

// ---------------------------------------------------------------------------
// 5. Breaking a reference back to a literal.
// ---------------------------------------------------------------------------

func TestE2EResetSlotLiteral(t *testing.T) {
	app := NewApp(nil, Options{})

	result := app.Evaluate(`
(line :start (xy 0 0) :end (xy 10 0))
(point :at (sref 0 :mid))
`)
	if len(result.Errors) != 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}

	if msg := app.ResetSlotLiteral(1, "self"); msg != "" {
		t.Fatalf("ResetSlotLiteral: %s", msg)
	}

	// The point froze at (5, 0); moving the line no longer affects it.
	if msg := app.EditScalarSlot(0, "end", "x", 30); msg != "" {
		t.Fatalf("EditScalarSlot: %s", msg)
	}
	frame := app.Render()
	for _, c := range frame.Commands {
		if c.Op == "circle" && (c.Ax != 5 || c.Ay != 0) {
			t.Errorf("point at (%v, %v) after reset, want frozen (5, 0)", c.Ax, c.Ay)
		}
	}
}
