package main

import (
	"os"
	"strings"
	"testing"
)

// TestE2ERefSketchExample exercises the full pipeline: sketch source →
// engine → session → render → draw commands. This is the same path the
// Wails Evaluate and Render bindings take, but without the Wails runtime.
func TestE2ERefSketchExample(t *testing.T) {
	app := NewApp(nil, Options{})

	source, err := os.ReadFile("examples/ref_sketch.sketch")
	if err != nil {
		t.Fatalf("failed to read ref_sketch.sketch: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Two lines and one point.
	if len(result.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(result.Steps))
	}
	wantKinds := []string{"draw-line", "draw-point", "draw-line"}
	for i, st := range result.Steps {
		if st.Kind != wantKinds[i] {
			t.Errorf("step %d kind = %q, want %q", i, st.Kind, wantKinds[i])
		}
	}

	frame := app.Render()
	if len(frame.Errors) > 0 {
		t.Fatalf("render errors: %v", frame.Errors)
	}

	counts := map[string]int{}
	for _, c := range frame.Commands {
		counts[c.Op]++
	}
	if counts["segment"] != 2 {
		t.Errorf("segments = %d, want 2", counts["segment"])
	}
	if counts["circle"] != 1 {
		t.Errorf("circles = %d, want 1", counts["circle"])
	}
	// Snap markers: point self + two lines with start/mid/end each.
	if counts["marker"] != 7 {
		t.Errorf("markers = %d, want 7", counts["marker"])
	}

	// The pinned point sits at the baseline's midpoint (20, 5).
	found := false
	for _, c := range frame.Commands {
		if c.Op == "circle" {
			found = true
			if c.Ax != 20 || c.Ay != 5 {
				t.Errorf("pinned point drawn at (%v, %v), want (20, 5)", c.Ax, c.Ay)
			}
		}
	}
	if !found {
		t.Fatal("no circle command in the frame")
	}

	// No advisory findings on a clean sketch.
	if findings := app.Validate(); len(findings) != 0 {
		t.Errorf("unexpected findings: %v", findings)
	}
}

// TestE2EInferGesture drives the infer flow through the bindings: arm a
// slot, move the pointer near a snap point, click to commit.
func TestE2EInferGesture(t *testing.T) {
	app := NewApp(nil, Options{})

	base := app.AddLineStep(0, 0, 10, 0)
	target := app.AddPointStep(50, 50)

	if msg := app.ArmInfer(target, "self", ""); msg != "" {
		t.Fatalf("ArmInfer: %s", msg)
	}

	// While armed, snap markers render highlighted.
	app.PointerMove(5, 1)
	frame := app.Render()
	seenAvailable := false
	for _, c := range frame.Commands {
		if c.Op == "marker" && c.Style == "available" {
			seenAvailable = true
		}
	}
	if !seenAvailable {
		t.Error("no highlighted snap markers while armed")
	}

	// Click near the line's midpoint: the slot rebinds.
	if msg := app.PointerDown(5, 1); msg != "" {
		t.Fatalf("PointerDown: %s", msg)
	}

	frame = app.Render()
	if len(frame.Errors) > 0 {
		t.Fatalf("render errors after commit: %v", frame.Errors)
	}
	for _, c := range frame.Commands {
		if c.Op == "circle" && (c.Ax != 5 || c.Ay != 0) {
			t.Errorf("rebound point drawn at (%v, %v), want (5, 0)", c.Ax, c.Ay)
		}
	}

	// The reference tracks its source: move the line, the point follows.
	if msg := app.EditScalarSlot(base, "end", "x", 30); msg != "" {
		t.Fatalf("EditScalarSlot: %s", msg)
	}
	frame = app.Render()
	for _, c := range frame.Commands {
		if c.Op == "circle" && (c.Ax != 15 || c.Ay != 0) {
			t.Errorf("point after edit at (%v, %v), want (15, 0)", c.Ax, c.Ay)
		}
	}
	_ = target
}

// TestE2EExportSVG renders the session into an SVG document.
func TestE2EExportSVG(t *testing.T) {
	app := NewApp(nil, Options{})
	app.AddLineStep(0, 0, 10, 0)
	app.AddPointStep(5, 5)

	out := app.ExportSVG(100, 60)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("export is not a closed svg document:\n%s", out)
	}
	if !strings.Contains(out, "<line") || !strings.Contains(out, "<circle") {
		t.Error("exported document is missing shape elements")
	}
}
