package main

import (
	"bytes"
	"context"
	"log/slog"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/drawling/pkg/canvas"
	"github.com/chazu/drawling/pkg/engine"
	"github.com/chazu/drawling/pkg/infer"
	"github.com/chazu/drawling/pkg/render"
	"github.com/chazu/drawling/pkg/sketch"
)

// Default canvas extents in logical units.
const (
	DefaultCanvasWidth  = 100
	DefaultCanvasHeight = 60
)

// Options contains app-wide settings.
type Options struct {
	InferThreshold float64 // hit distance for snap points, logical units
	CanvasWidth    int     // logical canvas extent, used for SVG export defaults
	CanvasHeight   int
}

// DefaultOptions returns the settings a fresh app starts with.
func DefaultOptions() Options {
	return Options{
		InferThreshold: infer.DefaultThreshold,
		CanvasWidth:    DefaultCanvasWidth,
		CanvasHeight:   DefaultCanvasHeight,
	}
}

// normalize fills zero fields with defaults.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.InferThreshold <= 0 {
		o.InferThreshold = d.InferThreshold
	}
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = d.CanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = d.CanvasHeight
	}
	return o
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
//
// Wails dispatches bindings one at a time from the frontend event loop, so
// mutation and redraw interleave on a single logical thread; the session is
// never mutated concurrently with a render.
type App struct {
	ctx    context.Context
	log    *slog.Logger
	opts   Options
	engine *engine.Engine

	session *sketch.Session
	ctl     *infer.Controller
}

// NewApp creates a new App with an empty session. Zero option fields fall
// back to defaults.
func NewApp(logger *slog.Logger, opts Options) *App {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.normalize()
	session := sketch.NewSession()
	ctl := infer.NewController(session)
	ctl.SetThreshold(opts.InferThreshold)
	return &App{
		log:     logger,
		opts:    opts,
		engine:  engine.NewEngine(),
		session: session,
		ctl:     ctl,
	}
}

// startup is called by Wails on app startup. The context is saved so we can
// call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ---------------------------------------------------------------------------
// JSON-serializable DTOs for the frontend
// ---------------------------------------------------------------------------

// CommandData is one drawing command in the frontend format.
type CommandData struct {
	Op    string  `json:"op"`
	Ax    float64 `json:"ax"`
	Ay    float64 `json:"ay"`
	Bx    float64 `json:"bx,omitempty"`
	By    float64 `json:"by,omitempty"`
	R     float64 `json:"r,omitempty"`
	Style string  `json:"style"`
}

// StepErrorData reports a step skipped during a redraw.
type StepErrorData struct {
	StepID  int    `json:"stepId"`
	Message string `json:"message"`
}

// RenderResult is a full frame: draw commands plus per-step errors.
type RenderResult struct {
	Commands []CommandData   `json:"commands"`
	Errors   []StepErrorData `json:"errors"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// StepInfo describes one step for the step list panel.
type StepInfo struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
}

// EvalResult is the full result of a script evaluation.
type EvalResult struct {
	Errors []EvalErrorData `json:"errors"`
	Steps  []StepInfo      `json:"steps"`
}

// FindingData is a JSON-serializable validation finding.
type FindingData struct {
	Severity string `json:"severity"`
	StepID   int    `json:"stepId"`
	DataID   int    `json:"dataId"`
	Ref      string `json:"ref"`
	Message  string `json:"message"`
}

// ---------------------------------------------------------------------------
// Script evaluation
// ---------------------------------------------------------------------------

// Evaluate runs a sketch script and, on success, replaces the current
// session with the one it built. Any armed infer gesture is discarded.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}, Steps: []StepInfo{}}

	session, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	a.session = session
	a.ctl = infer.NewController(session)
	a.ctl.SetThreshold(a.opts.InferThreshold)
	for _, st := range session.Steps() {
		result.Steps = append(result.Steps, StepInfo{ID: st.ID, Kind: st.Data.Kind().String()})
	}
	a.log.Info("script evaluated", "steps", len(result.Steps))
	return result
}

// ---------------------------------------------------------------------------
// Step and data CRUD
// ---------------------------------------------------------------------------

// AddPointStep appends a draw-point step at a literal position.
func (a *App) AddPointStep(x, y float64) int {
	return a.session.AppendPointStep(sketch.XY(x, y)).ID
}

// AddLineStep appends a draw-line step with literal endpoints.
func (a *App) AddLineStep(x1, y1, x2, y2 float64) int {
	return a.session.AppendLineStep(sketch.XY(x1, y1), sketch.XY(x2, y2)).ID
}

// RemoveStep removes a step by id. References into it dangle and are
// reported per-step by the next render.
func (a *App) RemoveStep(id int) bool {
	return a.session.RemoveStep(id)
}

// AddDataNumber appends a named scalar data entry.
func (a *App) AddDataNumber(name string, v float64) int {
	return a.session.AppendDataNumber(name, sketch.Lit(v)).ID
}

// AddDataPoint appends a named point data entry.
func (a *App) AddDataPoint(name string, x, y float64) int {
	return a.session.AppendDataPoint(name, sketch.XY(x, y)).ID
}

// RemoveData removes a data entry by id.
func (a *App) RemoveData(id int) bool {
	return a.session.RemoveData(id)
}

// EditScalarSlot overwrites one literal coordinate of a step, e.g. after a
// drag-to-edit gesture in the step panel.
func (a *App) EditScalarSlot(stepID int, point, coord string, value float64) string {
	slot, err := a.parseSlot(stepID, point, coord)
	if err != nil {
		return err.Error()
	}
	if err := a.session.SetScalarSlot(slot, sketch.Lit(value)); err != nil {
		return err.Error()
	}
	return ""
}

// ResetSlotLiteral rebinds a point slot back to its currently resolved
// literal position, breaking the reference.
func (a *App) ResetSlotLiteral(stepID int, point string) string {
	slot, err := a.parseSlot(stepID, point, "")
	if err != nil {
		return err.Error()
	}
	pv, err := a.session.PointSlot(slot)
	if err != nil {
		return err.Error()
	}
	pos, err := a.session.ResolvePoint(pv)
	if err != nil {
		pos = v2.Vec{}
	}
	if err := a.session.SetPointSlot(slot, sketch.XY(pos.X, pos.Y)); err != nil {
		return err.Error()
	}
	return ""
}

// ---------------------------------------------------------------------------
// Infer gesture
// ---------------------------------------------------------------------------

// ArmInfer arms the infer gesture on a slot. An empty coord arms the whole
// point; "x"/"y" arm a single coordinate.
func (a *App) ArmInfer(stepID int, point, coord string) string {
	slot, err := a.parseSlot(stepID, point, coord)
	if err != nil {
		return err.Error()
	}
	if err := a.ctl.Arm(slot); err != nil {
		a.log.Warn("arm infer rejected", "slot", slot, "err", err)
		return err.Error()
	}
	a.log.Debug("infer armed", "slot", slot)
	return ""
}

// CancelInfer clears the armed state without mutating anything.
func (a *App) CancelInfer() {
	a.ctl.Cancel()
}

// PointerMove updates the hover candidate. Coordinates are canvas-local
// logical units; the frontend projects from device pixels.
func (a *App) PointerMove(x, y float64) {
	a.ctl.Track(v2.Vec{X: x, Y: y})
}

// PointerDown commits the infer gesture if one is armed.
func (a *App) PointerDown(x, y float64) string {
	if a.ctl.State() != infer.Armed {
		return ""
	}
	a.ctl.Track(v2.Vec{X: x, Y: y})
	if err := a.ctl.Commit(); err != nil {
		a.log.Warn("infer commit failed", "err", err)
		return err.Error()
	}
	return ""
}

// ---------------------------------------------------------------------------
// Rendering and export
// ---------------------------------------------------------------------------

// Render produces the draw command list for the current state.
func (a *App) Render() RenderResult {
	rec := canvas.NewRecorder()
	stepErrs := render.Scene(a.session, a.ctl, rec)

	result := RenderResult{Commands: []CommandData{}, Errors: []StepErrorData{}}
	for _, cmd := range rec.Commands() {
		result.Commands = append(result.Commands, CommandData{
			Op:    cmd.Op.String(),
			Ax:    cmd.A.X,
			Ay:    cmd.A.Y,
			Bx:    cmd.B.X,
			By:    cmd.B.Y,
			R:     cmd.R,
			Style: cmd.Style.String(),
		})
	}
	for _, se := range stepErrs {
		result.Errors = append(result.Errors, StepErrorData{StepID: se.StepID, Message: se.Err.Error()})
	}
	return result
}

// ExportSVG renders the current scene (without interaction overlays) into
// an SVG document and returns it as a string. Non-positive dimensions fall
// back to the configured canvas extents.
func (a *App) ExportSVG(width, height int) string {
	if width <= 0 {
		width = a.opts.CanvasWidth
	}
	if height <= 0 {
		height = a.opts.CanvasHeight
	}
	var buf bytes.Buffer
	svg := canvas.NewSVG(&buf, width, height, 0)
	render.Scene(a.session, nil, svg)
	svg.End()
	return buf.String()
}

// Validate runs the advisory reference checks over the session.
func (a *App) Validate() []FindingData {
	findings := sketch.Validate(a.session)
	out := make([]FindingData, 0, len(findings))
	for _, f := range findings {
		out = append(out, FindingData{
			Severity: f.Severity.String(),
			StepID:   f.StepID,
			DataID:   f.DataID,
			Ref:      f.Ref.Describe(),
			Message:  f.Message,
		})
	}
	return out
}

// parseSlot converts frontend selector names into a sketch.Slot.
func (a *App) parseSlot(stepID int, point, coord string) (sketch.Slot, error) {
	pp, err := sketch.ParseProperty(point)
	if err != nil {
		return sketch.Slot{}, err
	}
	cp, err := sketch.ParseProperty(coord)
	if err != nil {
		return sketch.Slot{}, err
	}
	return sketch.Slot{StepID: stepID, Point: pp, Coord: cp}, nil
}
