package sketch

// StepKind distinguishes drawable primitives.
type StepKind int

const (
	KindPoint StepKind = iota // a single point
	KindLine                  // a segment between two points
)

func (k StepKind) String() string {
	switch k {
	case KindPoint:
		return "draw-point"
	case KindLine:
		return "draw-line"
	default:
		return "unknown"
	}
}

// Step is one entry in the ordered drawing sequence. IDs are assigned
// monotonically by the session and never reused.
type Step struct {
	ID   int
	Data StepData
}

// StepData is the interface for kind-specific step payloads.
type StepData interface {
	stepData() // marker method restricting implementations to this package
	Kind() StepKind
	Anchors() []Property
}

// PointStep draws a single point.
type PointStep struct {
	Pos PointValue
}

func (*PointStep) stepData()      {}
func (*PointStep) Kind() StepKind { return KindPoint }

// Anchors returns the snap points a point step exposes: its own position.
func (*PointStep) Anchors() []Property { return []Property{PropSelf} }

// LineStep draws a segment.
type LineStep struct {
	Start PointValue
	End   PointValue
}

func (*LineStep) stepData()      {}
func (*LineStep) Kind() StepKind { return KindLine }

// Anchors returns the snap points a line step exposes. Mid is synthesized
// at resolution time; it is never stored.
func (*LineStep) Anchors() []Property { return []Property{PropStart, PropMid, PropEnd} }

// DataKind distinguishes the payload of a data entry.
type DataKind int

const (
	DataNumber DataKind = iota
	DataPoint
)

func (k DataKind) String() string {
	switch k {
	case DataNumber:
		return "number"
	case DataPoint:
		return "point"
	default:
		return "unknown"
	}
}

// DataEntry is a free-standing named value, referenceable like a step
// property but tied to no drawing operation. Data entries contribute no
// snap anchors.
type DataEntry struct {
	ID   int
	Name string
	Data DataPayload
}

// DataPayload is the interface for data entry payloads.
type DataPayload interface {
	dataPayload()
	Kind() DataKind
}

// NumberEntry holds a resolvable scalar.
type NumberEntry struct {
	Val Value
}

func (*NumberEntry) dataPayload()   {}
func (*NumberEntry) Kind() DataKind { return DataNumber }

// PointEntry holds a resolvable point.
type PointEntry struct {
	Pos PointValue
}

func (*PointEntry) dataPayload()   {}
func (*PointEntry) Kind() DataKind { return DataPoint }
