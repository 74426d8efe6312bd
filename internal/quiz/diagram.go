package quiz

// DiagramKind discriminates the figure variants a question can carry.
type DiagramKind string

const (
	DiagramNumberLine DiagramKind = "numberline"
	DiagramSegment    DiagramKind = "segment"
	DiagramAngle      DiagramKind = "angle"
	DiagramClock      DiagramKind = "clock"
)

// Diagram is a renderer-agnostic figure description. Exactly one of the
// kind-specific fields is set, matching Kind. The TUI renders these as
// text art; a web front end could render the same data as SVG.
type Diagram struct {
	Kind       DiagramKind  `json:"kind"`
	NumberLine *NumberLine  `json:"numberLine,omitempty"`
	Segment    *SegmentLine `json:"segment,omitempty"`
	Angle      *AngleFan    `json:"angle,omitempty"`
	Clock      *ClockFace   `json:"clock,omitempty"`
}

// NumberLine marks a single labelled value on an integer number line.
type NumberLine struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// SegmentLine is a horizontal segment with named points. Positions are
// percentages along the segment, 0 at the left end and 100 at the right.
type SegmentLine struct {
	Points []SegmentPoint `json:"points"`
}

// SegmentPoint names one position on a SegmentLine.
type SegmentPoint struct {
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// AngleFan is a set of rays from a common vertex on a base line, described
// by the cumulative sweep of each ray in degrees from the base ray.
type AngleFan struct {
	Vertex string   `json:"vertex"`
	Rays   []Ray    `json:"rays"`
	Marks  []string `json:"marks,omitempty"`
}

// Ray is one ray of an AngleFan. Sweep is measured counterclockwise from
// the base ray in degrees, 0 to 180.
type Ray struct {
	Label string `json:"label"`
	Sweep int    `json:"sweep"`
}

// ClockFace shows an analog clock at the given time.
type ClockFace struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}
