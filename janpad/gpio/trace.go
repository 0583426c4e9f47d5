package gpio

import "fmt"

// OpKind distinguishes writes from reads in a trace.
type OpKind uint8

const (
	OpWrite OpKind = iota
	OpRead
)

// Op is a single recorded line access.
type Op struct {
	Kind  OpKind
	Line  Line
	Level Level
}

func (o Op) String() string {
	if o.Kind == OpWrite {
		return fmt.Sprintf("%s<-%s", o.Line, o.Level)
	}
	return fmt.Sprintf("%s->%s", o.Line, o.Level)
}

// Recorder wraps a Port and records every access made through it.
type Recorder struct {
	port Port
	ops  []Op
}

func NewRecorder(port Port) *Recorder {
	return &Recorder{port: port}
}

func (r *Recorder) SetOutput(line Line, level Level) error {
	r.ops = append(r.ops, Op{Kind: OpWrite, Line: line, Level: level})
	return r.port.SetOutput(line, level)
}

func (r *Recorder) ReadInput(line Line) (Level, error) {
	level, err := r.port.ReadInput(line)
	r.ops = append(r.ops, Op{Kind: OpRead, Line: line, Level: level})
	return level, err
}

// Ops returns the recorded accesses in order.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}
