package display

import "fmt"

// Op is a recorded sink command.
type Op uint8

const (
	OpOpen Op = iota
	OpClear
	OpClose
	OpIntensity
	OpMove
	OpLine
)

func (o Op) String() string {
	switch o {
	case OpOpen:
		return "open"
	case OpClear:
		return "clear"
	case OpClose:
		return "close"
	case OpIntensity:
		return "intensity"
	case OpMove:
		return "move"
	case OpLine:
		return "line"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Command is one recorded sink call.
type Command struct {
	Op        Op
	X, Y      uint16
	Intensity Intensity
}

func (c Command) String() string {
	switch c.Op {
	case OpMove, OpLine:
		return fmt.Sprintf("%s(%d,%d)", c.Op, c.X, c.Y)
	case OpIntensity:
		return fmt.Sprintf("%s(%s)", c.Op, c.Intensity)
	}
	return c.Op.String()
}

// Move and Line build expected draw commands.
func Move(x, y uint16) Command { return Command{Op: OpMove, X: x, Y: y} }
func Line(x, y uint16) Command { return Command{Op: OpLine, X: x, Y: y} }

// Recorder is a Sink that keeps every command.
type Recorder struct {
	Commands []Command
	Width    int
	Height   int

	// Fail, if set, is consulted before a command is recorded; a non-nil result is
	// returned instead.
	Fail func(c Command) error
}

func (r *Recorder) Open(width, height int) error {
	r.Width, r.Height = width, height
	return r.record(Command{Op: OpOpen})
}

func (r *Recorder) Clear() error { return r.record(Command{Op: OpClear}) }
func (r *Recorder) Close() error { return r.record(Command{Op: OpClose}) }

func (r *Recorder) SetIntensity(c Intensity) error {
	return r.record(Command{Op: OpIntensity, Intensity: c})
}

func (r *Recorder) MoveTo(x, y uint16) error { return r.record(Move(x, y)) }
func (r *Recorder) LineTo(x, y uint16) error { return r.record(Line(x, y)) }

// Draws returns only the move and line commands.
func (r *Recorder) Draws() []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Op == OpMove || c.Op == OpLine {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many commands of kind op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }

func (r *Recorder) record(c Command) error {
	if r.Fail != nil {
		if err := r.Fail(c); err != nil {
			return err
		}
	}
	r.Commands = append(r.Commands, c)
	return nil
}
