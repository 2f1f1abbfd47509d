package display

// State is the lifecycle state of a Frame.
type State uint8

const (
	Idle State = iota
	FrameOpen
)

func (s State) String() string {
	if s == FrameOpen {
		return "open"
	}
	return "idle"
}

// Frame guards a Sink with the Idle/FrameOpen state machine.
//
// Only one frame is open at a time and draw commands are refused while idle.
type Frame struct {
	sink   Sink
	width  int
	height int
	state  State
}

// NewFrame wraps s for a display of the given size.
func NewFrame(s Sink, width, height int) *Frame {
	return &Frame{sink: s, width: width, height: height}
}

func (f *Frame) State() State { return f.state }
func (f *Frame) Sink() Sink   { return f.sink }

// Begin opens and clears a new frame.
func (f *Frame) Begin() error {
	if f.state == FrameOpen {
		return ErrFrameOpen
	}
	if f.sink == nil {
		return ErrSinkUnavailable
	}
	if err := f.sink.Open(f.width, f.height); err != nil {
		// Part of a Multi may already be open.
		_ = abortSink(f.sink)
		return err
	}
	if err := f.sink.Clear(); err != nil {
		_ = abortSink(f.sink)
		return err
	}
	f.state = FrameOpen
	return nil
}

// Ensure opens a frame unless one is already open.
func (f *Frame) Ensure() error {
	if f.state == FrameOpen {
		return nil
	}
	return f.Begin()
}

// End closes the open frame.
func (f *Frame) End() error {
	if f.state != FrameOpen {
		return ErrFrameNotOpen
	}
	f.state = Idle
	return f.sink.Close()
}

// Abort drops the open frame, if any, without presenting it. Sinks that implement
// Aborter discard it; others are closed best-effort.
func (f *Frame) Abort() {
	if f.state != FrameOpen {
		return
	}
	f.state = Idle
	_ = abortSink(f.sink)
}

func (f *Frame) SetIntensity(c Intensity) error {
	if f.state != FrameOpen {
		return ErrFrameNotOpen
	}
	return f.sink.SetIntensity(c)
}

func (f *Frame) MoveTo(x, y uint16) error {
	if f.state != FrameOpen {
		return ErrFrameNotOpen
	}
	return f.sink.MoveTo(x, y)
}

func (f *Frame) LineTo(x, y uint16) error {
	if f.state != FrameOpen {
		return ErrFrameNotOpen
	}
	return f.sink.LineTo(x, y)
}
