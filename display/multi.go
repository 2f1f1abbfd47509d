package display

import "errors"

// Multi fans every command out to all sinks. Every sink sees every command; the errors are
// joined.
type Multi []Sink

func (m Multi) Open(width, height int) error {
	return m.each(func(s Sink) error { return s.Open(width, height) })
}

func (m Multi) Clear() error { return m.each(Sink.Clear) }
func (m Multi) Close() error { return m.each(Sink.Close) }
func (m Multi) Abort() error { return m.each(abortSink) }

func (m Multi) SetIntensity(c Intensity) error {
	return m.each(func(s Sink) error { return s.SetIntensity(c) })
}

func (m Multi) MoveTo(x, y uint16) error {
	return m.each(func(s Sink) error { return s.MoveTo(x, y) })
}

func (m Multi) LineTo(x, y uint16) error {
	return m.each(func(s Sink) error { return s.LineTo(x, y) })
}

func (m Multi) each(fn func(Sink) error) error {
	var errs []error
	for _, s := range m {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
