package demo

import "time"

// Clock is the time source of a Pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Pacer holds the frame loop to FPS frames per second. Frames that overrun their budget
// are not made up for.
type Pacer struct {
	FPS   int
	Clock Clock

	last time.Time
}

func NewPacer(fps int) *Pacer {
	return &Pacer{FPS: fps, Clock: systemClock{}}
}

// Wait sleeps for whatever is left of the frame budget since the previous call and returns
// the time slept. The first call never sleeps.
func (p *Pacer) Wait() time.Duration {
	if p == nil || p.FPS <= 0 {
		return 0
	}
	if p.Clock == nil {
		p.Clock = systemClock{}
	}
	now := p.Clock.Now()
	prev := p.last
	p.last = now
	if prev.IsZero() {
		return 0
	}

	budget := time.Second / time.Duration(p.FPS)
	spent := now.Sub(prev)
	if spent >= budget {
		return 0
	}
	d := budget - spent
	p.Clock.Sleep(d)
	return d
}
