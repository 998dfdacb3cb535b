// SPDX-License-Identifier: EPL-2.0

package track

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/device"
)

const (
	// Ceiling is the volume of a faded in track.
	Ceiling = 0.25
	// StepUp and StepDown are the volume change per tick.
	StepUp   = 0.012
	StepDown = 0.015
	// TickInterval is the period of a fade.
	TickInterval = 50 * time.Millisecond
)

// Fade steps a player's volume toward a target once per tick, from the
// volume the player had when the fade began. The last step lands exactly
// on the target. Only the player is touched from the fade goroutine.
type Fade struct {
	player  device.Player
	from    float64
	target  float64
	step    float64
	settled func()

	mu    sync.Mutex
	ticks int

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// StartFade begins a fade on p. settled, if not nil, runs once the target
// is reached; it does not run for a cancelled fade.
func StartFade(clk clock.Clock, p device.Player, target, step float64, settled func()) *Fade {
	f := &Fade{
		player:  p,
		from:    p.Volume(),
		target:  target,
		step:    step,
		settled: settled,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go f.run(clk.Ticker(TickInterval))

	return f
}

func (f *Fade) run(ticker *clock.Ticker) {
	defer close(f.done)
	defer ticker.Stop()

	v := f.from
	for v != f.target {
		select {
		case <-f.stop:
			return
		case <-ticker.C:
		}

		// a tick and a cancel can be ready together
		select {
		case <-f.stop:
			return
		default:
		}

		v = f.next(v)
		f.player.SetVolume(v)

		f.mu.Lock()
		f.ticks++
		f.mu.Unlock()
	}

	f.player.SetVolume(f.target)
	if f.settled != nil {
		f.settled()
	}
}

func (f *Fade) next(v float64) float64 {
	if f.target > v {
		return min(v+f.step, f.target)
	}

	return max(v-f.step, f.target)
}

// Cancel stops the fade where it is and waits for its goroutine to exit.
func (f *Fade) Cancel() {
	f.stopOnce.Do(func() { close(f.stop) })
	<-f.done
}

// Done is closed when the fade settles or is cancelled.
func (f *Fade) Done() <-chan struct{} { return f.done }

// From and Target are the fade bounds.
func (f *Fade) From() float64   { return f.from }
func (f *Fade) Target() float64 { return f.target }

// Ticks is the number of steps applied so far.
func (f *Fade) Ticks() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.ticks
}
