// SPDX-License-Identifier: EPL-2.0

package track

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/internal/audiotest"
)

func newFadePlayer(t *testing.T, volume float64) *audiotest.Player {
	t.Helper()

	dev := audiotest.NewDevice(8000)
	p, err := dev.NewPlayer(audiotest.NewSilentSource(8000, 1, 10))
	if err != nil {
		t.Fatal(err)
	}
	p.SetVolume(volume)

	return p.(*audiotest.Player)
}

// tickUntilDone advances the mock clock until f settles. Ticks are
// delivered asynchronously, so each step sleeps briefly.
func tickUntilDone(t *testing.T, mock *clock.Mock, f *Fade) {
	t.Helper()

	for range 2000 {
		select {
		case <-f.Done():
			return
		default:
		}
		mock.Add(TickInterval)
		time.Sleep(100 * time.Microsecond)
	}
	t.Fatal("fade did not settle")
}

func TestFade_Steps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from      float64
		target    float64
		step      float64
		wantTicks int
	}{
		{"fade in from silence", 0, Ceiling, StepUp, 21},
		{"fade out from ceiling", Ceiling, 0, StepDown, 17},
		{"fade in from midway", 0.1, Ceiling, StepUp, 13},
		{"already at target", Ceiling, Ceiling, StepUp, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := clock.NewMock()
			p := newFadePlayer(t, tt.from)
			settled := make(chan struct{})

			f := StartFade(mock, p, tt.target, tt.step, func() { close(settled) })
			tickUntilDone(t, mock, f)

			if got := p.Volume(); got != tt.target {
				t.Errorf("volume = %v, want exactly %v", got, tt.target)
			}
			if got := f.Ticks(); got != tt.wantTicks {
				t.Errorf("Ticks() = %d, want %d", got, tt.wantTicks)
			}

			select {
			case <-settled:
			default:
				t.Error("settled callback not called")
			}
		})
	}
}

func TestFade_Cancel(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	p := newFadePlayer(t, 0)
	called := false

	f := StartFade(mock, p, Ceiling, StepUp, func() { called = true })
	for i := 0; f.Ticks() < 3; i++ {
		if i > 2000 {
			t.Fatal("fade did not tick")
		}
		mock.Add(TickInterval)
		time.Sleep(100 * time.Microsecond)
	}
	f.Cancel()
	f.Cancel()

	v := p.Volume()
	if v <= 0 || v >= Ceiling {
		t.Errorf("volume after cancel = %v, want strictly between 0 and %v", v, Ceiling)
	}

	for range 5 {
		mock.Add(TickInterval)
	}
	if got := p.Volume(); got != v {
		t.Errorf("volume changed after cancel: %v -> %v", v, got)
	}
	if called {
		t.Error("settled callback ran for a cancelled fade")
	}
}
