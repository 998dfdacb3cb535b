// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/device"
	"github.com/ik5/ambience/internal/audiotest"
)

type trackFixture struct {
	track  *Track
	dev    *audiotest.Device
	player *audiotest.Player
	mock   *clock.Mock
}

func newTrackFixture(t *testing.T) *trackFixture {
	t.Helper()

	samples := make([]float32, 8000)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}

	dev := audiotest.NewDevice(8000)
	mock := clock.NewMock()
	tr, err := New(dev, &audio.Buffer{Samples: samples, Rate: 8000}, mock)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })

	return &trackFixture{track: tr, dev: dev, player: dev.Last(), mock: mock}
}

// settle ticks the mock clock until the running fade finishes.
func (f *trackFixture) settle(t *testing.T) {
	t.Helper()

	done := f.track.FadeDone()
	for range 2000 {
		select {
		case <-done:
			return
		default:
		}
		f.mock.Add(TickInterval)
		time.Sleep(100 * time.Microsecond)
	}
	t.Fatal("fade did not settle")
}

// tickUntil ticks the mock clock until cond holds.
func (f *trackFixture) tickUntil(t *testing.T, cond func() bool) {
	t.Helper()

	for range 2000 {
		if cond() {
			return
		}
		f.mock.Add(TickInterval)
		time.Sleep(100 * time.Microsecond)
	}
	t.Fatal("condition not reached")
}

func TestNew(t *testing.T) {
	t.Parallel()

	f := newTrackFixture(t)

	if got := len(f.dev.Players()); got != 1 {
		t.Errorf("players = %d, want 1", got)
	}
	if f.track.Volume() != 0 || f.track.Playing() {
		t.Errorf("new track volume=%v playing=%v, want 0/false", f.track.Volume(), f.track.Playing())
	}
}

func TestNew_PlayerFails(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice(8000)
	dev.FailNewPlayer(device.ErrUnavailable)

	_, err := New(dev, &audio.Buffer{Samples: []float32{0}, Rate: 8000}, clock.NewMock())
	if !errors.Is(err, device.ErrUnavailable) {
		t.Errorf("New() error = %v, want %v", err, device.ErrUnavailable)
	}
}

func TestTrack_StartStop(t *testing.T) {
	t.Parallel()

	f := newTrackFixture(t)

	if err := f.track.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !f.track.Playing() {
		t.Error("not playing after Start")
	}
	f.settle(t)
	if got := f.track.Volume(); got != Ceiling {
		t.Errorf("volume = %v, want exactly %v", got, Ceiling)
	}

	if err := f.track.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !f.track.Playing() {
		t.Error("paused before the fade out finished")
	}
	f.settle(t)
	if got := f.track.Volume(); got != 0 {
		t.Errorf("volume = %v, want exactly 0", got)
	}
	if f.track.Playing() {
		t.Error("still playing after fade out")
	}

	if got := len(f.dev.Players()); got != 1 {
		t.Errorf("players = %d, want the handle reused", got)
	}
}

func TestTrack_ResumesPosition(t *testing.T) {
	t.Parallel()

	f := newTrackFixture(t)

	_ = f.track.Start()
	f.settle(t)
	if _, err := f.player.Pump(1234); err != nil {
		t.Fatal(err)
	}

	_ = f.track.Stop()
	f.settle(t)
	if got := f.track.Position(); got != 1234 {
		t.Fatalf("Position() after Stop = %d, want 1234", got)
	}

	_ = f.track.Start()
	_, _ = f.player.Pump(10)
	if got := f.track.Position(); got != 1244 {
		t.Errorf("Position() after restart = %d, want 1244", got)
	}
}

func TestTrack_StartDuringFadeOut(t *testing.T) {
	t.Parallel()

	f := newTrackFixture(t)

	_ = f.track.Start()
	f.settle(t)
	_ = f.track.Stop()
	f.tickUntil(t, func() bool { return f.track.Volume() < 0.2 })

	_ = f.track.Start()
	f.settle(t)

	if got := f.track.Volume(); got != Ceiling {
		t.Errorf("volume = %v, want exactly %v", got, Ceiling)
	}
	if got := f.player.Pauses(); got != 0 {
		t.Errorf("Pauses() = %d, want 0 for an interrupted fade out", got)
	}
}

func TestTrack_RefusedPlay(t *testing.T) {
	t.Parallel()

	f := newTrackFixture(t)
	f.dev.RefusePlay(true)

	if err := f.track.Start(); !errors.Is(err, device.ErrPlaybackRefused) {
		t.Fatalf("Start() error = %v, want %v", err, device.ErrPlaybackRefused)
	}
	f.settle(t)

	if f.track.Playing() {
		t.Error("Playing() after refused play")
	}
	if got := f.track.Volume(); got != Ceiling {
		t.Errorf("volume = %v, want %v", got, Ceiling)
	}
}

func TestTrack_CloseMidFade(t *testing.T) {
	t.Parallel()

	f := newTrackFixture(t)

	_ = f.track.Start()
	f.tickUntil(t, func() bool { return f.track.Volume() > 0 })

	if err := f.track.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.track.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if !f.player.Closed() {
		t.Error("player not closed")
	}
	if err := f.track.Start(); !errors.Is(err, ErrTrackClosed) {
		t.Errorf("Start() after Close error = %v, want %v", err, ErrTrackClosed)
	}
	if err := f.track.Stop(); !errors.Is(err, ErrTrackClosed) {
		t.Errorf("Stop() after Close error = %v, want %v", err, ErrTrackClosed)
	}
}
