// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/device"
	"github.com/ik5/ambience/utils"
)

var _ device.Device = (*Device)(nil)

// Device is a fake output. Nothing pulls from its players until the test
// calls Pump.
type Device struct {
	rate int

	mu      sync.Mutex
	players []*Player
	refuse  bool
	failNew error
}

// NewDevice creates a fake device running at rate.
func NewDevice(rate int) *Device {
	return &Device{rate: rate}
}

func (d *Device) SampleRate() int { return d.rate }

func (d *Device) NewPlayer(src audio.Source) (device.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failNew != nil {
		return nil, d.failNew
	}

	p := &Player{dev: d, src: src}
	d.players = append(d.players, p)

	return p, nil
}

// RefusePlay makes every later Play fail with device.ErrPlaybackRefused.
func (d *Device) RefusePlay(refuse bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refuse = refuse
}

// FailNewPlayer makes NewPlayer return err; nil restores it.
func (d *Device) FailNewPlayer(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failNew = err
}

func (d *Device) refusing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.refuse
}

// Players returns every player created so far, oldest first.
func (d *Device) Players() []*Player {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]*Player(nil), d.players...)
}

// Last returns the newest player or nil.
func (d *Device) Last() *Player {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.players) == 0 {
		return nil
	}

	return d.players[len(d.players)-1]
}

// Player is the fake device.Player.
type Player struct {
	dev *Device
	src audio.Source

	mu      sync.Mutex
	playing bool
	volume  float64
	closed  bool
	plays   int
	pauses  int
}

func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return device.ErrPlayerClosed
	}
	p.plays++
	if p.dev.refusing() {
		return device.ErrPlaybackRefused
	}
	p.playing = true

	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pauses++
	p.playing = false
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = utils.Clamp(v, 0, 1)
}

func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.playing = false
	p.mu.Unlock()

	return p.src.Close()
}

// Closed reports whether Close was called.
func (p *Player) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closed
}

// Plays and Pauses count transport calls, refused plays included.
func (p *Player) Plays() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.plays
}

func (p *Player) Pauses() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pauses
}

// Source is the source the player was created with.
func (p *Player) Source() audio.Source { return p.src }

// Pump pulls n samples the way an output would and returns them scaled by
// the volume. A paused or closed player yields silence without touching
// the source. The source is read without holding the player lock.
func (p *Player) Pump(n int) ([]float32, error) {
	out := make([]float32, n)

	p.mu.Lock()
	if !p.playing || p.closed {
		p.mu.Unlock()
		return out, nil
	}
	gain := float32(p.volume)
	p.mu.Unlock()

	got, err := p.src.ReadSamples(out)
	for i := range out[:got] {
		out[i] = utils.ClampSample(out[i] * gain)
	}
	clear(out[got:])

	return out, err
}
