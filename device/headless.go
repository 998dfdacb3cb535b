// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/utils"
)

// pumpPeriod is how often a headless player pulls from its source.
const pumpPeriod = 20 * time.Millisecond

// Headless is a device without output. Players consume their source at
// real time pace, as measured by the clock, and drop the samples.
type Headless struct {
	clk clock.Clock
}

// NewHeadless creates a headless device paced by clk.
func NewHeadless(clk clock.Clock) *Headless {
	if clk == nil {
		clk = clock.New()
	}

	return &Headless{clk: clk}
}

func (h *Headless) SampleRate() int { return SampleRate }

func (h *Headless) NewPlayer(src audio.Source) (Player, error) {
	if err := checkFormat(src, SampleRate); err != nil {
		return nil, err
	}

	p := &HeadlessPlayer{
		src:  src,
		buf:  make([]float32, SampleRate*int(pumpPeriod)/int(time.Second)),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go p.run(h.clk.Ticker(pumpPeriod))

	return p, nil
}

// HeadlessPlayer is the Player returned by Headless.
type HeadlessPlayer struct {
	src audio.Source
	buf []float32

	mu      sync.Mutex
	playing bool
	volume  float64
	frames  int64
	peak    float32
	closed  bool

	quit chan struct{}
	done chan struct{}
}

func (p *HeadlessPlayer) run(ticker *clock.Ticker) {
	defer close(p.done)
	defer ticker.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-ticker.C:
			p.pump()
		}
	}
}

// pump reads one period. The source is read outside the lock; only run
// reads it and Close waits for run to exit before closing it.
func (p *HeadlessPlayer) pump() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	gain := float32(p.volume)
	p.mu.Unlock()

	n, err := p.src.ReadSamples(p.buf)

	var peak float32
	for _, s := range p.buf[:n] {
		s = utils.ClampSample(s * gain)
		peak = max(peak, s, -s)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames += int64(n)
	p.peak = max(p.peak, peak)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warnf("Headless source read failed: %v", err)
		}
		p.playing = false
	}
}

func (p *HeadlessPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	p.playing = true

	return nil
}

func (p *HeadlessPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = false
}

func (p *HeadlessPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

func (p *HeadlessPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

func (p *HeadlessPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = utils.Clamp(v, 0, 1)
}

// Frames is the number of frames consumed so far.
func (p *HeadlessPlayer) Frames() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.frames
}

// Peak is the largest absolute output sample seen, after volume.
func (p *HeadlessPlayer) Peak() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.peak
}

func (p *HeadlessPlayer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.playing = false
	p.mu.Unlock()

	close(p.quit)
	<-p.done

	return p.src.Close()
}
