// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/device"
)

// releaseGrace is how long past FadeOut a stopped session may wait for the
// render loop before it is torn down anyway.
const releaseGrace = 500 * time.Millisecond

// session is one start-to-release lifetime of the pad graph.
type session struct {
	ctx    *Context
	voices []*Voice
	player device.Player
	timer  *clock.Timer

	cancelOnce sync.Once
	cancel     chan struct{}
	done       chan struct{}
}

// await closes the player once the context has been released by the
// render loop, unless the session is torn down first.
func (s *session) await() {
	defer close(s.done)

	select {
	case <-s.ctx.Done():
		if err := s.player.Close(); err != nil {
			log.Debugf("Closing released pad player: %v", err)
		}
	case <-s.cancel:
	}

	if s.timer != nil {
		s.timer.Stop()
	}
}

// expire tears the session down when the render loop has not released it
// in time, e.g. because the output stopped pulling samples.
func (s *session) expire() {
	select {
	case <-s.ctx.Done():
		return
	default:
	}

	log.Debugf("Pad release overdue at %.3fs, tearing down", s.ctx.CurrentTime())
	s.teardown()
}

// teardown releases everything immediately. Every step runs even if an
// earlier one fails.
func (s *session) teardown() {
	s.cancelOnce.Do(func() { close(s.cancel) })

	if err := s.ctx.Close(); err != nil {
		log.Debugf("Closing pad context: %v", err)
	}
	if s.player != nil {
		if err := s.player.Close(); err != nil {
			log.Debugf("Closing pad player: %v", err)
		}
	}
}

func (s *session) settled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Pad is the procedural ambient pad. Every Start builds a fresh graph on a
// new Context played through its own device player; Stop fades it out and
// lets the render loop release it.
type Pad struct {
	dev   device.Device
	chord Chord
	clk   clock.Clock
	rnd   func() float64

	mu        sync.Mutex
	current   *session
	releasing []*session
	closed    bool
}

// NewPad creates a stopped pad that plays chord on dev. clk bounds how long
// a release may wait for the render loop; nil uses the wall clock.
func NewPad(dev device.Device, chord Chord, clk clock.Clock) *Pad {
	if clk == nil {
		clk = clock.New()
	}

	return &Pad{
		dev:   dev,
		chord: slices.Clone(chord),
		clk:   clk,
		rnd:   rand.Float64,
	}
}

// Start builds and starts a new session. Sessions still fading out are
// torn down first. If the device refuses to play, the session is kept and
// the refusal is returned.
func (p *Pad) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPadClosed
	}
	if p.current != nil {
		return ErrPadRunning
	}

	p.cutReleasing()

	ctx, err := NewContext(p.dev.SampleRate())
	if err != nil {
		return err
	}

	voices, err := Build(ctx, p.chord, p.rnd)
	if err != nil {
		_ = ctx.Close()
		return fmt.Errorf("build pad: %w", err)
	}

	player, err := p.dev.NewPlayer(ctx)
	if err != nil {
		_ = ctx.Close()
		return fmt.Errorf("open pad player: %w", err)
	}
	player.SetVolume(1)

	p.current = &session{
		ctx:    ctx,
		voices: voices,
		player: player,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}

	log.Debugf("Pad started with %d voices", len(voices))

	if err := player.Play(); err != nil {
		return fmt.Errorf("play pad: %w", err)
	}

	return nil
}

// Stop fades the running session out. The oscillators and the context are
// released on the render timeline when the fade ends, and the player is
// closed after that. If the render loop does not get there within FadeOut
// plus a grace period, the session is torn down on the clock instead. A
// session whose player is not playing is torn down at once. Stop on a
// stopped pad does nothing.
func (p *Pad) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.current
	if s == nil {
		return nil
	}
	p.current = nil

	if !s.player.IsPlaying() {
		s.teardown()
		log.Debugf("Pad player idle, released at once")
		return nil
	}

	end, err := Release(s.ctx, s.voices)
	if err != nil {
		log.Debugf("Pad release: %v", err)
	}

	s.timer = p.clk.AfterFunc(FadeOut+releaseGrace, s.expire)
	p.releasing = append(slices.DeleteFunc(p.releasing, (*session).settled), s)
	go s.await()

	log.Debugf("Pad fading out until %.3fs", end)

	return nil
}

// Cut tears down sessions that are still fading out, leaving a running
// session alone. It is used when another backend takes over the output.
func (p *Pad) Cut() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cutReleasing()
}

// cutReleasing tears down every releasing session. Caller holds mu.
func (p *Pad) cutReleasing() {
	for _, s := range p.releasing {
		s.teardown()
	}
	p.releasing = nil
}

// Close tears down every session immediately, without fades. It is safe to
// call more than once.
func (p *Pad) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.current != nil {
		p.current.teardown()
		p.current = nil
	}
	p.cutReleasing()

	return nil
}

// Running reports whether a session is started and not stopped.
func (p *Pad) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current != nil
}

// Audible reports whether any session is still being played, including
// one that is fading out.
func (p *Pad) Audible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil && p.current.player.IsPlaying() {
		return true
	}
	for _, s := range p.releasing {
		if !s.settled() && s.player.IsPlaying() {
			return true
		}
	}

	return false
}

// Context is the context of the running session, or nil.
func (p *Pad) Context() *Context {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}

	return p.current.ctx
}
