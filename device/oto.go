// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/utils"
)

// oto allows a single context per process.
var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

func otoContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		}

		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})

	return otoCtx, otoInitErr
}

// Oto is the system audio output.
type Oto struct {
	ctx *oto.Context
}

// OpenOto returns the process-wide output device. The first call opens the
// driver; later calls share it, including its failure.
func OpenOto() (*Oto, error) {
	ctx, err := otoContext()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return &Oto{ctx: ctx}, nil
}

func (o *Oto) SampleRate() int { return SampleRate }

func (o *Oto) NewPlayer(src audio.Source) (Player, error) {
	if err := checkFormat(src, SampleRate); err != nil {
		return nil, err
	}

	return &otoPlayer{
		player: o.ctx.NewPlayer(newSourceReader(src)),
		src:    src,
	}, nil
}

type otoPlayer struct {
	mu     sync.Mutex
	player *oto.Player
	src    audio.Source
	closed bool
}

func (p *otoPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}

	p.player.Play()
	if err := p.player.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPlaybackRefused, err)
	}

	return nil
}

func (p *otoPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.player.Pause()
	}
}

func (p *otoPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return !p.closed && p.player.IsPlaying()
}

func (p *otoPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0
	}

	return p.player.Volume()
}

func (p *otoPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.player.SetVolume(utils.Clamp(v, 0, 1))
	}
}

func (p *otoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return errors.Join(p.player.Close(), p.src.Close())
}
