// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience"
	"github.com/ik5/ambience/device"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// settleTimeout bounds the wait for the final fade out.
const settleTimeout = 3 * time.Second

var (
	sourceLocator string
	playDuration  time.Duration
	headless      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play ambience, toggling on every line read from stdin",
	Long: `Start playing at once and toggle playback on every newline read from
stdin. Stops with a fade on EOF, on interrupt or after --duration.

Examples:
  ambience play
  ambience play --source rain.ogg
  AMBIENCE_SOURCE=https://example.com/forest.mp3 ambience play --duration 10m`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&sourceLocator, "source", "s", os.Getenv("AMBIENCE_SOURCE"),
		"Track path or URL; empty synthesizes the pad (env AMBIENCE_SOURCE)")
	playCmd.Flags().DurationVarP(&playDuration, "duration", "d", 0, "Stop after this long (0 = until EOF or interrupt)")
	playCmd.Flags().BoolVar(&headless, "headless", false, "Do not open the audio output")
}

func openDevice(clk clock.Clock) device.Device {
	if !headless {
		dev, err := device.OpenOto()
		if err == nil {
			return dev
		}
		log.Warnf("Audio output unavailable, running headless: %v", err)
	}

	return device.NewHeadless(clk)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if playDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, playDuration)
		defer cancel()
	}

	clk := clock.New()
	engine := ambience.New(sourceLocator, ambience.WithDevice(openDevice(clk)), ambience.WithClock(clk))
	defer engine.Close()

	out := cmd.OutOrStdout()

	engine.Toggle()
	fmt.Fprintf(out, "Playing (%s). Press Enter to toggle, Ctrl-D to quit.\n", engine.Mode())

	lines := readLines(cmd.InOrStdin())

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, endLoop := context.WithCancel(gctx)

	g.Go(func() error {
		defer endLoop()

		for {
			select {
			case <-loopCtx.Done():
				return nil
			case _, ok := <-lines:
				if !ok {
					return nil
				}
				engine.Toggle()
				fmt.Fprintf(out, "Playing: %v (%s)\n", engine.IsPlaying(), engine.Mode())
			}
		}
	})

	g.Go(func() error {
		select {
		case <-loopCtx.Done():
		case <-engine.Prepared():
			log.Infof("Source ready, mode %s", engine.Mode())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if engine.IsPlaying() {
		engine.Toggle()
		waitSilent(engine, clk)
	}

	return nil
}

// readLines signals every line of r and closes the channel at EOF. The
// reader cannot be interrupted, so the goroutine is left to the process.
func readLines(r io.Reader) <-chan struct{} {
	lines := make(chan struct{})

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- struct{}{}
		}
		if err := scanner.Err(); err != nil {
			log.Debugf("Reading stdin: %v", err)
		}
	}()

	return lines
}

// waitSilent polls until the final fade out is over.
func waitSilent(engine *ambience.Engine, clk clock.Clock) {
	ticker := clk.Ticker(50 * time.Millisecond)
	defer ticker.Stop()

	timeout := clk.After(settleTimeout)
	for engine.Audible() {
		select {
		case <-ticker.C:
		case <-timeout:
			log.Debugf("Fade out did not settle in %v", settleTimeout)
			return
		}
	}
}
