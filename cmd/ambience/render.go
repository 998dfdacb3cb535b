// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/ambience/device"
	"github.com/ik5/ambience/formats/wav"
	"github.com/ik5/ambience/synth"
	"github.com/ik5/ambience/utils"
	"github.com/spf13/cobra"
)

var (
	renderOut       string
	renderSeconds   float64
	renderStopAfter float64
	renderRate      int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the synthesized pad to a 16-bit mono WAV file",
	Long: `Render the pad offline, without an audio device. The pad fades in
from the start; with --stop-after it fades out from that point and the
file ends when the pad is released.

Examples:
  ambience render --out pad.wav
  ambience render --out short.wav --seconds 6 --stop-after 3`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output WAV file (required)")
	renderCmd.Flags().Float64Var(&renderSeconds, "seconds", 10, "Maximum length in seconds")
	renderCmd.Flags().Float64Var(&renderStopAfter, "stop-after", -1, "Start the fade out after this many seconds (<0 = never)")
	renderCmd.Flags().IntVar(&renderRate, "rate", device.SampleRate, "Sample rate in Hz")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, _ []string) error {
	samples, err := renderPad(renderRate, renderSeconds, renderStopAfter, nil)
	if err != nil {
		return err
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, renderRate, utils.Float32sToInt16s(nil, samples)); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %.2fs at %d Hz\n",
		renderOut, float64(len(samples))/float64(renderRate), renderRate)

	return nil
}

// renderPad renders at most seconds of the default pad. A stopAfter >= 0
// releases the pad at that time; rendering then ends with the release.
func renderPad(rate int, seconds, stopAfter float64, rnd func() float64) ([]float32, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("seconds must be positive, got %v", seconds)
	}

	ctx, err := synth.NewContext(rate)
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	voices, err := synth.Build(ctx, synth.DefaultChord, rnd)
	if err != nil {
		return nil, err
	}

	total := int(seconds * float64(rate))
	stopFrame := -1
	if stopAfter >= 0 {
		stopFrame = int(stopAfter * float64(rate))
	}

	out := make([]float32, 0, total)
	buf := make([]float32, ctx.BufSize())
	for len(out) < total {
		if len(out) == stopFrame {
			end, err := synth.Release(ctx, voices)
			if err != nil {
				return nil, err
			}
			log.Debugf("Pad released, fade out ends at %.3fs", end)
		}

		n := min(len(buf), total-len(out))
		if stopFrame > len(out) {
			n = min(n, stopFrame-len(out))
		}

		got, err := ctx.ReadSamples(buf[:n])
		out = append(out, buf[:got]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
