// SPDX-License-Identifier: EPL-2.0

// Command ambience plays the ambient engine on the system output or renders
// the pad to a WAV file.
package main

import (
	"os"

	"github.com/decred/slog"
	"github.com/ik5/ambience"
	"github.com/ik5/ambience/device"
	"github.com/ik5/ambience/synth"
	"github.com/ik5/ambience/track"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	verbose bool

	log = slog.Disabled
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ambience",
	Short: "Ambient soundscape from a track or a synthesized pad",
	Long: `ambience plays a continuous background soundscape. Given a track it
loops the track with soft fades; without one, or when the track cannot be
loaded, it synthesizes a slowly drifting pad instead.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(playCmd, renderCmd)
}

// setupLogging wires one subsystem logger per package to stderr.
func setupLogging(debug bool) {
	backend := slog.NewBackend(os.Stderr)

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	subsystem := func(tag string) slog.Logger {
		l := backend.Logger(tag)
		l.SetLevel(level)
		return l
	}

	log = subsystem("MAIN")
	ambience.UseLogger(subsystem("AMBI"))
	synth.UseLogger(subsystem("SYNT"))
	track.UseLogger(subsystem("TRAK"))
	device.UseLogger(subsystem("DEVC"))
}
