// SPDX-License-Identifier: EPL-2.0

// Package device provides audio output sinks.
//
// A Device turns an audio.Source into a Player, a handle with transport
// (Play, Pause) and a volume scalar in [0,1]. Two devices exist:
//
//   - Oto writes to the system output through github.com/ebitengine/oto/v3.
//   - Headless pulls from the source at real time pace on a clock and
//     discards the samples. It stands in where no output exists.
//
// Every device runs mono float32 at SampleRate. Sources handed to
// NewPlayer must match that format.
//
//	dev, err := device.OpenOto()
//	if err != nil {
//	    dev = device.NewHeadless(clock.New())
//	}
//	player, _ := dev.NewPlayer(loop)
//	player.SetVolume(0.25)
//	_ = player.Play()
package device
