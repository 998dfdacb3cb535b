// SPDX-License-Identifier: EPL-2.0

// Package track plays a pre-recorded ambient loop.
//
// Load reads a track from a path or URL, decodes it and buffers it fully
// as mono at the device rate, so playback never waits on I/O:
//
//	buf, err := track.Load(ctx, "https://example.com/rain.ogg", track.Decoders(), device.SampleRate)
//
// A Track wraps the buffer in an endless audio.Loop on a single device
// player. Start fades the volume up by StepUp per TickInterval until it
// reaches Ceiling; Stop fades it down by StepDown and pauses at 0. The loop
// position survives Stop, so the next Start continues the track.
//
// Each fade is a Fade value. Starting a new fade cancels the previous one
// and waits for it, so two fades never step the same player.
package track
