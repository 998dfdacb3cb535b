// SPDX-License-Identifier: EPL-2.0

// Package synth renders the procedural ambient pad.
//
// A Context is a single synthesis session. It owns sine oscillators, a
// master gain Param and a frame clock, and renders as a mono audio.Source
// that an output device pulls from. Automation is scheduled on the context
// timeline and evaluated per frame, so ramps and stops are sample accurate
// no matter how the device buffers.
//
// A Voice is one chord tone: a primary oscillator whose pitch wobbles with
// a slow LFO, plus a secondary oscillator tuned DetuneRatio sharp at half
// the gain. Build creates the voices of a Chord and fades the master in;
// Release fades it out and releases the context when the fade ends.
//
// Pad wraps this into start/stop/close on a device:
//
//	pad := synth.NewPad(dev, synth.DefaultChord, nil)
//	_ = pad.Start() // 0 -> 0.15 over 2s
//	_ = pad.Stop()  // -> 0 over 1s, then release
//	_ = pad.Close() // immediate, no fade
//
// The same graph renders offline by reading the context directly:
//
//	ctx, _ := synth.NewContext(44100)
//	_, _ = synth.Build(ctx, synth.DefaultChord, nil)
//	buf := make([]float32, 44100)
//	_, _ = ctx.ReadSamples(buf)
package synth
