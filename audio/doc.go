// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample stream primitives the ambience engine is
// built on.
//
// The package contains:
//   - Source interface for pull based audio streams
//   - Resampler for sample rate conversion
//   - MonoMixer for channel folding
//   - Collect and Buffer for fully buffering a decoded track
//   - Loop for endless playback of a Buffer
//   - Registry for decoder lookup by format key
//
// # Source Interface
//
// Every stream in the module implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders produce Sources, the resampler and mixer wrap them, and output
// devices pull from them.
//
// # Buffering an Ambient Track
//
// A track is decoded once, converted to mono at the device rate and kept in
// memory:
//
//	src, _ := decoder.Decode(file)
//	buf, err := audio.Collect(ctx, src, 44100, 4096, 0)
//	loop := audio.NewLoop(buf)
//
// The Loop never runs dry and keeps its read position, so pausing and
// resuming continues the track instead of restarting it.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// Keys are case insensitive and a leading dot is dropped, so file
// extensions can be used directly.
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0], 0.0 being silence.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process n samples from buf
//	}
package audio
