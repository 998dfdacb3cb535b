// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions are built on github.com/go-audio/wav.
//
// # Supported Formats
//
// Decoding:
//   - integer PCM at 16, 24 or 32 bits
//   - any channel count and sample rate
//
// Encoding:
//   - 16-bit mono PCM
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("ambience.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source with samples as float32 in [-1.0, 1.0].
// Readers that cannot seek are buffered in memory first.
//
// # Writing WAV Files
//
// WriteWAV16 needs an io.WriteSeeker because the RIFF sizes are patched
// once all samples are written:
//
//	file, _ := os.Create("pad.wav")
//	defer file.Close()
//	err := wav.WriteWAV16(file, 44100, samples)
package wav
