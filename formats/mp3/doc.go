// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding.
//
// This package uses github.com/hajimehoshi/go-mp3, a pure Go decoder for
// MPEG-1 and MPEG-2 Layer III.
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("rain.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: always 2, go-mp3 duplicates mono streams
//   - Sample rate: that of the file
//
// Use audio.Collect to fold the stream to mono at the device rate.
package mp3
