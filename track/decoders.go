// SPDX-License-Identifier: EPL-2.0

package track

import (
	"bytes"

	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/formats/aiff"
	"github.com/ik5/ambience/formats/mp3"
	"github.com/ik5/ambience/formats/vorbis"
	"github.com/ik5/ambience/formats/wav"
)

// Decoders returns a registry with every bundled format, keyed by file
// extension.
func Decoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// sniff guesses a format key from the leading bytes of data.
func sniff(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return "wav"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(data, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(data, []byte("ID3")),
		len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return "mp3"
	}

	return ""
}
