// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func writeAIFF(t *testing.T, sampleRate, channels int, samples []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, sampleRate, 16, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           samples,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Encoder.Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Encoder.Close() error = %v", err)
	}

	return path
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int{0, 8192, -8192, 16384, -16384, 0, 1, -1}
	data, err := os.ReadFile(writeAIFF(t, 22050, 2, samples))
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Errorf("metadata = (%d Hz, %d ch), want (22050 Hz, 2 ch)", src.SampleRate(), src.Channels())
	}

	buf := make([]float32, 32)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768.0; buf[i] != want {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    io.Reader
	}{
		{name: "text", r: bytes.NewReader([]byte("This is not AIFF data"))},
		{name: "empty", r: bytes.NewReader(nil)},
		{name: "non seekable text", r: io.MultiReader(bytes.NewReader([]byte("FORM....")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(tt.r); !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}
