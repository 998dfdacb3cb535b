// SPDX-License-Identifier: EPL-2.0

package track

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/formats/wav"
	"github.com/ik5/ambience/internal/audiotest"
)

func writeTestWAV(t *testing.T, dir, name string, rate, frames int) string {
	t.Helper()

	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16((i % 64) * 256)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, rate, samples); err != nil {
		t.Fatal(err)
	}

	return path
}

func wantSourceError(t *testing.T, err error, stage Stage, target error) {
	t.Helper()

	var se *SourceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v (%T), want *SourceError", err, err)
	}
	if se.Stage != stage {
		t.Errorf("Stage = %q, want %q", se.Stage, stage)
	}
	if target != nil && !errors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}
}

func TestDecoders(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav"}
	got := Decoders().Formats()

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), "wav"},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), "aiff"},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFCCOMM"), "aiff"},
		{"ogg", []byte("OggS\x00\x02"), "ogg"},
		{"mp3 id3", []byte("ID3\x04\x00"), "mp3"},
		{"mp3 sync", []byte{0xFF, 0xFB, 0x90, 0x00}, "mp3"},
		{"riff not wave", []byte("RIFF\x00\x00\x00\x00AVI LIST"), ""},
		{"text", []byte("hello"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		if got := sniff(tt.data); got != tt.want {
			t.Errorf("sniff(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestWAV(t, dir, "rain.wav", 8000, 4000)

	tests := []struct {
		name    string
		locator string
		rate    int
		minLen  int
		maxLen  int
	}{
		{"path", path, 8000, 4000, 4000},
		{"file url", "file://" + filepath.ToSlash(path), 8000, 4000, 4000},
		{"upsampled", path, 16000, 7900, 8100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := Load(context.Background(), tt.locator, Decoders(), tt.rate)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if buf.Rate != tt.rate {
				t.Errorf("Rate = %d, want %d", buf.Rate, tt.rate)
			}
			if n := len(buf.Samples); n < tt.minLen || n > tt.maxLen {
				t.Errorf("len(Samples) = %d, want in [%d, %d]", n, tt.minLen, tt.maxLen)
			}
		})
	}
}

func TestLoad_SniffsWithoutExtension(t *testing.T) {
	t.Parallel()

	path := writeTestWAV(t, t.TempDir(), "ambience", 8000, 800)

	buf, err := Load(context.Background(), path, Decoders(), 8000)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(buf.Samples) != 800 {
		t.Errorf("len(Samples) = %d, want 800", len(buf.Samples))
	}
}

func TestLoad_HTTP(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(writeTestWAV(t, t.TempDir(), "x.wav", 8000, 800))
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/rain.wav", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	})
	mux.HandleFunc("/stream", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	for _, p := range []string{"/rain.wav", "/stream"} {
		buf, err := Load(context.Background(), srv.URL+p, Decoders(), 8000)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", p, err)
		}
		if len(buf.Samples) != 800 {
			t.Errorf("Load(%s) len(Samples) = %d, want 800", p, len(buf.Samples))
		}
	}

	_, err = Load(context.Background(), srv.URL+"/missing.wav", Decoders(), 8000)
	wantSourceError(t, err, StageFetch, ErrUnexpectedStatus)
}

func TestLoad_HTTPCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("RIFF"))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, srv.URL+"/rain.wav", Decoders(), 8000)
	wantSourceError(t, err, StageFetch, context.Canceled)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(garbage, []byte("this is not audio at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		locator string
		stage   Stage
		target  error
	}{
		{"empty", "", StageOpen, ErrEmptyLocator},
		{"blank", "   ", StageOpen, ErrEmptyLocator},
		{"missing", filepath.Join(dir, "nope.ogg"), StageOpen, fs.ErrNotExist},
		{"undecodable", garbage, StageDecode, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(context.Background(), tt.locator, Decoders(), 8000)
			wantSourceError(t, err, tt.stage, tt.target)
		})
	}
}

type emptyDecoder struct{}

func (emptyDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSilentSource(8000, 1, 0), nil
}

func TestLoad_EmptyTrack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "void.raw")
	if err := os.WriteFile(path, []byte{0}, 0o600); err != nil {
		t.Fatal(err)
	}

	reg := audio.NewRegistry()
	reg.Register("raw", emptyDecoder{})

	_, err := Load(context.Background(), path, reg, 8000)
	wantSourceError(t, err, StageBuffer, ErrEmptyTrack)
}

// endlessSource yields a quiet tone forever, calling onRead on every read.
type endlessSource struct {
	onRead func()
}

func (endlessSource) SampleRate() int { return 8000 }
func (endlessSource) Channels() int   { return 1 }
func (endlessSource) BufSize() int    { return 4096 }
func (endlessSource) Close() error    { return nil }

func (e endlessSource) ReadSamples(dst []float32) (int, error) {
	if e.onRead != nil {
		e.onRead()
	}
	for i := range dst {
		dst[i] = 0.1
	}
	return len(dst), nil
}

type endlessDecoder struct {
	onRead func()
}

func (d endlessDecoder) Decode(io.Reader) (audio.Source, error) {
	return endlessSource{onRead: d.onRead}, nil
}

func writeRaw(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "drone.raw")
	if err := os.WriteFile(path, []byte{0}, 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoad_CanceledWhileBuffering(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := audio.NewRegistry()
	reg.Register("raw", endlessDecoder{onRead: cancel})

	_, err := Load(ctx, writeRaw(t), reg, 8000)
	wantSourceError(t, err, StageBuffer, context.Canceled)
}

func TestLoad_DecodedTooLong(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register("raw", endlessDecoder{})

	_, err := Load(context.Background(), writeRaw(t), reg, 8000)
	wantSourceError(t, err, StageBuffer, ErrTrackTooLarge)
}

func TestSourceError(t *testing.T) {
	t.Parallel()

	err := &SourceError{Locator: "rain.ogg", Stage: StageDecode, Err: ErrUnsupportedFormat}

	if !strings.Contains(err.Error(), "rain.ogg") || !strings.Contains(err.Error(), "decode") {
		t.Errorf("Error() = %q, want locator and stage", err.Error())
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Error("errors.Is() does not reach the cause")
	}
}
