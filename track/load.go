// SPDX-License-Identifier: EPL-2.0

package track

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/ambience/audio"
)

const (
	// MaxTrackSize bounds the encoded size of a track.
	MaxTrackSize = 64 << 20
	// MaxTrackDuration bounds the decoded length of a track.
	MaxTrackDuration = 5 * time.Minute
)

// Load fetches the track at locator, decodes it with reg and buffers it as
// mono at sampleRate. The locator is a filesystem path, a file:// URL or
// an http(s):// URL.
//
// The decoder is chosen by extension, then by the file signature, and
// failing both every registered decoder is tried in turn. Errors are
// *SourceError.
func Load(ctx context.Context, locator string, reg *audio.Registry, sampleRate int) (*audio.Buffer, error) {
	fail := func(stage Stage, err error) error {
		return &SourceError{Locator: locator, Stage: stage, Err: err}
	}

	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, fail(StageOpen, ErrEmptyLocator)
	}

	data, name, stage, err := read(ctx, locator)
	if err != nil {
		return nil, fail(stage, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fail(stage, err)
	}

	src, err := decode(ctx, reg, name, data)
	if err != nil {
		return nil, fail(StageDecode, err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Debugf("Closing decoder of %q: %v", locator, err)
		}
	}()

	limit := sampleRate * int(MaxTrackDuration/time.Second)
	buf, err := audio.Collect(ctx, src, sampleRate, 0, limit)
	if errors.Is(err, audio.ErrTooLong) {
		err = fmt.Errorf("%w: %w", ErrTrackTooLarge, err)
	}
	if err != nil {
		return nil, fail(StageBuffer, err)
	}
	if len(buf.Samples) == 0 {
		return nil, fail(StageBuffer, ErrEmptyTrack)
	}

	log.Debugf("Loaded %q: %v of audio", locator, buf.Duration())

	return buf, nil
}

// read returns the encoded bytes and the name whose extension hints the
// format.
func read(ctx context.Context, locator string) (data []byte, name string, stage Stage, err error) {
	u, perr := url.Parse(locator)
	if perr == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			data, err = fetch(ctx, u.String())
			return data, path.Base(u.Path), StageFetch, err
		case "file":
			p := u.Path
			if p == "" {
				p = u.Opaque
			}
			data, err = readFile(p)
			return data, p, StageOpen, err
		}
	}

	data, err = readFile(locator)

	return data, locator, StageOpen, err
}

func fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	return readLimited(resp.Body)
}

func readFile(name string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxTrackSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxTrackSize {
		return nil, ErrTrackTooLarge
	}

	return data, nil
}

func decode(ctx context.Context, reg *audio.Registry, name string, data []byte) (audio.Source, error) {
	tried := map[string]bool{}
	var errs []error

	try := func(format string) audio.Source {
		format = strings.TrimPrefix(strings.ToLower(format), ".")
		if format == "" || tried[format] {
			return nil
		}
		dec, ok := reg.Get(format)
		if !ok {
			return nil
		}
		tried[format] = true

		src, err := dec.Decode(bytes.NewReader(data))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", format, err))
			return nil
		}

		return src
	}

	candidates := append([]string{filepath.Ext(name), sniff(data)}, reg.Formats()...)
	for _, format := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if src := try(format); src != nil {
			return src, nil
		}
	}

	return nil, errors.Join(append([]error{ErrUnsupportedFormat}, errs...)...)
}
