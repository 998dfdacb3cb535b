// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/ik5/ambience/audio"
)

// sourceReader presents a float32 source as FormatFloat32LE bytes.
type sourceReader struct {
	src audio.Source
	buf []float32
}

func newSourceReader(src audio.Source) *sourceReader {
	return &sourceReader{src: src}
}

func (r *sourceReader) Read(p []byte) (int, error) {
	want := len(p) / 4
	if want == 0 {
		return 0, nil
	}
	if cap(r.buf) < want {
		r.buf = make([]float32, want)
	}
	r.buf = r.buf[:want]

	n, err := r.src.ReadSamples(r.buf)
	for i := range n {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(r.buf[i]))
	}

	if err != nil && !errors.Is(err, io.EOF) {
		log.Warnf("Source read failed: %v", err)
	}
	if n == 0 && err == nil {
		return 0, io.ErrNoProgress
	}

	return 4 * n, err
}
