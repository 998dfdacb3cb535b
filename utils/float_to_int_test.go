// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "pad ceiling", input: 0.15, want: 4915},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100.0, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Float32ToInt16(tt.input)
			if diff := math.Abs(float64(got) - float64(tt.want)); diff > 1 {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Fatalf("not monotonic: f=%v gives %v, previous was %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestFloat32sToInt16s(t *testing.T) {
	t.Parallel()

	src := []float32{0, 1, -1, 2}
	got := Float32sToInt16s(nil, src)

	want := []int16{0, math.MaxInt16, -math.MaxInt16, math.MaxInt16}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	reused := make([]int16, 0, 16)
	if out := Float32sToInt16s(reused, src); &out[0] != &reused[:1][0] {
		t.Error("Float32sToInt16s() did not reuse a large enough dst")
	}
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := make([]float32, 1024)
	dst := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		dst = Float32sToInt16s(dst, src)
	})

	if allocs > 0 {
		t.Errorf("Float32sToInt16s allocated %v times, want 0", allocs)
	}
}

func BenchmarkFloat32sToInt16s(b *testing.B) {
	src := make([]float32, 8000)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.1))
	}
	dst := make([]int16, len(src))

	b.ReportAllocs()

	for b.Loop() {
		dst = Float32sToInt16s(dst, src)
	}
}
