// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a sample in [-1,1] to 16-bit PCM, clamping out of
// range input.
func Float32ToInt16(x float32) int16 {
	// 32767 for the positive max avoids overflow
	return int16(ClampSample(x) * 32767.0)
}

// Float32sToInt16s converts a whole buffer, reusing dst when it is large enough.
func Float32sToInt16s(dst []int16, src []float32) []int16 {
	if cap(dst) < len(src) {
		dst = make([]int16, len(src))
	}
	dst = dst[:len(src)]

	for i, s := range src {
		dst[i] = Float32ToInt16(s)
	}

	return dst
}
