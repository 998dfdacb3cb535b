// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom segment between y1 and y2 at
// x in [0,1], using y0 and y3 as the outer control points.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	slope1 := 0.5 * (y2 - y0)
	slope2 := 0.5 * (y3 - y1)
	delta := y2 - y1

	c3 := slope1 + slope2 - 2*delta
	c2 := 3*delta - 2*slope1 - slope2

	return ((c3*x+c2)*x+slope1)*x + y1
}
