package maneuvers

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
	// distanceε is the tolerance under which two radii are the same point (in meters).
	distanceε = 1e-6
	// elementε is the tolerance used by Orbit.Equals on a and e.
	elementε = 1e-6
	// nodeε is the tolerance under which two node longitudes coincide (in degrees).
	nodeε = 1e-9
)

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	return Wrap360(a) * deg2rad
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	return Wrap360(a / deg2rad)
}

// Wrap360 wraps an angle in degrees into [0, 360).
func Wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		// -1e-17 + 360 rounds up to 360.
		a = 0
	}
	return a
}

// cosd returns the cosine of an angle in degrees.
// It is computed as sin(90-x) so that cosd(90) is exactly zero.
func cosd(x float64) float64 {
	return math.Sin((90 - x) * deg2rad)
}

// sind returns the sine of an angle in degrees.
func sind(x float64) float64 {
	return math.Sin(x * deg2rad)
}

// sameRadius returns whether two radii are the same point within distanceε.
func sameRadius(r1, r2 float64) bool {
	return scalar.EqualWithinAbs(r1, r2, distanceε)
}

// Range returns the values from start (inclusive) to stop (exclusive) by step.
// It panics on a non positive step.
func Range(start, stop, step float64) []float64 {
	if step <= 0 {
		panic("step must be strictly positive")
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	return vals
}
