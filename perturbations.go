package maneuvers

import "gonum.org/v1/gonum/mat"

// NodalPrecession returns the first order J2 secular drift of the ascending node, in rad/s.
// It is negative for prograde orbits, zero for polar orbits and positive for retrograde ones.
// Cf. https://en.wikipedia.org/wiki/Nodal_precession#Rate_of_precession
func NodalPrecession(inclination float64, o Orbit, body CelestialObject) float64 {
	p := o.SemiParameter()
	return (-3 * body.Radius * body.Radius * body.J(2) * o.AngularVelocity() * cosd(inclination)) / (2 * p * p)
}

// NodalPrecessionDeg is NodalPrecession in deg/s.
func NodalPrecessionDeg(inclination float64, o Orbit, body CelestialObject) float64 {
	return NodalPrecession(inclination, o, body) / deg2rad
}

// PrecessionMap returns the nodal precession rate (rad/s) of circular orbits, with one row per
// inclination (deg) and one column per altitude (m above the mean radius).
func PrecessionMap(body CelestialObject, altitudes, inclinations []float64) (*mat.Dense, error) {
	if len(altitudes) == 0 || len(inclinations) == 0 {
		return nil, mat.ErrZeroLength
	}
	orbits := make([]Orbit, len(altitudes))
	for j, alt := range altitudes {
		o, err := NewCircularOrbit(alt+body.MeanRadius, body.μ)
		if err != nil {
			return nil, err
		}
		orbits[j] = o
	}
	ω := mat.NewDense(len(inclinations), len(altitudes), nil)
	for i, inc := range inclinations {
		for j, o := range orbits {
			ω.Set(i, j, NodalPrecession(inc, o, body))
		}
	}
	return ω, nil
}
