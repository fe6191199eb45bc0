package maneuvers

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ErrInvalidOrbit is returned when the elements do not describe a bound ellipse.
var ErrInvalidOrbit = errors.New("invalid orbit")

// Orbit defines an idealized two-body Keplerian ellipse.
// It is a value: burns and transfers always return a new Orbit.
type Orbit struct {
	a, e float64 // semi major axis (m) and eccentricity
	μ    float64 // gravitational parameter of the origin (m^3 s^-2)
}

// NewOrbit returns a validated orbit.
func NewOrbit(a, e, μ float64) (Orbit, error) {
	switch {
	case !(a > 0) || math.IsInf(a, 0):
		return Orbit{}, fmt.Errorf("%w: semi major axis %g", ErrInvalidOrbit, a)
	case !(e >= 0 && e < 1):
		return Orbit{}, fmt.Errorf("%w: eccentricity %g", ErrInvalidOrbit, e)
	case !(μ > 0):
		return Orbit{}, fmt.Errorf("%w: gravitational parameter %g", ErrInvalidOrbit, μ)
	}
	return Orbit{a, e, μ}, nil
}

// NewCircularOrbit returns a circular orbit of radius r.
func NewCircularOrbit(r, μ float64) (Orbit, error) {
	return NewOrbit(r, 0, μ)
}

// NewOrbitFromRecord creates an orbit from a catalog record (SEMIMAJOR_AXIS in km and ECCENTRICITY).
func NewOrbitFromRecord(rec Record, body CelestialObject) (Orbit, error) {
	a, err := rec.Float(FieldSemimajorAxis)
	if err != nil {
		return Orbit{}, err
	}
	e, err := rec.Float(FieldEccentricity)
	if err != nil {
		return Orbit{}, err
	}
	o, err := NewOrbit(a*1e3, e, body.μ)
	if err != nil {
		return Orbit{}, fmt.Errorf("record %s: %w", rec.Name(), err)
	}
	return o, nil
}

// NewOrbitFromApsides creates an orbit from two apsis radii, in any order.
func NewOrbitFromApsides(r1, r2, μ float64) (Orbit, error) {
	a, e, err := Radii2ae(math.Max(r1, r2), math.Min(r1, r2))
	if err != nil {
		return Orbit{}, err
	}
	return NewOrbit(a, e, μ)
}

// NewOrbitFromPeriapsis creates an orbit from the velocity at the given periapsis distance.
// If the velocity is below the circular velocity, that point is the apoapsis of the returned orbit.
func NewOrbitFromPeriapsis(rP, vP, μ float64) (Orbit, error) {
	a, err := visVivaSMA(rP, vP, μ)
	if err != nil {
		return Orbit{}, err
	}
	return NewOrbitFromApsides(rP, 2*a-rP, μ)
}

// NewOrbitFromApoapsis creates an orbit from the velocity at the given apoapsis distance.
// If the velocity is above the circular velocity, that point is the periapsis of the returned orbit.
func NewOrbitFromApoapsis(rA, vA, μ float64) (Orbit, error) {
	a, err := visVivaSMA(rA, vA, μ)
	if err != nil {
		return Orbit{}, err
	}
	return NewOrbitFromApsides(2*a-rA, rA, μ)
}

// NewOrbitFromVelocities creates an orbit from its periapsis and apoapsis speeds.
func NewOrbitFromVelocities(vP, vA, μ float64) (Orbit, error) {
	if !(vP > 0 && vA > 0) {
		return Orbit{}, fmt.Errorf("%w: apsis velocities %g and %g", ErrInvalidOrbit, vP, vA)
	}
	rP := 2 * μ / (vA * vP * (1 + vP/vA))
	return NewOrbitFromApsides(rP, rP*vP/vA, μ)
}

// NewOrbitFromMeanMotion creates an orbit from its mean motion (in revolutions per second).
func NewOrbitFromMeanMotion(n, e, μ float64) (Orbit, error) {
	if !(n > 0) {
		return Orbit{}, fmt.Errorf("%w: mean motion %g", ErrInvalidOrbit, n)
	}
	return NewOrbit(math.Cbrt(μ/math.Pow(2*math.Pi*n, 2)), e, μ)
}

// visVivaSMA returns the semi major axis of the orbit passing at r with speed v.
func visVivaSMA(r, v, μ float64) (float64, error) {
	denom := 2*μ - v*v*r
	if !(r > 0) || !(denom > 0) {
		return 0, fmt.Errorf("%w: r=%g v=%g is not a bound state", ErrInvalidOrbit, r, v)
	}
	return μ * r / denom, nil
}

// PeriapsisBurn returns the orbit after an impulsive tangential burn of Δv at periapsis.
func (o Orbit) PeriapsisBurn(Δv float64) (Orbit, error) {
	return NewOrbitFromPeriapsis(o.Periapsis(), o.PeriapsisVelocity()+Δv, o.μ)
}

// ApoapsisBurn returns the orbit after an impulsive tangential burn of Δv at apoapsis.
func (o Orbit) ApoapsisBurn(Δv float64) (Orbit, error) {
	return NewOrbitFromApoapsis(o.Apoapsis(), o.ApoapsisVelocity()+Δv, o.μ)
}

// SMA returns the semi major axis.
func (o Orbit) SMA() float64 {
	return o.a
}

// Eccentricity returns the eccentricity.
func (o Orbit) Eccentricity() float64 {
	return o.e
}

// GM returns the gravitational parameter of the origin.
func (o Orbit) GM() float64 {
	return o.μ
}

// SemiminorAxis returns the semi minor axis.
func (o Orbit) SemiminorAxis() float64 {
	return o.a * math.Sqrt(1-o.e*o.e)
}

// SemiParameter returns the semi latus rectum.
func (o Orbit) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the apoapsis radius.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// ApoapsisAltitude returns the apoapsis altitude above the mean radius of the body.
func (o Orbit) ApoapsisAltitude(body CelestialObject) float64 {
	return o.Apoapsis() - body.MeanRadius
}

// PeriapsisAltitude returns the periapsis altitude above the mean radius of the body.
func (o Orbit) PeriapsisAltitude(body CelestialObject) float64 {
	return o.Periapsis() - body.MeanRadius
}

// Period returns the period in seconds (Kepler's third law).
func (o Orbit) Period() float64 {
	return 2 * math.Pi * math.Sqrt(o.a*o.a*o.a/o.μ)
}

// AngularVelocity returns the mean angular velocity in rad/s.
func (o Orbit) AngularVelocity() float64 {
	return 2 * math.Pi / o.Period()
}

// MeanMotion returns the mean motion in revolutions per second.
func (o Orbit) MeanMotion() float64 {
	return 1 / o.Period()
}

// SpecificAngularMomentum returns the norm of the specific angular momentum.
func (o Orbit) SpecificAngularMomentum() float64 {
	return math.Sqrt(o.μ * o.SemiParameter())
}

// SpeedAt returns the speed on this orbit at radius r (vis-viva).
// The radius is not checked to be between the apsides.
func (o Orbit) SpeedAt(r float64) float64 {
	return math.Sqrt(math.Max(o.μ*(2/r-1/o.a), 0))
}

// PeriapsisVelocity returns the speed at periapsis.
func (o Orbit) PeriapsisVelocity() float64 {
	return o.SpeedAt(o.Periapsis())
}

// ApoapsisVelocity returns the speed at apoapsis.
func (o Orbit) ApoapsisVelocity() float64 {
	return o.SpeedAt(o.Apoapsis())
}

// String implements the stringer interface (hence the value receiver)
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.6f rP=%.1f rA=%.1f", o.a, o.e, o.Periapsis(), o.Apoapsis())
}

// Equals returns whether two orbits have the same shape, within 1e-6 on a and e.
// The origin is not compared.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !scalar.EqualWithinAbs(o.a, o1.a, elementε) {
		return false, errors.New("semi major axis invalid")
	}
	if !scalar.EqualWithinAbs(o.e, o1.e, elementε) {
		return false, errors.New("eccentricity invalid")
	}
	return true, nil
}

// Helper functions go here.

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64, err error) {
	if rA < rP {
		return 0, 0, fmt.Errorf("%w: periapsis %g cannot be greater than apoapsis %g", ErrInvalidOrbit, rP, rA)
	}
	if !(rP > 0) {
		return 0, 0, fmt.Errorf("%w: periapsis %g", ErrInvalidOrbit, rP)
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}

// mustApsides is NewOrbitFromApsides for radii taken from existing valid orbits.
func mustApsides(r1, r2, μ float64) Orbit {
	o, err := NewOrbitFromApsides(r1, r2, μ)
	if err != nil {
		panic(err)
	}
	return o
}
