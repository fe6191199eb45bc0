package maneuvers

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// GravitationalConstant is Newton's G in m^3 kg^-1 s^-2 (CODATA 2018).
	GravitationalConstant = 6.6743e-11
)

// ErrInvalidBody is returned when a central body has non physical constants.
var ErrInvalidBody = errors.New("invalid central body")

// CelestialObject defines the central body around which all orbits are computed.
// Only what the analytic cost model needs is kept: GM, radii and J2.
type CelestialObject struct {
	Name       string
	Radius     float64 // Equatorial radius (m)
	MeanRadius float64 // Mean radius (m), used as the ground level
	μ          float64 // Gravitational parameter (m^3 s^-2)
	J2         float64 // Oblateness coefficient
}

// NewCelestialObject returns a validated central body.
func NewCelestialObject(name string, gm, radius, meanRadius, j2 float64) (CelestialObject, error) {
	if gm <= 0 {
		return CelestialObject{}, fmt.Errorf("%w: %s GM=%g", ErrInvalidBody, name, gm)
	}
	if radius <= 0 || meanRadius <= 0 {
		return CelestialObject{}, fmt.Errorf("%w: %s radius=%g mean radius=%g", ErrInvalidBody, name, radius, meanRadius)
	}
	return CelestialObject{name, radius, meanRadius, gm, j2}, nil
}

// NewCelestialObjectFromMass is NewCelestialObject with GM combined from G and the body's mass.
func NewCelestialObjectFromMass(name string, g, mass, radius, meanRadius, j2 float64) (CelestialObject, error) {
	return NewCelestialObject(name, g*mass, radius, meanRadius, j2)
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// J returns the perturbing J_n factor for the provided n.
// Only J2 is modeled.
func (c CelestialObject) J(n uint8) float64 {
	if n == 2 {
		return c.J2
	}
	return 0
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.MeanRadius == b.MeanRadius && c.μ == b.μ && c.J2 == b.J2
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "mars":
		return Mars, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Earth is home, and where all the debris is.
var Earth = CelestialObject{"Earth", 6378137, 6371000, GravitationalConstant * 5.9722e24, 1.08262668e-3}

// Moon is lumpy.
var Moon = CelestialObject{"Moon", 1738100, 1737400, 4.9048695e12, 2.0323e-4}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396190, 3389500, 4.282837e13, 1.96045e-3}
