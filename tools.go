package maneuvers

import (
	"math"
	"time"
)

// Hohmann computes an Hohmann transfer between two circular orbits of radii rI and rF.
// It returns the departure and arrival velocities on the transfer ellipse, and the time of flight.
// To get final computations:
// ΔvInit = vDepature - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF, μ float64) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival = math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	tof = time.Duration(math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ) * float64(time.Second))
	return
}

// HohmannΔv returns the total Δv of an Hohmann transfer between two circular orbits.
func HohmannΔv(rI, rF, μ float64) float64 {
	vDeparture, vArrival, _ := Hohmann(rI, rF, μ)
	return math.Abs(vDeparture-math.Sqrt(μ/rI)) + math.Abs(math.Sqrt(μ/rF)-vArrival)
}

// InclinationChangeΔv returns the cost of rotating the orbital plane by Δi degrees with a single
// impulsive burn at apoapsis, where the orbit is slowest.
func InclinationChangeΔv(o Orbit, Δi float64) float64 {
	return math.Abs(2 * o.ApoapsisVelocity() * sind(Δi/2))
}

// ArgOfPeriapsisChangeΔv returns the cost of rotating the line of apsides by Δω degrees in plane.
func ArgOfPeriapsisChangeΔv(o Orbit, Δω float64) float64 {
	return math.Abs(2 * o.e * math.Sqrt(o.μ/o.SemiParameter()) * sind(Δω/2))
}

// TangentialTransferΔv returns the cost of changing the apsides of initial into those of final
// with coplanar tangential burns at the apsides.
// When the orbits share an apsis, a single burn there suffices. Otherwise two burns are needed,
// through an intermediate ellipse which either keeps the initial periapsis and reaches the final
// apoapsis, or keeps the initial apoapsis and reaches the final periapsis; the cheapest is returned.
// Both intermediates share an apsis with each end by construction, so there is no further search.
func TangentialTransferΔv(initial, final Orbit) float64 {
	if Δv, ok := sharedApsisΔv(initial, final); ok {
		return Δv
	}
	viaA := mustApsides(initial.Periapsis(), final.Apoapsis(), initial.μ)
	viaB := mustApsides(final.Periapsis(), initial.Apoapsis(), initial.μ)
	return math.Min(
		twoBurnΔv(initial, viaA, final, initial.Periapsis(), final.Apoapsis()),
		twoBurnΔv(initial, viaB, final, initial.Apoapsis(), final.Periapsis()))
}

// sharedApsisΔv returns the single burn cost if both orbits share an apsis.
func sharedApsisΔv(initial, final Orbit) (float64, bool) {
	switch {
	case sameRadius(initial.Periapsis(), final.Periapsis()):
		return math.Abs(initial.PeriapsisVelocity() - final.PeriapsisVelocity()), true
	case sameRadius(initial.Periapsis(), final.Apoapsis()):
		return math.Abs(initial.PeriapsisVelocity() - final.ApoapsisVelocity()), true
	case sameRadius(initial.Apoapsis(), final.Periapsis()):
		return math.Abs(initial.ApoapsisVelocity() - final.PeriapsisVelocity()), true
	case sameRadius(initial.Apoapsis(), final.Apoapsis()):
		return math.Abs(initial.ApoapsisVelocity() - final.ApoapsisVelocity()), true
	}
	return 0, false
}

// twoBurnΔv is the cost of from -> via at radius r1 then via -> to at radius r2.
func twoBurnΔv(from, via, to Orbit, r1, r2 float64) float64 {
	return math.Abs(from.SpeedAt(r1)-via.SpeedAt(r1)) + math.Abs(via.SpeedAt(r2)-to.SpeedAt(r2))
}
