package maneuvers

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestDeorbit(t *testing.T) {
	ground := GroundRadius(Earth, 0)
	if ground != Earth.MeanRadius {
		t.Fatalf("ground radius %f", ground)
	}
	if GroundRadius(Earth, 100e3) != Earth.MeanRadius+100e3 {
		t.Fatal("margin ignored")
	}
	o, _ := NewCircularOrbit(Earth.MeanRadius+500e3, Earth.GM())
	Δv, err := DeorbitΔv(o, ground)
	if err != nil {
		t.Fatal(err)
	}
	// A single retrograde burn lowers the periapsis to the ground.
	if !scalar.EqualWithinAbs(Δv, 145.18, 1e-2) {
		t.Fatalf("deorbit Δv=%f", Δv)
	}
	// That burn is the first leg of an Hohmann transfer down to the ground.
	r := o.Apoapsis()
	vDeparture, _, _ := Hohmann(r, ground, Earth.GM())
	if exp := math.Sqrt(Earth.GM()/r) - vDeparture; !scalar.EqualWithinAbs(Δv, exp, 1e-9) {
		t.Fatalf("deorbit Δv=%f expected %f", Δv, exp)
	}
	higher, _ := NewCircularOrbit(Earth.MeanRadius+1000e3, Earth.GM())
	if ΔvHigh, _ := DeorbitΔv(higher, ground); ΔvHigh <= Δv {
		t.Fatalf("deorbiting from higher is cheaper: %f <= %f", ΔvHigh, Δv)
	}
	// Already on a reentry orbit.
	reentry, _ := NewOrbitFromApsides(Earth.MeanRadius+500e3, ground, Earth.GM())
	if Δv, _ := DeorbitΔv(reentry, ground); Δv != 0 {
		t.Fatalf("reentry orbit needs %f", Δv)
	}
	if _, err := DeorbitΔv(o, 0); err == nil {
		t.Fatal("ground radius of zero accepted")
	}
}
