package maneuvers

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestHostString(t *testing.T) {
	for h, exp := range map[Host]string{HostSource: "source", HostTarget: "target", HostIntermediate: "intermediate", HostBonus: "bonus", 0: "none"} {
		if h.String() != exp {
			t.Fatalf("%d: %s != %s", h, h, exp)
		}
	}
	for name, exp := range map[string]HostInclination{"": TargetInclination, "target": TargetInclination, "source": SourceInclination} {
		got, err := ParseHostInclination(name)
		if err != nil || got != exp {
			t.Fatalf("ParseHostInclination(%q) = %s, %v", name, got, err)
		}
	}
	if _, err := ParseHostInclination("bonus"); err == nil {
		t.Fatal("unknown host inclination accepted")
	}
}

func TestPlanTransferCoOrbital(t *testing.T) {
	p := NewPlanner(Earth)
	for _, rec := range []Record{debris("circ", 500, 0, 50, 10), debris("ell", 700, 0.02, 98, 300)} {
		tr, err := p.PlanTransfer(rec, rec, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if tr.Δv != 0 || tr.Elapsed != 0 {
			t.Fatalf("co-orbital transfer costs %s", tr)
		}
		if !tr.Feasible() {
			t.Fatal("co-orbital transfer infeasible")
		}
		// Equal candidates resolve to the first one.
		if tr.WaitHost != HostSource || tr.InclinationHost != HostSource {
			t.Fatalf("unexpected hosts %s", tr)
		}
	}
}

func TestPlanTransferHohmann(t *testing.T) {
	p := NewPlanner(Earth)
	tr, err := p.PlanTransfer(debris("low", 400, 0, 51.6, 42), debris("high", 600, 0, 51.6, 42), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	exp := HohmannΔv(Earth.MeanRadius+400e3, Earth.MeanRadius+600e3, Earth.GM())
	if !scalar.EqualWithinRel(tr.Δv, exp, 0.01) {
		t.Fatalf("Δv=%f expected about %f", tr.Δv, exp)
	}
	if tr.InclinationΔv != 0 || tr.Wait != 0 || tr.BonusΔv != 0 {
		t.Fatalf("unexpected legs %+v", tr)
	}
	if !scalar.EqualWithinAbs(tr.DepartureΔv+tr.ArrivalΔv, tr.Δv, 1e-9) {
		t.Fatal("legs do not sum up")
	}
	// The wait happens in the source orbit, whose period differs from the target.
	if !(tr.Phasing > 0) || !scalar.EqualWithinRel(tr.Elapsed, tr.Phasing, 1e-12) {
		t.Fatalf("phasing=%f elapsed=%f", tr.Phasing, tr.Elapsed)
	}
	src, _ := NewCircularOrbit(Earth.MeanRadius+400e3, Earth.GM())
	tgt, _ := NewCircularOrbit(Earth.MeanRadius+600e3, Earth.GM())
	tW, tT := src.Period(), tgt.Period()
	if exp := math.Abs(tW-tT) / tW; tr.WaitHost != HostSource || !scalar.EqualWithinRel(tr.PhasingOrbits, exp, 1e-6) {
		t.Fatalf("phasing orbits %f in %s expected %f", tr.PhasingOrbits, tr.WaitHost, exp)
	}
	if !scalar.EqualWithinRel(tr.Phasing, tr.PhasingOrbits*tT, 1e-6) {
		t.Fatalf("phasing %f expected %f", tr.Phasing, tr.PhasingOrbits*tT)
	}
	half := p
	half.Phasing = 180
	trHalf, _ := half.PlanTransfer(debris("low", 400, 0, 51.6, 42), debris("high", 600, 0, 51.6, 42), 0, 0)
	if !scalar.EqualWithinRel(2*trHalf.Phasing, tr.Phasing, 1e-12) {
		t.Fatalf("phasing over half a turn: %f vs %f", trHalf.Phasing, tr.Phasing)
	}
}

func TestPlanTransferPlaneChange(t *testing.T) {
	p := NewPlanner(Earth)
	tr, err := p.PlanTransfer(debris("a", 800, 0, 98, 10), debris("b", 800, 0, 99, 10), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	o, _ := NewCircularOrbit(Earth.MeanRadius+800e3, Earth.GM())
	if exp := InclinationChangeΔv(o, 1); !scalar.EqualWithinAbs(tr.InclinationΔv, exp, 1e-9) || !scalar.EqualWithinAbs(tr.Δv, exp, 1e-9) {
		t.Fatalf("Δv=%f expected %f", tr.Δv, exp)
	}
	if len(tr.Inclinations) != 3 || len(tr.Waits) != 3 {
		t.Fatalf("unexpected candidates %+v %+v", tr.Waits, tr.Inclinations)
	}
	// Nodes aligned at the start of the transfer, but not after drifting apart at different rates.
	if tr.Wait != 0 {
		t.Fatalf("wait=%f", tr.Wait)
	}
	later, _ := p.PlanTransfer(debris("a", 800, 0, 98, 10), debris("b", 800, 0, 99, 10), 86400, 0)
	if !(later.Wait > 0) || !later.Feasible() {
		t.Fatalf("wait after a day %f", later.Wait)
	}
}

func TestPlanTransferInfeasible(t *testing.T) {
	p := NewPlanner(Earth)
	// Same orbit and inclination, distinct nodes: every host precesses at the target rate.
	tr, err := p.PlanTransfer(debris("a", 500, 0, 50, 0), debris("b", 500, 0, 50, 20), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Feasible() || !math.IsInf(tr.Elapsed, 1) || !math.IsInf(tr.Wait, 1) {
		t.Fatalf("expected an infinite wait, got %s", tr)
	}
}

func TestPlanTransferBonus(t *testing.T) {
	p := NewPlanner(Earth)
	src, tgt := debris("a", 500, 0, 50, 0), debris("b", 500, 0, 50, 350)
	tr, err := p.PlanTransfer(src, tgt, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if tr.WaitHost != HostBonus {
		t.Fatalf("expected the bonus orbit to host the wait: %s", tr)
	}
	if !tr.Feasible() || !(tr.Wait > 0) {
		t.Fatalf("bonus wait %f", tr.Wait)
	}
	if tr.BonusΔv != 100 || !scalar.EqualWithinAbs(tr.Δv, 100, 1e-9) {
		t.Fatalf("bonus Δv=%f total=%f", tr.BonusΔv, tr.Δv)
	}
	if len(tr.Waits) != 4 || len(tr.Inclinations) != 4 {
		t.Fatalf("unexpected candidates %+v %+v", tr.Waits, tr.Inclinations)
	}
	if bonus := tr.Waits[3].Orbit; bonus.Periapsis() >= tr.Waits[0].Orbit.Periapsis() {
		t.Fatalf("bonus orbit not lower: %s", bonus)
	}
	// The bonus orbit must stay above the ground.
	tr, _ = p.PlanTransfer(src, tgt, 0, 2000)
	if len(tr.Waits) != 3 || tr.WaitHost == HostBonus {
		t.Fatalf("bonus orbit below the ground: %s", tr)
	}
}

func TestPlanTransferHostInclination(t *testing.T) {
	src, tgt := debris("a", 500, 0, 45, 0), debris("b", 900, 0, 55, 30)
	byTarget, err := NewPlanner(Earth).PlanTransfer(src, tgt, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlanner(Earth)
	p.HostInclination = SourceInclination
	bySource, err := p.PlanTransfer(src, tgt, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if byTarget.Waits[0].Value != bySource.Waits[0].Value {
		t.Fatal("the source host depends on the host inclination")
	}
	// The intermediate orbit has the shape of the target: at the target inclination the nodes never meet.
	if !math.IsInf(byTarget.Waits[2].Value, 1) || math.IsInf(bySource.Waits[2].Value, 1) {
		t.Fatalf("intermediate host ignores the host inclination: %f vs %f", byTarget.Waits[2].Value, bySource.Waits[2].Value)
	}
}

func TestPlanTransferErrors(t *testing.T) {
	p := NewPlanner(Earth)
	good := debris("good", 500, 0, 50, 0)
	bad := debris("bad", 500, 0, 50, 0)
	bad[FieldEccentricity] = "oops"
	if _, err := p.PlanTransfer(bad, good, 0, 0); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
	delete(bad, FieldEccentricity)
	if _, err := p.PlanTransfer(good, bad, 0, 0); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestIntermediate(t *testing.T) {
	p := NewPlanner(Earth)
	μ := Earth.GM()
	ell := func(rP, rA float64) Orbit {
		o, _ := NewOrbitFromApsides(rP, rA, μ)
		return o
	}
	for _, tc := range []struct {
		src, tgt Orbit
		exp      float64
	}{
		{ell(7000e3, 7100e3), ell(7200e3, 7400e3), 7200e3}, // below the target
		{ell(7000e3, 7500e3), ell(7200e3, 7400e3), 7400e3}, // beyond the target apoapsis
		{ell(7000e3, 7300e3), ell(7200e3, 7400e3), 7300e3}, // in between
	} {
		inter := p.intermediate(tc.src, tc.tgt)
		if inter.Eccentricity() != 0 || !scalar.EqualWithinAbs(inter.SMA(), tc.exp, 1e-6) {
			t.Fatalf("intermediate %s expected radius %f", inter, tc.exp)
		}
	}
	o := ell(7000e3, 7400e3)
	if inter := p.intermediate(o, o); inter != o {
		t.Fatalf("intermediate between identical orbits %s", inter)
	}
}
