package maneuvers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Host labels an orbit which may host part of a transfer (the RAAN wait or the plane change).
type Host uint8

const (
	// HostSource is the orbit of the object currently caught.
	HostSource Host = iota + 1
	// HostTarget is the orbit of the object to catch.
	HostTarget
	// HostIntermediate is the circular orbit used to approximate the argument of periapsis change.
	HostIntermediate
	// HostBonus is a temporary lower parking orbit, paid with the extra budget, which precesses faster.
	HostBonus
)

func (h Host) String() string {
	switch h {
	case HostSource:
		return "source"
	case HostTarget:
		return "target"
	case HostIntermediate:
		return "intermediate"
	case HostBonus:
		return "bonus"
	default:
		return "none"
	}
}

// HostInclination selects the inclination at which the intermediate and bonus orbits precess.
type HostInclination uint8

const (
	// TargetInclination assumes the plane change is done before waiting in a transit orbit.
	TargetInclination HostInclination = iota
	// SourceInclination assumes the chaser waits in a transit orbit before changing plane.
	SourceInclination
)

func (h HostInclination) String() string {
	if h == SourceInclination {
		return "source"
	}
	return "target"
}

// ParseHostInclination returns the HostInclination from its name.
func ParseHostInclination(name string) (HostInclination, error) {
	switch name {
	case "", "target":
		return TargetInclination, nil
	case "source":
		return SourceInclination, nil
	default:
		return 0, fmt.Errorf("unknown host inclination %q (expected source or target)", name)
	}
}

// DefaultPhasing is the worst case mean anomaly separation (deg) assumed when phasing.
const DefaultPhasing = 360.

// Candidate is one labelled option considered by the planner, e.g. the RAAN wait in one host orbit.
type Candidate struct {
	Host  Host
	Orbit Orbit
	Value float64 // wait time (s) or Δv (m/s) depending on the collection
}

// bestCandidate returns the candidate with the smallest value, the first one on ties.
func bestCandidate(cands []Candidate) Candidate {
	vals := make([]float64, len(cands))
	for i, c := range cands {
		vals[i] = c.Value
	}
	return cands[floats.MinIdx(vals)]
}

// Transfer is the estimated cost of moving from one catalog object to another,
// along with the intermediate magnitudes explaining it.
type Transfer struct {
	Δv      float64 // total (m/s)
	Elapsed float64 // total (s), +Inf if the nodes never align

	DepartureΔv   float64 // source -> intermediate
	ArrivalΔv     float64 // intermediate -> target
	InclinationΔv float64
	BonusΔv       float64 // round trip to the bonus orbit, if it hosted the wait

	Wait          float64 // RAAN alignment wait (s)
	Phasing       float64 // mean anomaly phasing (s)
	// PhasingOrbits is a heuristic weight, (separation/360)·|T_w−T_t|/T_w, expressed in
	// target periods. It vanishes for co-orbital objects and is not a count of the orbits
	// needed to close the separation, which grows as the two periods converge.
	PhasingOrbits float64

	WaitHost        Host
	InclinationHost Host
	Intermediate    Orbit
	Waits           []Candidate
	Inclinations    []Candidate
}

// Feasible returns whether the transfer completes in finite time.
func (t Transfer) Feasible() bool {
	return !math.IsInf(t.Elapsed, 0) && !math.IsNaN(t.Elapsed) && !math.IsNaN(t.Δv)
}

// String implements the Stringer interface.
func (t Transfer) String() string {
	return fmt.Sprintf("Δv=%.3f m/s t=%.1f s (wait in %s, plane change in %s)", t.Δv, t.Elapsed, t.WaitHost, t.InclinationHost)
}

// Planner estimates transfers between catalog objects around a central body.
type Planner struct {
	Body CelestialObject
	// Phasing is the worst case mean anomaly separation (deg); DefaultPhasing if zero.
	Phasing float64
	// HostInclination selects the inclination of the intermediate and bonus orbits.
	HostInclination HostInclination
}

// NewPlanner returns a planner around the provided body with the default modeling options.
func NewPlanner(body CelestialObject) Planner {
	return Planner{Body: body, Phasing: DefaultPhasing, HostInclination: TargetInclination}
}

type planElements struct {
	orbit     Orbit
	inc, raan float64
}

func (p Planner) elements(rec Record) (planElements, error) {
	if err := rec.Validate(); err != nil {
		return planElements{}, err
	}
	o, err := NewOrbitFromRecord(rec, p.Body)
	if err != nil {
		return planElements{}, err
	}
	inc, _ := rec.Inclination()
	raan, _ := rec.RAAN()
	return planElements{o, inc, raan}, nil
}

// PlanTransfer estimates the Δv and time needed to go from source to target.
// The timeOffset (s) is the time elapsed since the catalog epoch, by which the nodes have drifted.
// The extraBudget (m/s) may be spent on a bonus parking orbit if it shortens the wait.
// An error is only returned for invalid records: a transfer which never completes is returned
// with an infinite elapsed time.
func (p Planner) PlanTransfer(source, target Record, timeOffset, extraBudget float64) (Transfer, error) {
	src, err := p.elements(source)
	if err != nil {
		return Transfer{}, fmt.Errorf("source: %w", err)
	}
	tgt, err := p.elements(target)
	if err != nil {
		return Transfer{}, fmt.Errorf("target: %w", err)
	}
	return p.plan(src, tgt, timeOffset, extraBudget), nil
}

func (p Planner) plan(src, tgt planElements, timeOffset, extraBudget float64) Transfer {
	inter := p.intermediate(src.orbit, tgt.orbit)
	hostInc := tgt.inc
	if p.HostInclination == SourceInclination {
		hostInc = src.inc
	}

	// RAAN alignment: the chaser enters any host at the current node of the source.
	waits := []Candidate{
		{Host: HostSource, Orbit: src.orbit},
		{Host: HostTarget, Orbit: tgt.orbit},
		{Host: HostIntermediate, Orbit: inter},
	}
	incs := []float64{src.inc, hostInc, hostInc}
	if extraBudget > 0 {
		if bonus, ok := p.bonus(src.orbit, tgt.orbit, extraBudget); ok {
			waits = append(waits, Candidate{Host: HostBonus, Orbit: bonus})
			incs = append(incs, hostInc)
		}
	}
	rateTgt := NodalPrecessionDeg(tgt.inc, tgt.orbit, p.Body)
	nodeTgt := tgt.raan + timeOffset*rateTgt
	nodeChaser := src.raan + timeOffset*NodalPrecessionDeg(src.inc, src.orbit, p.Body)
	for i := range waits {
		rate := NodalPrecessionDeg(incs[i], waits[i].Orbit, p.Body)
		waits[i].Value = RAANAlignmentTime(rate, rateTgt, nodeChaser-nodeTgt)
	}
	wait := bestCandidate(waits)

	// The plane change happens wherever it is cheapest.
	Δi := math.Abs(src.inc - tgt.inc)
	planeHosts := []Candidate{
		{Host: HostSource, Orbit: src.orbit},
		{Host: HostTarget, Orbit: tgt.orbit},
		{Host: HostIntermediate, Orbit: inter},
	}
	if wait.Host == HostBonus {
		planeHosts = append(planeHosts, Candidate{Host: HostBonus, Orbit: wait.Orbit})
	}
	for i := range planeHosts {
		planeHosts[i].Value = InclinationChangeΔv(planeHosts[i].Orbit, Δi)
	}
	plane := bestCandidate(planeHosts)

	phasing := p.Phasing
	if phasing <= 0 {
		phasing = DefaultPhasing
	}
	tW, tT := wait.Orbit.Period(), tgt.orbit.Period()
	phasingOrbits := (phasing / 360) * math.Abs(tW-tT) / tW

	t := Transfer{
		DepartureΔv:     TangentialTransferΔv(src.orbit, inter),
		ArrivalΔv:       TangentialTransferΔv(inter, tgt.orbit),
		InclinationΔv:   plane.Value,
		Wait:            wait.Value,
		PhasingOrbits:   phasingOrbits,
		Phasing:         phasingOrbits * tT,
		WaitHost:        wait.Host,
		InclinationHost: plane.Host,
		Intermediate:    inter,
		Waits:           waits,
		Inclinations:    planeHosts,
	}
	if wait.Host == HostBonus {
		t.BonusΔv = extraBudget
	}
	t.Δv = t.DepartureΔv + t.ArrivalΔv + t.InclinationΔv + t.BonusΔv
	t.Elapsed = t.Wait + t.Phasing
	return t
}

// intermediate returns the circular orbit approximating the argument of periapsis change.
// Orbits of the same shape need none, so the target itself is returned.
func (p Planner) intermediate(src, tgt Orbit) Orbit {
	if same, _ := src.Equals(tgt); same {
		return tgt
	}
	var r float64
	switch {
	case src.Apoapsis() <= tgt.Periapsis():
		r = tgt.Periapsis()
	case src.Apoapsis() >= tgt.Apoapsis():
		r = tgt.Apoapsis()
	default:
		r = src.Apoapsis()
	}
	return Orbit{r, 0, p.Body.μ}
}

// bonus returns the faster precessing parking orbit reached by spending half the extra budget
// to lower the shorter period orbit, or false if that orbit would hit the ground.
func (p Planner) bonus(src, tgt Orbit, extraBudget float64) (Orbit, bool) {
	var (
		bonus Orbit
		err   error
	)
	if src.Period() <= tgt.Period() {
		bonus, err = src.ApoapsisBurn(-extraBudget / 2)
	} else {
		bonus, err = tgt.PeriapsisBurn(-extraBudget / 2)
	}
	if err != nil || bonus.Periapsis() < p.Body.MeanRadius {
		return Orbit{}, false
	}
	return bonus, true
}
