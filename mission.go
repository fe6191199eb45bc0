package maneuvers

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ErrNoFeasibleTarget is returned by CollectOne when no remaining object can be caught within
// the per hop limits. It ends a mission, it is not a failure.
var ErrNoFeasibleTarget = errors.New("no feasible target")

// StopReason tells why a mission ended.
type StopReason uint8

const (
	// StopNone means the mission has not ended.
	StopNone StopReason = iota
	// StopFuelExhausted means the cumulative Δv reached the total fuel budget.
	StopFuelExhausted
	// StopNoFeasibleTarget means no remaining object could be caught.
	StopNoFeasibleTarget
)

func (s StopReason) String() string {
	switch s {
	case StopFuelExhausted:
		return "fuel exhausted"
	case StopNoFeasibleTarget:
		return "no feasible target"
	default:
		return "running"
	}
}

// MissionConfig defines the budgets of a mission.
type MissionConfig struct {
	Start     int     `mapstructure:"start" toml:"start"`           // catalog index of the first object, caught for free
	TotalFuel float64 `mapstructure:"total_fuel" toml:"total_fuel"` // cumulative Δv budget (m/s)
	HopTime   float64 `mapstructure:"hop_time" toml:"hop_time"`     // a catch must take strictly less than this (s)
	HopFuel   float64 `mapstructure:"hop_fuel" toml:"hop_fuel"`     // maximum Δv of a single catch (m/s), zero for no limit
	Bonus     float64 `mapstructure:"bonus" toml:"bonus"`           // extra budget offered to the planner for a bonus orbit (m/s)
	Workers   int     `mapstructure:"workers" toml:"workers"`       // number of candidates evaluated concurrently, sequential if < 2
}

// Validate returns an error if the budgets cannot define a mission over n catalog objects.
func (c MissionConfig) Validate(n int) error {
	switch {
	case n == 0:
		return errors.New("empty catalog")
	case c.Start < 0 || c.Start >= n:
		return fmt.Errorf("start index %d out of catalog range [0, %d)", c.Start, n)
	case !(c.TotalFuel > 0):
		return fmt.Errorf("total fuel must be strictly positive, got %g", c.TotalFuel)
	case !(c.HopTime > 0):
		return fmt.Errorf("hop time must be strictly positive, got %g", c.HopTime)
	case c.HopFuel < 0 || c.Bonus < 0:
		return fmt.Errorf("per hop budgets must be positive, got hop fuel %g and bonus %g", c.HopFuel, c.Bonus)
	}
	return nil
}

// Hop is one catch of a mission.
type Hop struct {
	Index    int     // catalog index of the caught object
	Δv       float64 // m/s
	Elapsed  float64 // s
	Transfer Transfer
}

// CapturePlan is the outcome of a mission: the objects caught in order and what it cost.
type CapturePlan struct {
	Captures []Record // the first capture is the start object
	Hops     []Hop    // one per capture after the first
	Δv       float64  // cumulative (m/s)
	Elapsed  float64  // cumulative (s)
	Stop     StopReason
}

// Indices returns the catalog indices of all captures, start included.
func (p CapturePlan) Indices(start int) []int {
	idx := []int{start}
	for _, h := range p.Hops {
		idx = append(idx, h.Index)
	}
	return idx
}

// Mission greedily catches catalog objects one after the other.
// The catalog should be sorted by inclination then RAAN (cf. SortCatalog), so that neighbors
// are cheap to reach.
type Mission struct {
	catalog  []Record
	elements []planElements
	planner  Planner
	cfg      MissionConfig
	logger   kitlog.Logger
	metrics  *Metrics
	// State
	index    int
	caught   map[int]bool
	captures []Record
	hops     []Hop
	v, t     float64
	stop     StopReason
}

// MissionOption configures optional collaborators of a Mission.
type MissionOption func(*Mission)

// WithLogger sets the logger of the mission (logfmt on stderr by default).
func WithLogger(logger kitlog.Logger) MissionOption {
	return func(m *Mission) {
		m.logger = logger
	}
}

// WithMetrics sets the collectors updated by the mission.
func WithMetrics(metrics *Metrics) MissionOption {
	return func(m *Mission) {
		m.metrics = metrics
	}
}

// NewMission returns a new mission starting at cfg.Start.
// All records are validated here: a single malformed record fails the whole mission.
func NewMission(catalog []Record, planner Planner, cfg MissionConfig, opts ...MissionOption) (*Mission, error) {
	if err := cfg.Validate(len(catalog)); err != nil {
		return nil, err
	}
	elements := make([]planElements, len(catalog))
	for i, rec := range catalog {
		el, err := planner.elements(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog[%d]: %w", i, err)
		}
		elements[i] = el
	}
	m := &Mission{
		catalog:  catalog,
		elements: elements,
		planner:  planner,
		cfg:      cfg,
		index:    cfg.Start,
		caught:   map[int]bool{cfg.Start: true},
		captures: []Record{catalog[cfg.Start]},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	}
	m.logger = kitlog.With(m.logger, "subsys", "mission")
	return m, nil
}

// LogStatus logs the status of the mission.
func (m *Mission) LogStatus() {
	level.Info(m.logger).Log("caught", len(m.captures), "index", m.index, "Δv(m/s)", m.v, "elapsed(s)", m.t, "status", m.stop)
}

// CollectOne catches the next object: the first one after the current index which is not caught
// yet and can be reached within the per hop limits. It returns ErrNoFeasibleTarget when the
// catalog is exhausted.
func (m *Mission) CollectOne() (Hop, error) {
	workers := m.cfg.Workers
	if workers < 2 {
		workers = 1
	}
	for from := m.index + 1; from < len(m.catalog); from += workers {
		to := from + workers
		if to > len(m.catalog) {
			to = len(m.catalog)
		}
		transfers := m.evaluateWindow(from, to)
		// Candidates are resolved in order so the lowest feasible index always wins.
		for idx := from; idx < to; idx++ {
			tr, ok := transfers[idx-from]
			if !ok {
				continue
			}
			switch m.judge(tr) {
			case outcomeInfeasible:
				m.metrics.observeCandidate(outcomeInfeasible)
				level.Debug(m.logger).Log("candidate", idx, "outcome", outcomeInfeasible)
			case outcomeRejected:
				m.metrics.observeCandidate(outcomeRejected)
				level.Debug(m.logger).Log("candidate", idx, "outcome", outcomeRejected, "Δv(m/s)", tr.Δv, "elapsed(s)", tr.Elapsed)
			default:
				m.metrics.observeCandidate(outcomeAccepted)
				return m.accept(idx, tr), nil
			}
		}
	}
	return Hop{}, ErrNoFeasibleTarget
}

// evaluateWindow plans the transfers to the candidates in [from, to), concurrently if configured.
// Caught candidates are absent from the returned map.
func (m *Mission) evaluateWindow(from, to int) map[int]Transfer {
	transfers := make([]Transfer, to-from)
	planned := make([]bool, to-from)
	src := m.elements[m.index]
	plan := func(idx int) {
		if m.caught[idx] {
			return
		}
		transfers[idx-from] = m.planner.plan(src, m.elements[idx], m.t, m.cfg.Bonus)
		planned[idx-from] = true
	}
	if to-from == 1 {
		plan(from)
	} else {
		var wg sync.WaitGroup
		for idx := from; idx < to; idx++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				plan(idx)
			}(idx)
		}
		wg.Wait()
	}
	out := make(map[int]Transfer, len(transfers))
	for i, tr := range transfers {
		if planned[i] {
			out[i] = tr
		}
	}
	return out
}

func (m *Mission) judge(tr Transfer) string {
	if !tr.Feasible() || math.IsInf(tr.Δv, 0) {
		return outcomeInfeasible
	}
	if tr.Elapsed >= m.cfg.HopTime {
		return outcomeRejected
	}
	if m.cfg.HopFuel > 0 && tr.Δv > m.cfg.HopFuel {
		return outcomeRejected
	}
	return outcomeAccepted
}

func (m *Mission) accept(idx int, tr Transfer) Hop {
	hop := Hop{Index: idx, Δv: tr.Δv, Elapsed: tr.Elapsed, Transfer: tr}
	m.index = idx
	m.caught[idx] = true
	m.captures = append(m.captures, m.catalog[idx])
	m.hops = append(m.hops, hop)
	m.v += tr.Δv
	m.t += tr.Elapsed
	m.metrics.observeHop(hop, m.v)
	level.Info(m.logger).Log("caught", m.catalog[idx].Name(), "index", idx, "Δv(m/s)", tr.Δv, "elapsed(s)", tr.Elapsed, "wait", tr.WaitHost, "plane", tr.InclinationHost)
	return hop
}

// Run catches objects until the fuel budget is spent or nothing else can be caught.
func (m *Mission) Run() CapturePlan {
	for m.stop == StopNone {
		if m.v >= m.cfg.TotalFuel {
			m.stop = StopFuelExhausted
			break
		}
		if _, err := m.CollectOne(); err != nil {
			m.stop = StopNoFeasibleTarget
		}
	}
	m.LogStatus()
	return m.Plan()
}

// Plan returns a copy of the capture plan so far.
func (m *Mission) Plan() CapturePlan {
	return CapturePlan{
		Captures: append([]Record(nil), m.captures...),
		Hops:     append([]Hop(nil), m.hops...),
		Δv:       m.v,
		Elapsed:  m.t,
		Stop:     m.stop,
	}
}

// Current returns the object currently caught and its orbit.
func (m *Mission) Current() (Record, Orbit) {
	return m.catalog[m.index], m.elements[m.index].orbit
}
