// Package race runs a field of runners over a generated course: finish
// order, branch turns, gimmick contacts and the event stream consumed by
// whatever is watching the race.
package race

import (
	"fmt"
	"math"
	"time"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/course"
	"github.com/padraicbc/amidarace/runner"
)

const (
	BranchHitRange  = 20.0
	GimmickHitRange = 30.0
	TurnPerIntel    = 0.5 // branch turn chance per point of intelligence
)

// Result is one line of the final standings.
type Result struct {
	Rank       int           `json:"rank"`
	HorseID    int           `json:"horseId"`
	HorseName  string        `json:"horseName"`
	Label      string        `json:"label,omitempty"`
	Result     string        `json:"result"`
	FinishTime time.Duration `json:"finishTime"`
}

type contact struct {
	gimmick string
	runner  int
}

// Manager owns one race. It is not safe for concurrent use; a single
// driver calls Update once per tick.
type Manager struct {
	course  *course.Data
	runners []*runner.Runner
	sink    Sink
	rng     catalog.Rand

	elapsed  time.Duration
	started  bool
	complete bool

	order     []int
	results   []Result
	crossed   []map[string]bool
	processed map[contact]bool
}

// NewManager wires runners to a course. A nil sink discards events and a
// nil rng uses the math/rand package source.
func NewManager(c *course.Data, runners []*runner.Runner, rng catalog.Rand, sink Sink) *Manager {
	if sink == nil {
		sink = NopSink()
	}
	if rng == nil {
		rng = globalRand{}
	}
	m := &Manager{
		course:    c,
		runners:   runners,
		sink:      sink,
		rng:       rng,
		crossed:   make([]map[string]bool, len(runners)),
		processed: make(map[contact]bool),
	}
	for i := range m.crossed {
		m.crossed[i] = make(map[string]bool)
	}
	return m
}

// Start sends every runner off. Calling it twice has no effect.
func (m *Manager) Start() {
	if m.started {
		return
	}
	m.started = true
	for _, r := range m.runners {
		r.StartRace()
	}
	m.say(0, runner.CategoryInfo, fmt.Sprintf("And they're off! %d runners over %.0fm.",
		len(m.runners), (m.course.GoalX-m.course.StartX)/catalog.UnitsPerMetre))
}

// Update advances the race by dt: every runner moves, then each runner in
// field order is checked for the finish line, branches and gimmicks.
func (m *Manager) Update(dt time.Duration) {
	if m.complete || dt <= 0 {
		return
	}
	m.elapsed += dt
	for _, r := range m.runners {
		r.Update(dt)
	}

	for i, r := range m.runners {
		m.step(i, r)
		for _, n := range r.DrainNotes() {
			m.say(r.ID(), n.Category, n.Text)
		}
	}

	if len(m.order) == len(m.runners) {
		m.complete = true
		m.sink.Publish(Event{Type: EventRaceComplete, Time: m.elapsed, Results: m.Results()})
	}
}

func (m *Manager) step(i int, r *runner.Runner) {
	switch r.State() {
	case runner.StateFinished, runner.StateWaiting:
		return
	}
	if r.PositionX() >= m.course.GoalX {
		m.finish(i, r)
		return
	}
	m.checkBranches(i, r)
	m.checkGimmicks(i, r)
}

func (m *Manager) finish(i int, r *runner.Runner) {
	r.Finish(m.elapsed)
	m.order = append(m.order, i)
	rank := len(m.order)
	res := Result{
		Rank:       rank,
		HorseID:    r.ID(),
		HorseName:  r.Name(),
		Label:      r.Label(),
		Result:     m.course.ResultFor(rank),
		FinishTime: m.elapsed,
	}
	m.results = append(m.results, res)

	var msg string
	switch {
	case rank == 1:
		msg = fmt.Sprintf("%s wins it! The prize: %q!", r.Name(), res.Result)
	case rank <= 3:
		msg = fmt.Sprintf("%s comes home %s. Result: %q", r.Name(), ordinal(rank), res.Result)
	default:
		msg = fmt.Sprintf("%s crosses the line in %s.", r.Name(), ordinal(rank))
	}
	m.say(r.ID(), runner.CategoryFinish, msg)
}

func (m *Manager) checkBranches(i int, r *runner.Runner) {
	if s := r.State(); s == runner.StateJumping || s == runner.StateStunned {
		return
	}
	crossed := m.crossed[i]
	for _, b := range m.course.Branches {
		if crossed[b.ID] {
			continue
		}
		if math.Abs(r.PositionX()-b.X) > BranchHitRange || !b.Touches(r.Lane()) {
			continue
		}
		crossed[b.ID] = true

		if !m.shouldTurn(r, b) {
			continue
		}
		from, to := r.Lane(), b.Other(r.Lane())
		if !r.ChangeLane(to) {
			continue
		}
		dir := "down"
		if to < from {
			dir = "up"
		}
		m.say(r.ID(), runner.CategoryInfo, fmt.Sprintf("%s takes the branch %s into lane %d!", r.Name(), dir, to+1))
		// mid-move now, later branches wait for the next tick
		return
	}
}

func (m *Manager) shouldTurn(r *runner.Runner, b course.Branch) bool {
	if p, ok := r.Ability().(runner.BranchPlanner); ok {
		ahead := m.course.GimmicksAhead(r.PositionX(), runner.RouteLookahead)
		if turn, decided := p.PlanTurn(r, b, ahead); decided {
			return turn
		}
	}
	chance := math.Min(1, r.Profile().Stats.Intelligence*TurnPerIntel)
	return m.rng.Float64() < chance
}

func (m *Manager) checkGimmicks(i int, r *runner.Runner) {
	if s := r.State(); s == runner.StateStunned || s == runner.StateJumping {
		return
	}
	// spawned gimmicks wait for the next tick
	n := len(m.course.Gimmicks)
	for gi := 0; gi < n; gi++ {
		g := m.course.Gimmicks[gi]
		if !g.Active || g.Lane != r.Lane() || math.Abs(r.PositionX()-g.X) > GimmickHitRange {
			continue
		}
		key := contact{gimmick: g.ID, runner: i}
		if m.processed[key] {
			continue
		}
		m.processed[key] = true

		if holder := m.guardFor(i, g.Type); holder != nil {
			m.say(r.ID(), runner.CategoryAbility, fmt.Sprintf("%s avoids the %s inside %s's safety zone!",
				r.Name(), g.Type, holder.Name()))
			continue
		}

		out := r.ApplyGimmick(g.Type)
		if out.Message != "" {
			m.say(r.ID(), out.Category, out.Message)
		}
		if g.Type.IsConsumable() {
			m.course.Gimmicks[gi].Active = false
			removed := m.course.Gimmicks[gi]
			m.sink.Publish(Event{Type: EventGimmickRemoved, Time: m.elapsed, HorseID: r.ID(), Gimmick: &removed})
		}
		if out.Spawn != nil {
			m.spawn(r, *out.Spawn)
		}
		if r.State() == runner.StateStunned || r.State() == runner.StateJumping {
			return
		}
	}
}

// guardFor returns another runner whose ability shields runner i from t.
func (m *Manager) guardFor(i int, t catalog.GimmickType) *runner.Runner {
	other := m.runners[i]
	for j, holder := range m.runners {
		if j == i {
			continue
		}
		g, ok := holder.Ability().(runner.AreaGuard)
		if !ok || !g.Guards(t) {
			continue
		}
		if g.Covers(holder, other) {
			return holder
		}
	}
	return nil
}

func (m *Manager) spawn(r *runner.Runner, s runner.Spawn) {
	x := math.Max(m.course.StartX, r.PositionX()-s.Behind)
	g := m.course.Append(s.Type, x, r.Lane())
	m.sink.Publish(Event{Type: EventGimmickPlaced, Time: m.elapsed, HorseID: r.ID(), Gimmick: &g})
	m.say(r.ID(), runner.CategoryAbility, fmt.Sprintf("%s leaves a %s behind!", r.Name(), s.Type))
}

func (m *Manager) say(horse int, cat runner.Category, text string) {
	m.sink.Publish(Event{Type: EventCommentary, Time: m.elapsed, Text: text, Category: cat, HorseID: horse})
}

// Results returns the standings so far in finish order.
func (m *Manager) Results() []Result {
	return append([]Result(nil), m.results...)
}

func (m *Manager) Done() bool { return m.complete }
func (m *Manager) Elapsed() time.Duration { return m.elapsed }
func (m *Manager) Course() *course.Data { return m.course }
func (m *Manager) Runners() []*runner.Runner { return m.runners }
func (m *Manager) Finished() int { return len(m.order) }

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
