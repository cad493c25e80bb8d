package race

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/course"
	"github.com/padraicbc/amidarace/runner"
)

const tick = 16 * time.Millisecond

type fixed float64

func (f fixed) Float64() float64 { return float64(f) }
func (f fixed) Intn(n int) int   { return int(float64(f) * float64(n)) }

func horse(id int, name string) catalog.HorseProfile {
	return catalog.HorseProfile{
		ID:    id,
		Name:  name,
		Stats: catalog.Stats{Speed: 1, Intelligence: 1, Power: 1, Stamina: 1},
	}
}

// track is a hand-built course with no generated content.
func track(lanes int, goal float64) *course.Data {
	d := &course.Data{StartX: course.StartX, GoalX: goal, TotalLength: goal - course.StartX}
	for i := 0; i < lanes; i++ {
		d.Lanes = append(d.Lanes, course.Lane{Index: i, Result: "Prize " + string(rune('A'+i))})
	}
	return d
}

func field(c *course.Data, rng catalog.Rand, lanes []int, startX float64, profiles ...catalog.HorseProfile) []*runner.Runner {
	out := make([]*runner.Runner, len(profiles))
	for i, p := range profiles {
		out[i] = runner.New(p, lanes[i], catalog.ConditionNormal,
			runner.WithRand(rng), runner.WithLaneCount(c.LaneCount()), runner.WithStartX(startX))
	}
	return out
}

func commentary(rec *Recorder, cat runner.Category) []Event {
	var out []Event
	for _, e := range rec.Filter(EventCommentary) {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// TestSameTickFinishUsesFieldOrder ensures simultaneous arrivals rank in field order.
func TestSameTickFinishUsesFieldOrder(t *testing.T) {
	c := track(3, 200)
	a, b, cc := horse(1, "A"), horse(2, "B"), horse(3, "C")
	cc.Stats.Speed = 3
	rec := &Recorder{}
	m := NewManager(c, field(c, fixed(0.5), []int{0, 1, 2}, course.StartX, a, b, cc), fixed(0.5), rec)
	m.Start()
	m.Update(2 * time.Second)

	res := m.Results()
	if len(res) != 3 {
		t.Fatalf("results = %+v", res)
	}
	for i, want := range []string{"A", "B", "C"} {
		if res[i].HorseName != want || res[i].Rank != i+1 {
			t.Fatalf("result %d = %+v, want %s rank %d", i, res[i], want, i+1)
		}
		if res[i].Result != c.Lanes[i].Result {
			t.Fatalf("result %d prize = %q", i, res[i].Result)
		}
	}
	if !m.Done() {
		t.Fatal("race not complete")
	}

	m.Update(time.Second)
	done := rec.Filter(EventRaceComplete)
	if len(done) != 1 {
		t.Fatalf("race-complete delivered %d times", len(done))
	}
	if len(done[0].Results) != 3 {
		t.Fatalf("race-complete results = %+v", done[0].Results)
	}
	if got := len(commentary(rec, runner.CategoryFinish)); got != 3 {
		t.Fatalf("finish commentary = %d", got)
	}
}

// TestFinishedPlaceholderResult ensures extra finishers get placeholder prizes.
func TestFinishedPlaceholderResult(t *testing.T) {
	c := track(1, 150)
	m := NewManager(c, field(c, fixed(0.5), []int{0, 0}, course.StartX, horse(1, "A"), horse(2, "B")), fixed(0.5), nil)
	m.Start()
	m.Update(time.Second)
	res := m.Results()
	if len(res) != 2 || res[1].Result != "Lane 2" {
		t.Fatalf("results = %+v", res)
	}
}

// TestGimmickTriggersOncePerRunner exercises the processed-pair set.
func TestGimmickTriggersOncePerRunner(t *testing.T) {
	c := track(2, 5000)
	c.Gimmicks = []course.Gimmick{{ID: "grass", Type: catalog.GimmickGrass, X: 120, Lane: 0, Active: true}}
	rec := &Recorder{}
	m := NewManager(c, field(c, fixed(0.5), []int{0}, course.StartX, horse(1, "A")), fixed(0.5), rec)
	m.Start()
	for i := 0; i < 40; i++ {
		m.Update(tick)
	}
	if got := len(commentary(rec, runner.CategoryGimmick)); got != 1 {
		t.Fatalf("grass triggered %d times", got)
	}
	if !c.Gimmicks[0].Active {
		t.Fatal("grass consumed")
	}
}

// TestConsumableRemoved ensures poop is spent by the first runner only.
func TestConsumableRemoved(t *testing.T) {
	c := track(1, 5000)
	c.Gimmicks = []course.Gimmick{{ID: "poop", Type: catalog.GimmickPoop, X: 110, Lane: 0, Active: true}}
	rec := &Recorder{}
	rs := field(c, fixed(0.5), []int{0, 0}, course.StartX, horse(1, "A"), horse(2, "B"))
	m := NewManager(c, rs, fixed(0.5), rec)
	m.Start()
	m.Update(tick)

	if rs[0].State() != runner.StateStunned {
		t.Fatalf("first runner state = %s", rs[0].State())
	}
	if rs[1].State() == runner.StateStunned {
		t.Fatal("second runner hit a spent gimmick")
	}
	if c.Gimmicks[0].Active {
		t.Fatal("poop still active")
	}
	removed := rec.Filter(EventGimmickRemoved)
	if len(removed) != 1 || removed[0].Gimmick.ID != "poop" {
		t.Fatalf("removed events = %+v", removed)
	}
}

// TestHazardShieldProtectsNeighbour checks the area guard around the holder.
func TestHazardShieldProtectsNeighbour(t *testing.T) {
	c := track(3, 5000)
	c.Gimmicks = []course.Gimmick{{ID: "poop", Type: catalog.GimmickPoop, X: 110, Lane: 2, Active: true}}
	shield := horse(1, "Shield")
	shield.Ability = catalog.AbilityHazardShield
	rec := &Recorder{}
	rs := field(c, fixed(0.5), []int{1, 2}, course.StartX, shield, horse(2, "Lucky"))
	m := NewManager(c, rs, fixed(0.5), rec)
	m.Start()
	m.Update(tick)

	if rs[1].State() == runner.StateStunned {
		t.Fatal("protected runner stunned")
	}
	if !c.Gimmicks[0].Active {
		t.Fatal("guarded contact consumed the poop")
	}
	if got := commentary(rec, runner.CategoryAbility); len(got) != 1 {
		t.Fatalf("ability commentary = %+v", got)
	}
}

// TestTrapSetterPlacesPoop checks dynamic placement behind the runner.
func TestTrapSetterPlacesPoop(t *testing.T) {
	c := track(2, 5000)
	c.Gimmicks = []course.Gimmick{{ID: "grass", Type: catalog.GimmickGrass, X: 400, Lane: 1, Active: true}}
	trap := horse(1, "Trap")
	trap.Ability = catalog.AbilityTrapSetter
	rec := &Recorder{}
	rs := field(c, fixed(0.5), []int{1}, 390, trap)
	m := NewManager(c, rs, fixed(0.5), rec)
	m.Start()
	m.Update(tick)

	placed := rec.Filter(EventGimmickPlaced)
	if len(placed) != 1 {
		t.Fatalf("placed events = %+v", placed)
	}
	g := placed[0].Gimmick
	if g.Type != catalog.GimmickPoop || g.Lane != 1 || g.X >= rs[0].PositionX() || g.X < c.StartX {
		t.Fatalf("placed gimmick = %+v", g)
	}
	if len(c.Gimmicks) != 2 || c.Gimmicks[1].ID != g.ID {
		t.Fatalf("course gimmicks = %+v", c.Gimmicks)
	}
}

// TestTrapSetterClampsToStart ensures placement never precedes the start line.
func TestTrapSetterClampsToStart(t *testing.T) {
	c := track(1, 5000)
	c.Gimmicks = []course.Gimmick{{ID: "grass", Type: catalog.GimmickGrass, X: 110, Lane: 0, Active: true}}
	trap := horse(1, "Trap")
	trap.Ability = catalog.AbilityTrapSetter
	m := NewManager(c, field(c, fixed(0.5), []int{0}, course.StartX, trap), fixed(0.5), nil)
	m.Start()
	m.Update(tick)
	if len(c.Gimmicks) != 2 || c.Gimmicks[1].X != c.StartX {
		t.Fatalf("course gimmicks = %+v", c.Gimmicks)
	}
}

// TestBranchTurnByIntelligence covers the certain and the refused turn.
func TestBranchTurnByIntelligence(t *testing.T) {
	c := track(3, 5000)
	c.Branches = []course.Branch{{ID: "b", X: 110, FromLane: 0, ToLane: 1}}

	smart := horse(1, "Smart")
	smart.Stats.Intelligence = 2
	rs := field(c, fixed(0.99), []int{0}, course.StartX, smart)
	m := NewManager(c, rs, fixed(0.99), nil)
	m.Start()
	m.Update(tick)
	if !rs[0].ChangingLane() || rs[0].TargetLane() != 1 {
		t.Fatalf("smart horse did not turn: target=%d", rs[0].TargetLane())
	}

	dull := horse(2, "Dull")
	dull.Stats.Intelligence = 1
	rs = field(c, fixed(0.99), []int{1}, course.StartX, dull)
	m = NewManager(c, rs, fixed(0.99), nil)
	m.Start()
	for i := 0; i < 20; i++ {
		m.Update(tick)
	}
	if rs[0].ChangingLane() || rs[0].Lane() != 1 {
		t.Fatalf("dull horse turned to %d", rs[0].TargetLane())
	}
}

// TestBranchIgnoredFromOtherLane ensures a branch only affects its two lanes.
func TestBranchIgnoredFromOtherLane(t *testing.T) {
	c := track(4, 5000)
	c.Branches = []course.Branch{{ID: "b", X: 110, FromLane: 0, ToLane: 1}}
	smart := horse(1, "Smart")
	smart.Stats.Intelligence = 2
	rs := field(c, fixed(0), []int{3}, course.StartX, smart)
	m := NewManager(c, rs, fixed(0), nil)
	m.Start()
	m.Update(tick)
	if rs[0].ChangingLane() {
		t.Fatal("turned at a branch on another lane")
	}
}

func rosterSetup() Setup {
	return Setup{
		CourseLength:   4000,
		BranchDensity:  0.6,
		GimmickDensity: 0.4,
		SpecialDay:     catalog.DayChaos,
		Horses:         catalog.Roster(),
	}
}

// TestFullRaceStandings checks dense ranks and the single completion event.
func TestFullRaceStandings(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rec := &Recorder{}
		m, err := Prepare(rosterSetup(), rand.New(rand.NewSource(seed)), rec)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		res, err := Simulate(context.Background(), m, tick, 10*time.Minute)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(res) != 15 {
			t.Fatalf("seed %d: %d results", seed, len(res))
		}
		seen := map[int]bool{}
		for i, r := range res {
			if r.Rank != i+1 {
				t.Fatalf("seed %d: rank %d at position %d", seed, r.Rank, i)
			}
			if i > 0 && r.FinishTime < res[i-1].FinishTime {
				t.Fatalf("seed %d: finish times out of order", seed)
			}
			if seen[r.HorseID] {
				t.Fatalf("seed %d: horse %d finished twice", seed, r.HorseID)
			}
			seen[r.HorseID] = true
		}
		if got := rec.Filter(EventRaceComplete); len(got) != 1 {
			t.Fatalf("seed %d: %d completion events", seed, len(got))
		}
		for _, rr := range m.Runners() {
			if !rr.Finished() {
				t.Fatalf("seed %d: %s still running", seed, rr.Name())
			}
		}
	}
}

// TestSeededRaceReplays ensures one seed gives one race.
func TestSeededRaceReplays(t *testing.T) {
	run := func() []Result {
		m, err := Prepare(rosterSetup(), rand.New(rand.NewSource(42)), nil)
		if err != nil {
			t.Fatal(err)
		}
		res, err := Simulate(context.Background(), m, tick, 10*time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("result %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestSimulateLimits covers the race time limit and cancellation.
func TestSimulateLimits(t *testing.T) {
	m, err := Prepare(rosterSetup(), rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Simulate(context.Background(), m, tick, time.Second); !errors.Is(err, ErrRaceTimeout) {
		t.Fatalf("err = %v, want timeout", err)
	}

	m, _ = Prepare(rosterSetup(), rand.New(rand.NewSource(1)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Simulate(ctx, m, tick, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
}

// TestPrepareRejectsBadRoster covers the empty and invalid entries.
func TestPrepareRejectsBadRoster(t *testing.T) {
	if _, err := Prepare(Setup{}, nil, nil); !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("err = %v", err)
	}
	bad := horse(1, "Lame")
	bad.Stats.Stamina = 0
	if _, err := Prepare(Setup{Horses: []catalog.HorseProfile{bad}}, nil, nil); err == nil {
		t.Fatal("accepted a horse with zero stamina")
	}
}

// TestPrepareDefaults checks lane count, conditions and labels.
func TestPrepareDefaults(t *testing.T) {
	s := Setup{
		CourseLength: 1000,
		Horses:       []catalog.HorseProfile{horse(1, "A"), horse(2, "B"), horse(3, "C")},
		Conditions:   []catalog.Condition{catalog.ConditionExcellent},
		Labels:       []string{"", "Bea"},
	}
	m, err := Prepare(s, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Course().LaneCount() != 3 {
		t.Fatalf("lanes = %d", m.Course().LaneCount())
	}
	rs := m.Runners()
	if rs[0].Condition() != catalog.ConditionExcellent || rs[2].Condition() != catalog.ConditionNormal {
		t.Fatalf("conditions = %s, %s", rs[0].Condition(), rs[2].Condition())
	}
	if rs[1].Label() != "Bea" || rs[2].Lane() != 2 {
		t.Fatalf("runner 1 label %q, runner 2 lane %d", rs[1].Label(), rs[2].Lane())
	}
}

// TestLogSink ensures events reach zap.
func TestLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := LogSink(zap.New(core), "race-1")
	sink.Publish(Event{Type: EventCommentary, Text: "hello", Category: runner.CategoryInfo})
	sink.Publish(Event{Type: EventRaceComplete, Results: []Result{{Rank: 1, HorseName: "A"}}})

	if logs.Len() != 2 {
		t.Fatalf("logged %d entries", logs.Len())
	}
	done := logs.FilterMessage("race complete").All()
	if len(done) != 1 || done[0].ContextMap()["winner"] != "A" || done[0].ContextMap()["race"] != "race-1" {
		t.Fatalf("completion entry = %+v", done)
	}
}

// TestTee fans out to every sink.
func TestTee(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Tee(a, nil, b).Publish(Event{Type: EventCommentary})
	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Fatal("tee dropped an event")
	}
}
