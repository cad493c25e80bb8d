package race

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/course"
	"github.com/padraicbc/amidarace/runner"
)

var ErrEmptyRoster = errors.New("race: no horses entered")

// Setup is everything needed to run one race.
type Setup struct {
	CourseLength   float64
	BranchDensity  float64
	GimmickDensity float64
	// LaneCount defaults to one lane per horse.
	LaneCount   int
	LaneResults []string
	SpecialDay  catalog.SpecialDay

	Horses []catalog.HorseProfile
	// Conditions and Labels line up with Horses. Missing conditions race as
	// normal.
	Conditions []catalog.Condition
	Labels     []string
}

// Prepare generates the course and builds a manager with horse i starting in
// lane i. The same rng drives the course, the runners and the manager, so a
// seeded source replays the race exactly.
func Prepare(s Setup, rng catalog.Rand, sink Sink) (*Manager, error) {
	if len(s.Horses) == 0 {
		return nil, ErrEmptyRoster
	}
	for _, h := range s.Horses {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("prepare race: %w", err)
		}
	}
	if rng == nil {
		rng = globalRand{}
	}
	lanes := s.LaneCount
	if lanes <= 0 {
		lanes = len(s.Horses)
	}

	c := course.Generate(course.Params{
		TotalLength:    s.CourseLength,
		BranchDensity:  s.BranchDensity,
		GimmickDensity: s.GimmickDensity,
		LaneCount:      lanes,
		LaneResults:    s.LaneResults,
		SpecialDay:     s.SpecialDay,
	}, rng)

	runners := make([]*runner.Runner, len(s.Horses))
	for i, h := range s.Horses {
		cond := catalog.ConditionNormal
		if i < len(s.Conditions) && s.Conditions[i] != "" {
			cond = s.Conditions[i]
		}
		opts := []runner.Option{
			runner.WithRand(rng),
			runner.WithLaneCount(c.LaneCount()),
			runner.WithStartX(c.StartX),
		}
		if i < len(s.Labels) {
			opts = append(opts, runner.WithLabel(s.Labels[i]))
		}
		runners[i] = runner.New(h, c.ClampLane(i), cond, opts...)
	}
	return NewManager(c, runners, rng, sink), nil
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Paddock is the pre-race draw: the day's theme and each horse's form.
type Paddock struct {
	SpecialDay catalog.SpecialDay  `json:"specialDay"`
	Conditions []catalog.Condition `json:"conditions"`
}

// DrawPaddock draws the special day and then n conditions from rng. Drawing
// the paddock before Prepare with the same seeded source reproduces it.
func DrawPaddock(rng catalog.Rand, n int) Paddock {
	return Paddock{
		SpecialDay: catalog.DrawSpecialDay(rng),
		Conditions: catalog.DrawConditions(rng, n),
	}
}
