// Package runner is the per-horse simulation unit: movement, stamina, lane
// changes, timers and the resolution of gimmick contacts. A Runner is owned
// by one race and advanced by a single goroutine.
package runner

import (
	"math"
	"math/rand"
	"time"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/course"
)

// State is the runner's position in the race state machine.
type State string

const (
	StateWaiting  State = "waiting"
	StateRunning  State = "running"
	StateStunned  State = "stunned"
	StateJumping  State = "jumping"
	StateBoosted  State = "boosted"
	StateFinished State = "finished"
)

// Movement and stamina tuning, in course units.
const (
	BaseSpeed       = 120.0 // units per second at speed 1.0
	LaneChangeSpeed = 5.0   // lanes per second
	StaminaFloor    = 0.3
	staminaDrain    = 0.008 // per second at stamina stat 1.0
)

// Category groups commentary for the sink.
type Category string

const (
	CategoryInfo    Category = "info"
	CategoryGimmick Category = "gimmick"
	CategoryAbility Category = "ability"
	CategoryFinish  Category = "finish"
)

// Note is a piece of commentary raised by the runner outside of a gimmick
// contact, such as an ability firing on a timer.
type Note struct {
	Text     string
	Category Category
}

type timedBoost struct {
	multiplier float64
	duration   time.Duration
}

// Runner is one horse in one race.
type Runner struct {
	profile   catalog.HorseProfile
	condition catalog.Condition
	label     string
	ability   Ability
	rng       catalog.Rand
	laneCount int

	state      State
	positionX  float64
	lane       int
	targetLane int
	lateral    float64
	moving     bool
	finishTime time.Duration

	stunLeft  time.Duration
	boostLeft time.Duration
	boostMult float64
	stamina   float64

	// resolved on the tick a stun or lateral move ends
	pendingShift   int
	pendingLanding *timedBoost

	revengeStack   int
	revengePending bool
	grassResidual  time.Duration
	shuffleMult    float64
	sinceShuffle   time.Duration
	invincibleLeft time.Duration

	notes []Note
}

// Option customises a Runner at construction.
type Option func(*Runner)

// WithRand sets the random source used for lane directions and chance rolls.
func WithRand(rng catalog.Rand) Option {
	return func(r *Runner) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithLaneCount sets the number of lanes the runner may move between.
func WithLaneCount(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.laneCount = n
		}
	}
}

// WithStartX places the runner on a start line other than course.StartX.
func WithStartX(x float64) Option {
	return func(r *Runner) { r.positionX = x }
}

// WithLabel attaches a display-only label, usually the rider's name.
func WithLabel(label string) Option {
	return func(r *Runner) { r.label = label }
}

// WithAbility overrides the handler chosen from the profile's tag.
func WithAbility(a Ability) Option {
	return func(r *Runner) {
		if a != nil {
			r.ability = a
		}
	}
}

// New creates a waiting runner in the given lane.
func New(profile catalog.HorseProfile, lane int, condition catalog.Condition, opts ...Option) *Runner {
	r := &Runner{
		profile:     profile,
		condition:   condition,
		ability:     AbilityFor(profile.Ability),
		rng:         globalRand{},
		laneCount:   15,
		state:       StateWaiting,
		positionX:   course.StartX,
		boostMult:   1,
		stamina:     1,
		shuffleMult: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lane = r.clampLane(lane)
	r.targetLane = r.lane
	r.lateral = float64(r.lane)
	return r
}

// StartRace moves a waiting runner into the running state.
func (r *Runner) StartRace() {
	if r.state != StateWaiting {
		return
	}
	r.state = StateRunning
	r.ability.OnStart(r)
}

// Finish freezes the runner. Later updates and effects are ignored.
func (r *Runner) Finish(at time.Duration) {
	if r.state == StateFinished {
		return
	}
	r.state = StateFinished
	r.finishTime = at
	r.moving = false
	r.stunLeft = 0
	r.boostLeft = 0
	r.boostMult = 1
}

// Update advances the runner by dt.
func (r *Runner) Update(dt time.Duration) {
	if r.state == StateWaiting || r.state == StateFinished || dt <= 0 {
		return
	}

	r.ability.OnTick(r, dt)
	r.invincibleLeft = countdown(r.invincibleLeft, dt)

	if r.state == StateStunned {
		r.stunLeft -= dt
		if r.stunLeft > 0 {
			return
		}
		r.stunLeft = 0
		r.settle()
		r.recover()
		return
	}

	if r.boostLeft > 0 {
		r.boostLeft -= dt
		if r.boostLeft <= 0 {
			r.boostLeft = 0
			r.boostMult = 1
			if r.state == StateBoosted {
				r.state = StateRunning
			}
		}
	}

	if r.moving {
		r.moveLateral(dt)
		return
	}
	r.advance(dt)
}

// ChangeLane starts a lateral move toward target. It reports false and does
// nothing when target is out of bounds or equals the current lane, and while
// the runner is waiting, finished, stunned or already moving.
func (r *Runner) ChangeLane(target int) bool {
	if target < 0 || target >= r.laneCount || target == r.lane {
		return false
	}
	if r.state == StateWaiting || r.state == StateFinished || r.state == StateStunned || r.moving {
		return false
	}
	r.targetLane = target
	r.moving = true
	r.state = StateJumping
	return true
}

func (r *Runner) moveLateral(dt time.Duration) {
	step := LaneChangeSpeed * r.ability.LateralFactor() * dt.Seconds()
	target := float64(r.targetLane)
	if r.lateral < target {
		r.lateral = math.Min(target, r.lateral+step)
	} else {
		r.lateral = math.Max(target, r.lateral-step)
	}
	if r.lateral != target {
		return
	}

	r.lane = r.targetLane
	r.moving = false
	r.settle()
	if b := r.pendingLanding; b != nil {
		r.pendingLanding = nil
		r.setBoost(b.multiplier, b.duration)
	}
	r.ability.OnArrive(r)
}

func (r *Runner) advance(dt time.Duration) {
	r.positionX += r.EffectiveSpeed() * dt.Seconds()
	r.stamina = math.Max(StaminaFloor, r.stamina-staminaDrain/r.profile.Stats.Stamina*dt.Seconds())
}

// settle returns a runner leaving a stun or lateral move to running, or to
// boosted while a speed-up is still active.
func (r *Runner) settle() {
	r.state = StateRunning
	if r.boostLeft > 0 && r.boostMult > 1 {
		r.state = StateBoosted
	}
}

// recover runs the work deferred until a stun ends.
func (r *Runner) recover() {
	r.ability.OnRecover(r)
	if r.pendingShift != 0 {
		target := r.clampLane(r.lane + r.pendingShift)
		r.pendingShift = 0
		r.ChangeLane(target)
	}
}

// EffectiveSpeed is the forward speed in units per second right now.
func (r *Runner) EffectiveSpeed() float64 {
	transient := r.boostMult * r.ability.SpeedFactor(r)
	return BaseSpeed * r.profile.Stats.Speed * r.condition.SpeedModifier() * transient * r.staminaFactor()
}

func (r *Runner) staminaFactor() float64 {
	s := math.Max(StaminaFloor, math.Min(1, r.stamina))
	return 0.3 + 0.7*s
}

// RestoreStamina adds a fraction of full stamina, capped at 1.
func (r *Runner) RestoreStamina(amount float64) {
	if amount <= 0 {
		return
	}
	r.stamina = math.Min(1, r.stamina+amount)
}

// stun stops the runner. Runners already stunned or mid-move are left alone.
func (r *Runner) stun(d time.Duration) bool {
	if d <= 0 || r.state == StateStunned || r.state == StateJumping || r.state == StateFinished {
		return false
	}
	r.stunLeft = d
	r.state = StateStunned
	return true
}

// setBoost starts a timed speed multiplier. Multipliers above one put a
// running runner into the boosted state; slows clear it.
func (r *Runner) setBoost(mult float64, d time.Duration) {
	if d <= 0 || r.state == StateFinished {
		return
	}
	r.boostMult = mult
	r.boostLeft = d
	switch {
	case mult > 1 && r.state == StateRunning:
		r.state = StateBoosted
	case mult <= 1 && r.state == StateBoosted:
		r.state = StateRunning
	}
}

func (r *Runner) randomDirection() int {
	if r.rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

func (r *Runner) clampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= r.laneCount {
		return r.laneCount - 1
	}
	return lane
}

func (r *Runner) note(category Category, text string) {
	r.notes = append(r.notes, Note{Text: text, Category: category})
}

// DrainNotes returns and clears commentary raised since the last call.
func (r *Runner) DrainNotes() []Note {
	out := r.notes
	r.notes = nil
	return out
}

func countdown(d, dt time.Duration) time.Duration {
	if d <= dt {
		return 0
	}
	return d - dt
}

// Read-only views used by the race manager and tests.

func (r *Runner) Profile() catalog.HorseProfile { return r.profile }
func (r *Runner) ID() int { return r.profile.ID }
func (r *Runner) Name() string { return r.profile.Name }
func (r *Runner) Label() string { return r.label }
func (r *Runner) Condition() catalog.Condition { return r.condition }
func (r *Runner) Ability() Ability { return r.ability }
func (r *Runner) State() State { return r.state }
func (r *Runner) PositionX() float64 { return r.positionX }
func (r *Runner) Lane() int { return r.lane }
func (r *Runner) TargetLane() int { return r.targetLane }
func (r *Runner) Lateral() float64 { return r.lateral }
func (r *Runner) ChangingLane() bool { return r.moving }
func (r *Runner) Stamina() float64 { return r.stamina }
func (r *Runner) StunRemaining() time.Duration { return r.stunLeft }
func (r *Runner) BoostRemaining() time.Duration { return r.boostLeft }
func (r *Runner) BoostMultiplier() float64 { return r.boostMult }
func (r *Runner) FinishTime() time.Duration { return r.finishTime }
func (r *Runner) RevengeStack() int { return r.revengeStack }
func (r *Runner) ShuffleMultiplier() float64 { return r.shuffleMult }
func (r *Runner) Invincible() bool { return r.invincibleLeft > 0 }
func (r *Runner) GrassResidual() time.Duration { return r.grassResidual }
func (r *Runner) Finished() bool { return r.state == StateFinished }

// globalRand falls back to the math/rand package source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int { return rand.Intn(n) }
