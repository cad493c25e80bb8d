package runner

import (
	"fmt"
	"math"
	"time"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/course"
)

// Ability tuning.
const (
	grassSpecialistBoost = 2.0
	grassSpecialistPain  = 2 // poop stun and mud slow multiplier

	RouteLookahead   = 500.0 // how far ahead the route planner reads its lane
	routeAvoidChance = 0.9

	jumperLanes         = 2
	jumperLandingBoost  = 1.5
	jumperLandingLength = 2 * time.Second

	invertChance = 0.5

	inversionBoost = 1.5

	grassResidualFactor = 3
	grassResidualBoost  = 1.5

	SafetyRange = 150.0 // hazard-shield reach along the course
	SafetyLanes = 2.0   // hazard-shield reach across lanes

	TrapOffset = 50.0

	ShuffleInterval = 5 * time.Second
	shuffleMin      = 0.7
	shuffleSpan     = 0.8

	eaterBoost    = 1.8
	eaterLength   = time.Second
	eaterStamina  = 0.2
	dashLateral   = 3.0
	dashShield    = 500 * time.Millisecond
	dashStamina   = 0.1
	revengeLength = 3 * time.Second
	revengeStep   = 0.2
)

func blocked(r *Runner, format string) (Outcome, bool) {
	return Outcome{Blocked: true, Message: fmt.Sprintf(format, r.Name()), Category: CategoryAbility}, true
}

func boosted(r *Runner, mult float64, d time.Duration, format string) (Outcome, bool) {
	r.setBoost(mult, d)
	return Outcome{Message: fmt.Sprintf(format, r.Name()), Category: CategoryAbility}, true
}

// speedOnGrass: doubled grass boost, but poop and mud hurt twice as long.
type speedOnGrass struct{ NoAbility }

func (speedOnGrass) Tag() catalog.Ability { return catalog.AbilitySpeedOnGrass }

func (speedOnGrass) Tune(r *Runner, e *Effect) {
	switch e.Gimmick {
	case catalog.GimmickGrass:
		e.SpeedModifier = grassSpecialistBoost
		e.Message = fmt.Sprintf("%s hits the turf and rockets ahead!", r.Name())
		e.Category = CategoryAbility
	case catalog.GimmickPoop:
		e.Stun *= grassSpecialistPain
	case catalog.GimmickMud:
		e.Duration *= grassSpecialistPain
	}
}

// armorBreaker smashes through every hazard.
type armorBreaker struct{ NoAbility }

func (armorBreaker) Tag() catalog.Ability { return catalog.AbilityArmorBreaker }

func (armorBreaker) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	switch t {
	case catalog.GimmickConstruction:
		return blocked(r, "%s smashed straight through the road works!")
	case catalog.GimmickPoop:
		return blocked(r, "%s pulverised the poop!")
	case catalog.GimmickMud:
		return blocked(r, "%s shattered the mud!")
	}
	return Outcome{}, false
}

// routePlanner evades hazards and reads the lane ahead at branches.
type routePlanner struct{ NoAbility }

func (routePlanner) Tag() catalog.Ability { return catalog.AbilityRoutePlanner }

func (routePlanner) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	if t.IsHazard() {
		return blocked(r, "%s neatly evaded the "+string(t)+"!")
	}
	return Outcome{}, false
}

func (routePlanner) PlanTurn(r *Runner, _ course.Branch, ahead []course.Gimmick) (bool, bool) {
	for _, g := range ahead {
		if g.Active && g.Lane == r.Lane() && g.Type.IsHazard() {
			return r.rng.Float64() < routeAvoidChance, true
		}
	}
	return false, false
}

// doubleJumper springs two lanes and lands with a burst of speed.
type doubleJumper struct{ NoAbility }

func (doubleJumper) Tag() catalog.Ability { return catalog.AbilityDoubleJumper }

func (doubleJumper) Tune(r *Runner, e *Effect) {
	if e.Gimmick != catalog.GimmickSpring {
		return
	}
	e.LaneShift = jumperLanes
	e.Message = fmt.Sprintf("%s takes a huge leap across two lanes!", r.Name())
	e.Category = CategoryAbility
	r.pendingLanding = &timedBoost{multiplier: jumperLandingBoost, duration: jumperLandingLength}
}

func (doubleJumper) AfterHit(r *Runner, e Effect) {
	// a clamped spring that went nowhere leaves no landing to reward
	if e.Gimmick == catalog.GimmickSpring && !r.moving {
		r.pendingLanding = nil
	}
}

// chanceInverter flips gimmicks with a coin toss.
type chanceInverter struct{ NoAbility }

func (chanceInverter) Tag() catalog.Ability { return catalog.AbilityChanceInverter }

func (chanceInverter) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	switch t {
	case catalog.GimmickConstruction, catalog.GimmickPoop, catalog.GimmickMud, catalog.GimmickGrass:
	default:
		return Outcome{}, false
	}
	if r.rng.Float64() >= invertChance {
		return Outcome{}, false
	}
	switch t {
	case catalog.GimmickConstruction:
		return boosted(r, inversionBoost, 2*time.Second, "%s flips the odds! Road works become a launch pad!")
	case catalog.GimmickPoop:
		return boosted(r, inversionBoost, 1500*time.Millisecond, "%s flips the odds! Poop becomes rocket fuel!")
	case catalog.GimmickMud:
		return boosted(r, inversionBoost, 2*time.Second, "%s flips the odds! Mud becomes a water slide!")
	default:
		return boosted(r, 0.5, 2*time.Second, "%s flips the odds... and the grass slows it down!")
	}
}

// mudLover speeds up in mud.
type mudLover struct{ NoAbility }

func (mudLover) Tag() catalog.Ability { return catalog.AbilityMudLover }

func (mudLover) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	if t != catalog.GimmickMud {
		return Outcome{}, false
	}
	return boosted(r, 1.5, 2*time.Second, "%s loves the mud and surges forward!")
}

// grassAbsorber keeps a grass boost long after leaving the turf.
type grassAbsorber struct{ NoAbility }

func (grassAbsorber) Tag() catalog.Ability { return catalog.AbilityGrassAbsorber }

func (grassAbsorber) Tune(r *Runner, e *Effect) {
	if e.Gimmick != catalog.GimmickGrass {
		return
	}
	r.grassResidual = e.Duration * grassResidualFactor
	e.Message = fmt.Sprintf("%s soaks up the grass, the boost will linger!", r.Name())
	e.Category = CategoryAbility
}

func (grassAbsorber) OnTick(r *Runner, dt time.Duration) {
	r.grassResidual = countdown(r.grassResidual, dt)
}

func (grassAbsorber) SpeedFactor(r *Runner) float64 {
	if r.grassResidual > 0 {
		return grassResidualBoost
	}
	return 1
}

// hazardShield ignores poop and mud and keeps nearby runners out of poop.
type hazardShield struct{ NoAbility }

func (hazardShield) Tag() catalog.Ability { return catalog.AbilityHazardShield }

func (hazardShield) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	switch t {
	case catalog.GimmickPoop:
		return blocked(r, "%s is immune to poop inside the safety zone!")
	case catalog.GimmickMud:
		return blocked(r, "%s is immune to mud inside the safety zone!")
	}
	return Outcome{}, false
}

func (hazardShield) Guards(t catalog.GimmickType) bool {
	return t == catalog.GimmickPoop
}

func (hazardShield) Covers(holder, other *Runner) bool {
	if holder == other || holder.Finished() {
		return false
	}
	return math.Abs(holder.positionX-other.positionX) < SafetyRange &&
		math.Abs(holder.lateral-other.lateral) < SafetyLanes
}

// phaseWalker passes through road works but gets nothing from grass.
type phaseWalker struct{ NoAbility }

func (phaseWalker) Tag() catalog.Ability { return catalog.AbilityPhaseWalker }

func (phaseWalker) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	switch t {
	case catalog.GimmickConstruction:
		return blocked(r, "%s phased right through the road works!")
	case catalog.GimmickGrass:
		return blocked(r, "%s drifts over the grass without a boost...")
	}
	return Outcome{}, false
}

// trapSetter drops poop behind itself on every contact.
type trapSetter struct{ NoAbility }

func (trapSetter) Tag() catalog.Ability { return catalog.AbilityTrapSetter }

func (trapSetter) OnContact(*Runner, catalog.GimmickType) *Spawn {
	return &Spawn{Type: catalog.GimmickPoop, Behind: TrapOffset}
}

// statShuffler rerolls its speed multiplier on a fixed interval.
type statShuffler struct{ NoAbility }

func (statShuffler) Tag() catalog.Ability { return catalog.AbilityStatShuffler }

func (statShuffler) OnStart(r *Runner) {
	r.sinceShuffle = 0
	r.shuffleMult = shuffleMin + r.rng.Float64()*shuffleSpan
}

func (statShuffler) OnTick(r *Runner, dt time.Duration) {
	r.sinceShuffle += dt
	if r.sinceShuffle < ShuffleInterval {
		return
	}
	r.sinceShuffle -= ShuffleInterval
	r.shuffleMult = shuffleMin + r.rng.Float64()*shuffleSpan
	r.note(CategoryAbility, fmt.Sprintf("%s rolls the dice: stats now x%.2f!", r.Name(), r.shuffleMult))
}

func (statShuffler) SpeedFactor(r *Runner) float64 {
	return r.shuffleMult
}

// crusher is too heavy for springs and flattens road works and mud.
type crusher struct{ NoAbility }

func (crusher) Tag() catalog.Ability { return catalog.AbilityCrusher }

func (crusher) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	switch t {
	case catalog.GimmickSpring:
		return blocked(r, "%s is too heavy, the spring doesn't budge!")
	case catalog.GimmickConstruction:
		return blocked(r, "%s flattened the road works!")
	case catalog.GimmickMud:
		return blocked(r, "%s crushed the mud flat!")
	}
	return Outcome{}, false
}

// hazardEater eats poop for a short sprint and a breather.
type hazardEater struct{ NoAbility }

func (hazardEater) Tag() catalog.Ability { return catalog.AbilityHazardEater }

func (hazardEater) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	if t != catalog.GimmickPoop {
		return Outcome{}, false
	}
	r.RestoreStamina(eaterStamina)
	return boosted(r, eaterBoost, eaterLength, "%s gobbled up the poop and sprints away!")
}

// lateralDash changes lanes three times faster and is briefly untouchable
// after landing.
type lateralDash struct{ NoAbility }

func (lateralDash) Tag() catalog.Ability { return catalog.AbilityLateralDash }

func (lateralDash) LateralFactor() float64 { return dashLateral }

func (lateralDash) OnArrive(r *Runner) {
	r.invincibleLeft = dashShield
	r.RestoreStamina(dashStamina)
}

func (lateralDash) Intercept(r *Runner, t catalog.GimmickType) (Outcome, bool) {
	if r.invincibleLeft > 0 && t.IsHazard() {
		return blocked(r, "%s slides past untouchable!")
	}
	return Outcome{}, false
}

// revengeStacker turns every hazard hit into a bigger comeback sprint.
type revengeStacker struct{ NoAbility }

func (revengeStacker) Tag() catalog.Ability { return catalog.AbilityRevengeStacker }

func (revengeStacker) AfterHit(r *Runner, e Effect) {
	if !e.Gimmick.IsHazard() {
		return
	}
	r.revengeStack++
	if r.state == StateStunned {
		r.revengePending = true
	}
}

func (revengeStacker) OnRecover(r *Runner) {
	if !r.revengePending {
		return
	}
	r.revengePending = false
	mult := 1 + float64(r.revengeStack)*revengeStep
	r.setBoost(mult, revengeLength)
	r.note(CategoryAbility, fmt.Sprintf("%s bounces back with a revenge dash (x%.1f)!", r.Name(), mult))
}
