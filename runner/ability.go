package runner

import (
	"time"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/course"
)

// Ability is the special rule a runner carries. The runner calls the hooks
// at fixed points; an implementation overrides only the ones it needs by
// embedding NoAbility.
type Ability interface {
	Tag() catalog.Ability

	// OnStart runs once when the race starts.
	OnStart(r *Runner)
	// OnTick runs at the start of every update while the runner races.
	OnTick(r *Runner, dt time.Duration)

	// OnContact runs on every gimmick contact before anything else and may
	// ask the manager to spawn a gimmick.
	OnContact(r *Runner, t catalog.GimmickType) *Spawn
	// Intercept may replace the stock effect entirely. When handled is
	// true the stock effect is skipped.
	Intercept(r *Runner, t catalog.GimmickType) (out Outcome, handled bool)
	// Tune adjusts the stock effect before it is applied.
	Tune(r *Runner, e *Effect)
	// AfterHit runs after a stock effect has been applied.
	AfterHit(r *Runner, e Effect)

	// SpeedFactor multiplies forward speed on top of boosts and slows.
	SpeedFactor(r *Runner) float64
	// LateralFactor multiplies lane change speed.
	LateralFactor() float64
	// OnArrive runs when a lane change completes.
	OnArrive(r *Runner)
	// OnRecover runs when a stun ends.
	OnRecover(r *Runner)
}

// BranchPlanner is implemented by abilities that decide branch turns
// themselves. decided false falls back to the intelligence roll.
type BranchPlanner interface {
	PlanTurn(r *Runner, b course.Branch, ahead []course.Gimmick) (turn, decided bool)
}

// AreaGuard is implemented by abilities that shield other runners near the
// holder from a gimmick type.
type AreaGuard interface {
	Guards(t catalog.GimmickType) bool
	Covers(holder, other *Runner) bool
}

// NoAbility is the ability of a plain horse and the base for the others.
type NoAbility struct{}

func (NoAbility) Tag() catalog.Ability { return catalog.AbilityNone }
func (NoAbility) OnStart(*Runner) {}
func (NoAbility) OnTick(*Runner, time.Duration) {}
func (NoAbility) OnContact(*Runner, catalog.GimmickType) *Spawn { return nil }
func (NoAbility) Intercept(*Runner, catalog.GimmickType) (Outcome, bool) { return Outcome{}, false }
func (NoAbility) Tune(*Runner, *Effect) {}
func (NoAbility) AfterHit(*Runner, Effect) {}
func (NoAbility) SpeedFactor(*Runner) float64 { return 1 }
func (NoAbility) LateralFactor() float64 { return 1 }
func (NoAbility) OnArrive(*Runner) {}
func (NoAbility) OnRecover(*Runner) {}

// AbilityFor returns the handler for a tag. Unknown tags get NoAbility.
func AbilityFor(tag catalog.Ability) Ability {
	switch tag {
	case catalog.AbilitySpeedOnGrass:
		return speedOnGrass{}
	case catalog.AbilityArmorBreaker:
		return armorBreaker{}
	case catalog.AbilityRoutePlanner:
		return routePlanner{}
	case catalog.AbilityDoubleJumper:
		return doubleJumper{}
	case catalog.AbilityChanceInverter:
		return chanceInverter{}
	case catalog.AbilityMudLover:
		return mudLover{}
	case catalog.AbilityGrassAbsorber:
		return grassAbsorber{}
	case catalog.AbilityHazardShield:
		return hazardShield{}
	case catalog.AbilityPhaseWalker:
		return phaseWalker{}
	case catalog.AbilityTrapSetter:
		return trapSetter{}
	case catalog.AbilityStatShuffler:
		return statShuffler{}
	case catalog.AbilityCrusher:
		return crusher{}
	case catalog.AbilityHazardEater:
		return hazardEater{}
	case catalog.AbilityLateralDash:
		return lateralDash{}
	case catalog.AbilityRevengeStacker:
		return revengeStacker{}
	}
	return NoAbility{}
}
