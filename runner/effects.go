package runner

import (
	"fmt"
	"time"

	"github.com/padraicbc/amidarace/catalog"
)

// Effect is a gimmick effect after power scaling, ready for an ability to
// tune before it is applied.
type Effect struct {
	Gimmick        catalog.GimmickType
	Stun           time.Duration
	LaneShift      int
	SpeedModifier  float64
	Duration       time.Duration
	StaminaRestore float64

	// Message replaces the stock narration when set.
	Message  string
	Category Category
}

// Spawn asks the race manager to place a gimmick Behind units behind the
// runner, in its current lane.
type Spawn struct {
	Type   catalog.GimmickType
	Behind float64
}

// Outcome is what happened when a runner touched a gimmick.
type Outcome struct {
	Blocked  bool
	Message  string
	Category Category
	Spawn    *Spawn
}

// ApplyGimmick resolves contact with a gimmick of type t. The ability gets
// first refusal: it may block or replace the effect outright, otherwise it
// may tune the stock effect before it lands. The runner does not remember
// contacts; de-duplication is the caller's job.
func (r *Runner) ApplyGimmick(t catalog.GimmickType) Outcome {
	if r.state == StateFinished {
		return Outcome{Blocked: true}
	}
	spec, ok := catalog.Gimmick(t)
	if !ok {
		return Outcome{}
	}

	spawn := r.ability.OnContact(r, t)

	if out, handled := r.ability.Intercept(r, t); handled {
		out.Spawn = spawn
		if out.Category == "" {
			out.Category = CategoryAbility
		}
		return out
	}

	eff := r.stockEffect(spec)
	r.ability.Tune(r, &eff)
	out := r.apply(eff)
	r.ability.AfterHit(r, eff)
	out.Spawn = spawn
	return out
}

// stockEffect scales the catalog effect by the runner's power.
func (r *Runner) stockEffect(spec catalog.GimmickSpec) Effect {
	e := spec.Effect
	eff := Effect{
		Gimmick:        spec.Type,
		Stun:           e.Stun,
		LaneShift:      e.LaneShift,
		SpeedModifier:  e.SpeedModifier,
		Duration:       e.Duration,
		StaminaRestore: e.StaminaRestore,
		Category:       CategoryGimmick,
	}
	if eff.Stun > 0 {
		eff.Stun = scaleByPower(eff.Stun, r.profile.Stats.Power)
	}
	return eff
}

func scaleByPower(d time.Duration, power float64) time.Duration {
	if power <= 0 {
		return d
	}
	return time.Duration(float64(d) / power)
}

func (r *Runner) apply(e Effect) Outcome {
	moved := false
	switch {
	case e.Stun > 0:
		if r.stun(e.Stun) && e.LaneShift != 0 {
			r.pendingShift = r.randomDirection() * e.LaneShift
		}
	case e.LaneShift != 0:
		target := r.clampLane(r.lane + r.randomDirection()*e.LaneShift)
		moved = r.ChangeLane(target)
	}
	if e.SpeedModifier > 0 && e.Duration > 0 {
		r.setBoost(e.SpeedModifier, e.Duration)
	}
	r.RestoreStamina(e.StaminaRestore)

	msg := e.Message
	if msg == "" {
		msg = stockMessage(r.Name(), e.Gimmick, moved)
	}
	cat := e.Category
	if cat == "" {
		cat = CategoryGimmick
	}
	return Outcome{Message: msg, Category: cat}
}

func stockMessage(name string, t catalog.GimmickType, moved bool) string {
	switch t {
	case catalog.GimmickSpring:
		if !moved {
			return fmt.Sprintf("%s hit a spring but stayed in lane!", name)
		}
		return fmt.Sprintf("%s bounced off a spring!", name)
	case catalog.GimmickConstruction:
		return fmt.Sprintf("%s crashed into the road works!", name)
	case catalog.GimmickPoop:
		return fmt.Sprintf("%s stepped in poop!", name)
	case catalog.GimmickMud:
		return fmt.Sprintf("%s waded into the mud!", name)
	case catalog.GimmickGrass:
		return fmt.Sprintf("%s sped up on the grass!", name)
	case catalog.GimmickCarrot:
		return fmt.Sprintf("%s munched a carrot and got a second wind!", name)
	}
	return fmt.Sprintf("%s touched a %s.", name, t)
}
