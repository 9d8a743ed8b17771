package physics

import "math"

// Ability multipliers relative to the raw tuning values.
const (
	healerRangeFactor      = 0.7
	healerAmountFactor     = 0.8
	rangedHealAmountFactor = 1.1
	pokeRangeFactor        = 0.9
	pokeForceFactor        = 0.58
	rangedPowerFloor       = 0.6
	knockbackTiltBias      = 0.12
	knockbackLiftBias      = 0.18
	rangedStaggerBonus     = 0.12
)

// statRangeScale converts an auxiliary stat into an ability-range multiplier.
// NeutralStat maps to 1 so default bodies use the tuning ranges unchanged.
func statRangeScale(stat float64) float64 {
	return clamp(stat/NeutralStat, 0.25, 2.5)
}

// statCooldownScale converts an auxiliary stat into a cooldown multiplier:
// higher stats recover faster. NeutralStat maps to 1.
func statCooldownScale(stat float64) float64 {
	return clamp(NeutralStat/math.Max(1, stat), 0.4, 4.0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// applyRoleActions runs each living body's role ability if its cooldown has
// elapsed. Abilities that find no eligible target are no-ops and leave the
// cooldown untouched, so the body retries next tick.
func (w *World) applyRoleActions() {
	t := w.tuning
	for _, actor := range w.bodies {
		if !actor.Alive() || actor.AbilityCooldown > 0 {
			continue
		}

		switch actor.Role {
		case RoleRangedDealer:
			attackRange := t.RangedAttackRange * statRangeScale(actor.IntStat)
			target := w.closestEnemy(actor, attackRange)
			if target == nil {
				continue
			}
			w.applyRangedKnockback(actor, target, t.RangedKnockbackForce, t.RangedDamage)
			actor.AbilityCooldown = t.RangedAttackCooldown * statCooldownScale(actor.IntStat)

		case RoleHealer:
			healRange := t.HealerRange * healerRangeFactor * statRangeScale(actor.WisStat)
			target := w.weakestAlly(actor, healRange)
			if target == nil {
				continue
			}
			target.Heal(t.HealerAmount * healerAmountFactor)
			actor.AbilityCooldown = t.HealerCooldown * statCooldownScale(actor.WisStat)

		case RoleRangedHealer:
			// Tries both a heal and a zero-damage poke; the cooldown starts
			// only if at least one sub-action found a target.
			acted := false
			if healTarget := w.weakestAlly(actor, t.HealerRange*statRangeScale(actor.WisStat)); healTarget != nil {
				healTarget.Heal(t.HealerAmount * rangedHealAmountFactor)
				acted = true
			}
			pokeRange := t.RangedAttackRange * pokeRangeFactor * statRangeScale(actor.IntStat)
			if pushTarget := w.closestEnemy(actor, pokeRange); pushTarget != nil {
				w.applyRangedKnockback(actor, pushTarget, t.RangedKnockbackForce*pokeForceFactor, 0)
				acted = true
			}
			if acted {
				actor.AbilityCooldown = t.HealerCooldown * statCooldownScale(actor.WisStat)
			}
		}
	}
}

// closestEnemy returns the nearest living opposite-team body within maxRange,
// or nil. Range boundary is inclusive; spawn order breaks exact ties.
func (w *World) closestEnemy(actor *Body, maxRange float64) *Body {
	var closest *Body
	closestDistSq := maxRange * maxRange
	for _, other := range w.bodies {
		if !other.Alive() || other.Team == actor.Team {
			continue
		}
		dx := other.X - actor.X
		dy := other.Y - actor.Y
		distSq := dx*dx + dy*dy
		if distSq <= closestDistSq {
			closestDistSq = distSq
			closest = other
		}
	}
	return closest
}

// weakestAlly returns the same-team body with the lowest hp ratio within
// maxRange, considering only bodies below full health. Returns nil when
// every ally in range is topped off.
func (w *World) weakestAlly(actor *Body, maxRange float64) *Body {
	var weakest *Body
	weakestRatio := 1.1
	maxRangeSq := maxRange * maxRange
	for _, other := range w.bodies {
		if !other.Alive() || other.Team != actor.Team {
			continue
		}
		dx := other.X - actor.X
		dy := other.Y - actor.Y
		if dx*dx+dy*dy > maxRangeSq {
			continue
		}
		ratio := other.HP / other.MaxHP
		if ratio < weakestRatio && other.HP < other.MaxHP {
			weakestRatio = ratio
			weakest = other
		}
	}
	return weakest
}

// applyRangedKnockback shoves the target along the actor-to-target line with
// a slight lift, staggers it, and optionally deals damage scaled by the
// actor's power. Invincible teams take the shove but no damage.
func (w *World) applyRangedKnockback(actor, target *Body, force, damage float64) {
	if !target.Alive() {
		return
	}
	dx := target.X - actor.X
	dy := target.Y - actor.Y
	dist := math.Hypot(dx, dy)

	var nx, ny float64
	if dist <= tangentEpsilon {
		nx = actor.ForwardDir
		if math.Abs(nx) <= powerEpsilon {
			nx = 1.0
		}
		ny = 0
	} else {
		nx = dx / dist
		ny = dy / dist
	}

	kick := force / math.Max(powerEpsilon, target.Mass)
	target.VX += nx * kick
	target.VY += (ny*knockbackTiltBias - knockbackLiftBias) * kick
	target.RaiseStagger(math.Min(w.tuning.MaxStagger, w.tuning.StaggerBase+rangedStaggerBonus))

	if damage > 0 && !w.IsTeamInvincible(target.Team) {
		target.ApplyDamage(damage * math.Max(rangedPowerFloor, actor.Power))
	}
}
