package physics

import "math"

// incomingStrength is how hard attacker hits defender on first contact:
// the attacker/defender mass ratio scaled and shaped by the power ratio,
// capped so extreme stat gaps cannot produce runaway kicks. Computed per
// direction, so an exchange is asymmetric.
func (w *World) incomingStrength(attacker, defender *Body) float64 {
	t := w.tuning
	powerRatio := math.Max(powerEpsilon, attacker.Power) / math.Max(powerEpsilon, defender.Power)
	massRatio := attacker.Mass / math.Max(powerEpsilon, defender.Mass)
	scaled := t.MassPowerImpactScale * massRatio
	scaled *= math.Pow(powerRatio, t.PowerRatioExponent)
	return math.Min(t.ImpactSpeedCap, scaled)
}

// applyImpactEffects is the game-layer consequence of a new contact between
// a and b: horizontal recoil away from the opponent, an upward launch,
// damage, and stagger. Each side's share is driven by the opposing side's
// incoming strength, so the weaker fighter loses the exchange.
func (w *World) applyImpactEffects(a, b *Body, nx float64) {
	t := w.tuning
	incomingA := w.incomingStrength(b, a)
	incomingB := w.incomingStrength(a, b)

	recoilA := t.MinRecoilSpeed + incomingA*t.RecoilScale
	recoilB := t.MinRecoilSpeed + incomingB*t.RecoilScale

	launchA := math.Min(t.MaxLaunchSpeed, (t.MinLaunchSpeed+incomingA*t.LaunchScale)*t.LaunchHeightScale)
	launchB := math.Min(t.MaxLaunchSpeed, (t.MinLaunchSpeed+incomingB*t.LaunchScale)*t.LaunchHeightScale)

	a.VX -= nx * (recoilA / a.Mass)
	b.VX += nx * (recoilB / b.Mass)
	// Negative y is up.
	a.VY -= launchA / a.Mass
	b.VY -= launchB / b.Mass

	damageA := t.DamageBase + incomingA*t.DamageScale
	damageB := t.DamageBase + incomingB*t.DamageScale
	if !w.IsTeamInvincible(a.Team) {
		a.ApplyDamage(damageA)
	}
	if !w.IsTeamInvincible(b.Team) {
		b.ApplyDamage(damageB)
	}

	a.RaiseStagger(math.Min(t.MaxStagger, t.StaggerBase+incomingA*t.StaggerScale))
	b.RaiseStagger(math.Min(t.MaxStagger, t.StaggerBase+incomingB*t.StaggerScale))
}
