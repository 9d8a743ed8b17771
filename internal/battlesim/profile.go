// Package battlesim sweeps fighter profile matchups through the physics
// engine and scores each scenario for combat feel: collision tempo, damage
// rate, airtime and lead swings. It is the balancing harness on top of the
// simulation core.
package battlesim

import (
	"math"
	"math/rand"

	"github.com/ballclash/ballclash-sim/internal/scenario"
)

// Profile multiplies a team's resolved physical parameters. A scale of 1.0
// in every slot is the unmodified fighter.
type Profile struct {
	Name        string  `json:"name"`
	RadiusScale float64 `json:"radius_scale"`
	MassScale   float64 `json:"mass_scale"`
	PowerScale  float64 `json:"power_scale"`
	HPScale     float64 `json:"hp_scale"`
	SpeedScale  float64 `json:"speed_scale"`
}

// DefaultProfiles returns the stock matchup pool.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "balanced", RadiusScale: 1.00, MassScale: 1.00, PowerScale: 1.00, HPScale: 1.00, SpeedScale: 1.00},
		{Name: "duelist", RadiusScale: 0.90, MassScale: 0.95, PowerScale: 1.15, HPScale: 1.00, SpeedScale: 1.30},
		{Name: "striker", RadiusScale: 0.95, MassScale: 0.88, PowerScale: 1.28, HPScale: 0.88, SpeedScale: 1.18},
		{Name: "bruiser", RadiusScale: 1.10, MassScale: 1.38, PowerScale: 1.14, HPScale: 1.42, SpeedScale: 0.82},
		{Name: "berserker", RadiusScale: 1.00, MassScale: 0.84, PowerScale: 1.46, HPScale: 0.74, SpeedScale: 1.12},
		{Name: "juggernaut", RadiusScale: 1.20, MassScale: 1.72, PowerScale: 1.08, HPScale: 1.84, SpeedScale: 0.72},
	}
}

// ProfileFromClass expresses a fighter class as multipliers against the
// baseline archetype (all stats at 10), optionally scaled further.
func ProfileFromClass(class scenario.FighterClass, scaleModifier float64) Profile {
	const (
		baseRadius = 28.0
		baseMass   = 1.0
		basePower  = 1.0
		baseHP     = 100.0
		baseSpeed  = 250.0
	)
	return Profile{
		Name:        class.Name,
		RadiusScale: class.Radius() / baseRadius * scaleModifier,
		MassScale:   class.Mass() / baseMass * scaleModifier,
		PowerScale:  class.Power() / basePower * scaleModifier,
		HPScale:     class.MaxHP() / baseHP * scaleModifier,
		SpeedScale:  class.Speed() / baseSpeed * scaleModifier,
	}
}

// RandomProfile draws multipliers from the tuned sampling ranges.
func RandomProfile(rng *rand.Rand, name string) Profile {
	return Profile{
		Name:        name,
		RadiusScale: uniform(rng, 0.80, 1.25),
		MassScale:   uniform(rng, 0.72, 1.85),
		PowerScale:  uniform(rng, 0.72, 1.75),
		HPScale:     uniform(rng, 0.72, 1.85),
		SpeedScale:  uniform(rng, 0.72, 1.40),
	}
}

// apply shapes a resolved spec by the profile's multipliers, flooring each
// parameter so no fighter degenerates below simulable size, and jitters the
// launch speed.
func (p Profile) apply(spec scenario.ResolvedSpec, rng *rand.Rand, speedJitter float64) scenario.ResolvedSpec {
	out := spec
	out.Radius = math.Max(6.0, spec.Radius*p.RadiusScale)
	out.Mass = math.Max(0.2, spec.Mass*p.MassScale)
	out.Power = math.Max(0.1, spec.Power*p.PowerScale)
	out.MaxHP = math.Max(1.0, spec.MaxHP*p.HPScale)
	out.HP = math.Min(out.MaxHP, math.Max(0.0, spec.HP*p.HPScale))

	direction := 1.0
	if spec.VX < 0 {
		direction = -1.0
	}
	scaled := math.Abs(spec.VX)*p.SpeedScale + uniform(rng, -speedJitter, speedJitter)
	out.VX = direction * math.Max(8.0, scaled)
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
