// Package scenario builds validated physics worlds from fighter classes,
// spawn specs and settings documents. It owns all stat-to-physical-parameter
// derivation so the physics core only ever sees fully resolved bodies.
package scenario

import (
	"math"

	"github.com/ballclash/ballclash-sim/internal/physics"
)

// Baseline stat value. A fighter with all stats at 10 derives the reference
// physical parameters (radius 28, mass 1, power 1, 100 hp, speed 250).
const baselineStat = 10

// FighterClass is a named archetype described by RPG stats in 1..20.
// Physical parameters are derived, never stored.
type FighterClass struct {
	Name        string       `json:"name"`
	Role        physics.Role `json:"role"`
	Description string       `json:"description"`

	Str int `json:"str"` // melee power
	Dex int `json:"dex"` // movement and attack tempo
	Int int `json:"int"` // ranged reach and recovery
	Vit int `json:"vit"` // bulk: hp, mass, radius
	Wis int `json:"wis"` // healing reach and recovery
}

func clampStat(s int) int {
	if s < 1 {
		return 1
	}
	if s > 20 {
		return 20
	}
	return s
}

// Power derives the combat-physics power multiplier from strength.
func (c FighterClass) Power() float64 {
	return float64(clampStat(c.Str)) / baselineStat
}

// Mass derives body mass from vitality.
func (c FighterClass) Mass() float64 {
	return float64(clampStat(c.Vit)) / baselineStat
}

// Radius derives the circle radius from vitality; area scales linearly
// with bulk, so the radius grows with its square root.
func (c FighterClass) Radius() float64 {
	return 28.0 * math.Sqrt(float64(clampStat(c.Vit))/baselineStat)
}

// MaxHP derives hit points from vitality.
func (c FighterClass) MaxHP() float64 {
	return float64(clampStat(c.Vit)) * 10.0
}

// Speed derives the initial horizontal speed from dexterity.
func (c FighterClass) Speed() float64 {
	return float64(clampStat(c.Dex)) * 25.0
}

// AbilityCooldown derives the starting cooldown for the class role:
// ranged attackers recover with dexterity, supporters with wisdom.
// Melee roles have no ability and start at zero.
func (c FighterClass) AbilityCooldown() float64 {
	switch c.Role {
	case physics.RoleRangedDealer:
		return 10.0 / float64(clampStat(c.Dex))
	case physics.RoleHealer, physics.RoleRangedHealer:
		return 12.0 / float64(clampStat(c.Wis))
	default:
		return 0
	}
}

// DefaultClasses returns the four stock archetypes.
func DefaultClasses() []FighterClass {
	return []FighterClass{
		{
			Name:        "dealer",
			Role:        physics.RoleDealer,
			Description: "melee attacker that trades bulk for hitting power",
			Str:         12, Dex: 10, Int: 6, Vit: 10, Wis: 4,
		},
		{
			Name:        "tank",
			Role:        physics.RoleTank,
			Description: "heavy frontliner that holds the line with mass and hp",
			Str:         8, Dex: 7, Int: 4, Vit: 18, Wis: 4,
		},
		{
			Name:        "healer",
			Role:        physics.RoleHealer,
			Description: "support unit that restores nearby allies",
			Str:         4, Dex: 8, Int: 5, Vit: 8, Wis: 12,
		},
		{
			Name:        "ranged dealer",
			Role:        physics.RoleRangedDealer,
			Description: "backline attacker that pokes from a distance",
			Str:         6, Dex: 9, Int: 10, Vit: 7, Wis: 4,
		},
	}
}
