package physics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role determines which ability a body performs each tick.
type Role int

const (
	RoleTank Role = iota
	RoleDealer
	RoleHealer
	RoleRangedDealer
	RoleRangedHealer
)

func (r Role) String() string {
	switch r {
	case RoleTank:
		return "tank"
	case RoleHealer:
		return "healer"
	case RoleRangedDealer:
		return "ranged_dealer"
	case RoleRangedHealer:
		return "ranged_healer"
	default:
		return "dealer"
	}
}

// ParseRole normalizes a raw role string. Unrecognized roles degrade to dealer.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tank":
		return RoleTank
	case "healer":
		return RoleHealer
	case "ranged_dealer":
		return RoleRangedDealer
	case "ranged_healer":
		return RoleRangedHealer
	default:
		return RoleDealer
	}
}

// MarshalJSON serializes Role as a string.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON deserializes Role from a string.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// Body is the physical and combat state of a single fighter. It is created
// once per match and mutated in place by World.Step until the match ends.
type Body struct {
	ID   int    `json:"id"`
	Team string `json:"team"`

	X, Y   float64 `json:"-"`
	VX, VY float64 `json:"-"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`

	Power      float64 `json:"power"`
	Role       Role    `json:"role"`
	ForwardDir float64 `json:"forward_dir"`

	MaxHP           float64 `json:"max_hp"`
	HP              float64 `json:"hp"`
	StaggerTimer    float64 `json:"stagger_timer"`
	LastDamage      float64 `json:"last_damage"`
	AbilityCooldown float64 `json:"ability_cooldown"`

	// IntStat and WisStat modulate ability range and cooldown. 10 is neutral.
	IntStat float64 `json:"int_stat"`
	WisStat float64 `json:"wis_stat"`
}

// BodyParams carries everything needed to construct a validated Body.
type BodyParams struct {
	ID              int
	Team            string
	X, Y            float64
	VX, VY          float64
	Radius          float64
	Mass            float64
	Power           float64
	Role            Role
	ForwardDir      float64
	MaxHP           float64
	HP              float64
	StaggerTimer    float64
	AbilityCooldown float64
	IntStat         float64
	WisStat         float64
}

// NewBody validates the parameters and returns a fighter body.
// Invalid input is rejected outright; constructor input is never clamped.
func NewBody(p BodyParams) (*Body, error) {
	if p.Radius <= 0 {
		return nil, fmt.Errorf("body %d: radius must be > 0", p.ID)
	}
	if p.Mass <= 0 {
		return nil, fmt.Errorf("body %d: mass must be > 0", p.ID)
	}
	if p.Power <= 0 {
		return nil, fmt.Errorf("body %d: power must be > 0", p.ID)
	}
	if p.MaxHP <= 0 {
		return nil, fmt.Errorf("body %d: max_hp must be > 0", p.ID)
	}
	if p.HP < 0 {
		return nil, fmt.Errorf("body %d: hp must be >= 0", p.ID)
	}
	if p.HP > p.MaxHP {
		return nil, fmt.Errorf("body %d: hp %.3f exceeds max_hp %.3f", p.ID, p.HP, p.MaxHP)
	}
	if p.StaggerTimer < 0 {
		return nil, fmt.Errorf("body %d: stagger_timer must be >= 0", p.ID)
	}
	if p.AbilityCooldown < 0 {
		return nil, fmt.Errorf("body %d: ability_cooldown must be >= 0", p.ID)
	}

	intStat := p.IntStat
	if intStat <= 0 {
		intStat = NeutralStat
	}
	wisStat := p.WisStat
	if wisStat <= 0 {
		wisStat = NeutralStat
	}

	return &Body{
		ID:              p.ID,
		Team:            normalizeTeam(p.Team),
		X:               p.X,
		Y:               p.Y,
		VX:              p.VX,
		VY:              p.VY,
		Radius:          p.Radius,
		Mass:            p.Mass,
		Power:           p.Power,
		Role:            p.Role,
		ForwardDir:      p.ForwardDir,
		MaxHP:           p.MaxHP,
		HP:              p.HP,
		StaggerTimer:    p.StaggerTimer,
		AbilityCooldown: p.AbilityCooldown,
		IntStat:         intStat,
		WisStat:         wisStat,
	}, nil
}

// NeutralStat is the auxiliary stat value at which ability range and
// cooldown match the tuning values exactly.
const NeutralStat = 10.0

// Alive reports whether the body still participates in combat.
func (b *Body) Alive() bool {
	return b.HP > 0
}

// ApplyDamage reduces hp, clamping at zero, and records the amount in
// LastDamage. All damage must flow through here so hp never leaves
// [0, MaxHP].
func (b *Body) ApplyDamage(amount float64) {
	if amount < 0 {
		amount = 0
	}
	b.HP -= amount
	if b.HP < 0 {
		b.HP = 0
	}
	if amount > b.LastDamage {
		b.LastDamage = amount
	}
}

// Heal raises hp, clamping at MaxHP.
func (b *Body) Heal(amount float64) {
	if amount < 0 {
		return
	}
	b.HP += amount
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
}

// RaiseStagger bumps the stagger timer to at least the given duration.
// Stagger refreshes rather than stacking.
func (b *Body) RaiseStagger(duration float64) {
	if duration > b.StaggerTimer {
		b.StaggerTimer = duration
	}
}

func normalizeTeam(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}
