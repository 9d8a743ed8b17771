package physics

import "fmt"

// Tuning is the bundle of coefficients governing forces, collision response,
// impact effects and abilities. A World validates its tuning on construction
// and on every replacement, so a held Tuning is always internally consistent.
type Tuning struct {
	Gravity       float64 `json:"gravity"`
	ApproachForce float64 `json:"approach_force"`

	Restitution        float64 `json:"restitution"`
	WallRestitution    float64 `json:"wall_restitution"`
	LinearDamping      float64 `json:"linear_damping"`
	Friction           float64 `json:"friction"`
	WallFriction       float64 `json:"wall_friction"`
	GroundFriction     float64 `json:"ground_friction"`
	GroundSnapSpeed    float64 `json:"ground_snap_speed"`
	CollisionBoost     float64 `json:"collision_boost"`
	SolverPasses       int     `json:"solver_passes"`
	PositionCorrection float64 `json:"position_correction"`

	MassPowerImpactScale float64 `json:"mass_power_impact_scale"`
	PowerRatioExponent   float64 `json:"power_ratio_exponent"`
	ImpactSpeedCap       float64 `json:"impact_speed_cap"`
	MinRecoilSpeed       float64 `json:"min_recoil_speed"`
	RecoilScale          float64 `json:"recoil_scale"`
	MinLaunchSpeed       float64 `json:"min_launch_speed"`
	LaunchScale          float64 `json:"launch_scale"`
	LaunchHeightScale    float64 `json:"launch_height_scale"`
	MaxLaunchSpeed       float64 `json:"max_launch_speed"`

	DamageBase            float64 `json:"damage_base"`
	DamageScale           float64 `json:"damage_scale"`
	StaggerBase           float64 `json:"stagger_base"`
	StaggerScale          float64 `json:"stagger_scale"`
	MaxStagger            float64 `json:"max_stagger"`
	StaggerDriveMultiplier float64 `json:"stagger_drive_multiplier"`

	RangedAttackCooldown float64 `json:"ranged_attack_cooldown"`
	RangedAttackRange    float64 `json:"ranged_attack_range"`
	RangedKnockbackForce float64 `json:"ranged_knockback_force"`
	RangedDamage         float64 `json:"ranged_damage"`
	HealerCooldown       float64 `json:"healer_cooldown"`
	HealerRange          float64 `json:"healer_range"`
	HealerAmount         float64 `json:"healer_amount"`
}

// DefaultTuning returns the baseline coefficients.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:       900.0,
		ApproachForce: 1150.0,

		Restitution:        0.68,
		WallRestitution:    0.55,
		LinearDamping:      0.16,
		Friction:           0.20,
		WallFriction:       0.08,
		GroundFriction:     0.30,
		GroundSnapSpeed:    42.0,
		CollisionBoost:     1.0,
		SolverPasses:       3,
		PositionCorrection: 0.80,

		MassPowerImpactScale: 120.0,
		PowerRatioExponent:   0.50,
		ImpactSpeedCap:       1400.0,
		MinRecoilSpeed:       45.0,
		RecoilScale:          0.62,
		MinLaunchSpeed:       90.0,
		LaunchScale:          0.45,
		LaunchHeightScale:    1.0,
		MaxLaunchSpeed:       820.0,

		DamageBase:             1.5,
		DamageScale:            0.028,
		StaggerBase:            0.06,
		StaggerScale:           0.0012,
		MaxStagger:             1.20,
		StaggerDriveMultiplier: 0.0,

		RangedAttackCooldown: 1.00,
		RangedAttackRange:    520.0,
		RangedKnockbackForce: 240.0,
		RangedDamage:         5.5,
		HealerCooldown:       1.20,
		HealerRange:          360.0,
		HealerAmount:         10.0,
	}
}

// Validate checks every coefficient against its hard bound. The first
// violation is reported; a Tuning that fails validation must not be applied.
func (t Tuning) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"restitution", t.Restitution},
		{"wall_restitution", t.WallRestitution},
		{"linear_damping", t.LinearDamping},
		{"friction", t.Friction},
		{"wall_friction", t.WallFriction},
		{"ground_friction", t.GroundFriction},
		{"ground_snap_speed", t.GroundSnapSpeed},
		{"power_ratio_exponent", t.PowerRatioExponent},
		{"min_recoil_speed", t.MinRecoilSpeed},
		{"recoil_scale", t.RecoilScale},
		{"min_launch_speed", t.MinLaunchSpeed},
		{"launch_scale", t.LaunchScale},
		{"damage_base", t.DamageBase},
		{"damage_scale", t.DamageScale},
		{"stagger_base", t.StaggerBase},
		{"stagger_scale", t.StaggerScale},
		{"max_stagger", t.MaxStagger},
		{"stagger_drive_multiplier", t.StaggerDriveMultiplier},
		{"ranged_knockback_force", t.RangedKnockbackForce},
		{"ranged_damage", t.RangedDamage},
		{"healer_amount", t.HealerAmount},
	}
	for _, c := range nonNegative {
		if c.value < 0 {
			return fmt.Errorf("tuning: %s must be >= 0, got %g", c.name, c.value)
		}
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"collision_boost", t.CollisionBoost},
		{"mass_power_impact_scale", t.MassPowerImpactScale},
		{"impact_speed_cap", t.ImpactSpeedCap},
		{"launch_height_scale", t.LaunchHeightScale},
		{"max_launch_speed", t.MaxLaunchSpeed},
		{"ranged_attack_cooldown", t.RangedAttackCooldown},
		{"ranged_attack_range", t.RangedAttackRange},
		{"healer_cooldown", t.HealerCooldown},
		{"healer_range", t.HealerRange},
	}
	for _, c := range positive {
		if c.value <= 0 {
			return fmt.Errorf("tuning: %s must be > 0, got %g", c.name, c.value)
		}
	}

	if t.SolverPasses <= 0 {
		return fmt.Errorf("tuning: solver_passes must be > 0, got %d", t.SolverPasses)
	}
	if t.PositionCorrection < 0 || t.PositionCorrection > 1 {
		return fmt.Errorf("tuning: position_correction must be in [0, 1], got %g", t.PositionCorrection)
	}
	return nil
}
