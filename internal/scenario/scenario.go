package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/ballclash/ballclash-sim/internal/physics"
)

// Spacing between team-mates in a spawn line, in radii.
const slotSpacing = 2.3

// BodySpec is a raw spawn description, usually decoded from a settings
// document. Optional fields are pointers; nil means "derive a default".
type BodySpec struct {
	Team string `json:"team"`
	Role string `json:"role"`

	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	VX *float64 `json:"vx,omitempty"`
	VY float64  `json:"vy,omitempty"`
	HP *float64 `json:"hp,omitempty"`

	// RPG stats in 1..20, baseline 10. Zero means unset and defaults to 10.
	Str int `json:"str_stat,omitempty"`
	Dex int `json:"dex_stat,omitempty"`
	Int int `json:"int_stat,omitempty"`
	Vit int `json:"vit_stat,omitempty"`
	Wis int `json:"wis_stat,omitempty"`

	ForwardDir      *float64 `json:"forward_dir,omitempty"`
	AbilityCooldown *float64 `json:"ability_cooldown,omitempty"`
}

// ResolvedSpec is a BodySpec with every default filled in and every physical
// parameter derived from stats. It still has no position; placement happens
// in BuildWorld.
type ResolvedSpec struct {
	Team string
	Role physics.Role

	Power  float64
	Mass   float64
	Radius float64
	MaxHP  float64
	HP     float64

	X, Y   *float64
	VX, VY float64

	ForwardDir      float64
	AbilityCooldown float64
	IntStat         float64
	WisStat         float64
}

func statOrBaseline(s int) int {
	if s <= 0 {
		return baselineStat
	}
	return clampStat(s)
}

// Resolve normalizes the raw spec: team naming, role parsing, stat-derived
// physical parameters, and team-based movement defaults.
func (s BodySpec) Resolve(leftSpeed, rightSpeed float64) ResolvedSpec {
	team := strings.ToLower(strings.TrimSpace(s.Team))
	if team == "" {
		team = "left"
	}
	role := physics.ParseRole(s.Role)

	strStat := statOrBaseline(s.Str)
	dexStat := statOrBaseline(s.Dex)
	intStat := statOrBaseline(s.Int)
	vitStat := statOrBaseline(s.Vit)
	wisStat := statOrBaseline(s.Wis)

	class := FighterClass{Role: role, Str: strStat, Dex: dexStat, Int: intStat, Vit: vitStat, Wis: wisStat}

	maxHP := class.MaxHP()
	hp := maxHP
	if s.HP != nil {
		hp = math.Min(math.Max(0, *s.HP), maxHP)
	}

	forward := defaultForward(team)
	if s.ForwardDir != nil {
		forward = *s.ForwardDir
	}

	vx := defaultSpeed(team, class.Speed(), class.Speed())
	if s.VX != nil {
		vx = *s.VX
	} else if leftSpeed > 0 || rightSpeed > 0 {
		vx = defaultSpeed(team, leftSpeed, rightSpeed)
	}

	cooldown := class.AbilityCooldown()
	if s.AbilityCooldown != nil && *s.AbilityCooldown >= 0 {
		cooldown = *s.AbilityCooldown
	}

	return ResolvedSpec{
		Team:            team,
		Role:            role,
		Power:           class.Power(),
		Mass:            class.Mass(),
		Radius:          class.Radius(),
		MaxHP:           maxHP,
		HP:              hp,
		X:               s.X,
		Y:               s.Y,
		VX:              vx,
		VY:              s.VY,
		ForwardDir:      forward,
		AbilityCooldown: cooldown,
		IntStat:         float64(intStat),
		WisStat:         float64(wisStat),
	}
}

func defaultForward(team string) float64 {
	switch team {
	case "left":
		return 1.0
	case "right":
		return -1.0
	default:
		return 0
	}
}

func defaultSpeed(team string, leftSpeed, rightSpeed float64) float64 {
	switch team {
	case "left":
		return math.Abs(leftSpeed)
	case "right":
		return -math.Abs(rightSpeed)
	default:
		return 0
	}
}

// BuildConfig describes a settings-driven world assembly.
type BuildConfig struct {
	Width, Height   float64
	SideMargin      float64
	Tuning          physics.Tuning
	Specs           []BodySpec
	InvincibleTeams []string

	// Team default launch speeds, used when a spec has no explicit vx.
	LeftSpeed  float64
	RightSpeed float64
}

// BuildWorld resolves every spec, assigns slot positions per team (left
// lines up from the left margin, right from the right), and constructs the
// world. Spec order determines body ids.
func BuildWorld(cfg BuildConfig) (*physics.World, error) {
	resolved := make([]ResolvedSpec, len(cfg.Specs))
	for i, raw := range cfg.Specs {
		resolved[i] = raw.Resolve(cfg.LeftSpeed, cfg.RightSpeed)
	}
	return BuildResolvedWorld(cfg.Width, cfg.Height, cfg.SideMargin, cfg.Tuning, resolved, cfg.InvincibleTeams)
}

// BuildResolvedWorld places fully resolved specs into an arena. Sweeps use
// it directly after shaping specs with profile multipliers.
func BuildResolvedWorld(width, height, sideMargin float64, tuning physics.Tuning, specs []ResolvedSpec, invincibleTeams []string) (*physics.World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scenario: world size must be > 0, got %gx%g", width, height)
	}
	if sideMargin < 0 {
		return nil, fmt.Errorf("scenario: side_margin must be >= 0, got %g", sideMargin)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("scenario: at least one body spec is required")
	}

	teamSlots := map[string]int{}
	bodies := make([]*physics.Body, 0, len(specs))
	for idx, spec := range specs {
		slot := teamSlots[spec.Team]
		teamSlots[spec.Team] = slot + 1
		spacing := spec.Radius * slotSpacing

		var x float64
		switch {
		case spec.X != nil:
			x = *spec.X
		case spec.Team == "left":
			x = sideMargin + spec.Radius + float64(slot)*spacing
		case spec.Team == "right":
			x = width - sideMargin - spec.Radius - float64(slot)*spacing
		default:
			x = width*0.5 + (float64(slot)-0.5)*spacing
		}

		y := height - spec.Radius
		if spec.Y != nil {
			y = *spec.Y
		}

		x = clampRange(x, spec.Radius, width-spec.Radius)
		y = clampRange(y, spec.Radius, height-spec.Radius)

		body, err := physics.NewBody(physics.BodyParams{
			ID:              idx,
			Team:            spec.Team,
			X:               x,
			Y:               y,
			VX:              spec.VX,
			VY:              spec.VY,
			Radius:          spec.Radius,
			Mass:            spec.Mass,
			Power:           spec.Power,
			Role:            spec.Role,
			ForwardDir:      spec.ForwardDir,
			MaxHP:           spec.MaxHP,
			HP:              spec.HP,
			AbilityCooldown: spec.AbilityCooldown,
			IntStat:         spec.IntStat,
			WisStat:         spec.WisStat,
		})
		if err != nil {
			return nil, fmt.Errorf("scenario: spec %d: %w", idx, err)
		}
		bodies = append(bodies, body)
	}

	return physics.NewWorld(width, height, bodies, tuning, invincibleTeams)
}

// DuelConfig spawns two mirrored lines of identical fighters on the floor.
type DuelConfig struct {
	Width, Height float64
	SideMargin    float64
	BallsPerSide  int

	LeftRadius, RightRadius float64
	LeftMass, RightMass     float64
	LeftPower, RightPower   float64
	LeftHP, RightHP         float64
	LeftSpeed, RightSpeed   float64

	LeftInvincible  bool
	RightInvincible bool

	Tuning physics.Tuning
}

// DefaultDuelConfig returns the stock one-on-one arrangement.
func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Width:        1400,
		Height:       520,
		SideMargin:   120,
		BallsPerSide: 1,
		LeftRadius:   32, RightRadius: 32,
		LeftMass: 1.0, RightMass: 1.2,
		LeftPower: 1.0, RightPower: 1.6,
		LeftHP: 100, RightHP: 100,
		LeftSpeed: 260, RightSpeed: 210,
		Tuning: physics.DefaultTuning(),
	}
}

// DuelWorld builds a mirrored duel scenario.
func DuelWorld(cfg DuelConfig) (*physics.World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("scenario: world size must be > 0, got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.SideMargin < 0 {
		return nil, fmt.Errorf("scenario: side_margin must be >= 0, got %g", cfg.SideMargin)
	}
	if cfg.BallsPerSide <= 0 {
		return nil, fmt.Errorf("scenario: balls_per_side must be > 0, got %d", cfg.BallsPerSide)
	}

	leftStartX := cfg.SideMargin + cfg.LeftRadius
	rightStartX := cfg.Width - cfg.SideMargin - cfg.RightRadius

	bodies := make([]*physics.Body, 0, cfg.BallsPerSide*2)
	for idx := 0; idx < cfg.BallsPerSide; idx++ {
		leftX := clampRange(leftStartX+float64(idx)*cfg.LeftRadius*slotSpacing, cfg.LeftRadius, cfg.Width-cfg.LeftRadius)
		rightX := clampRange(rightStartX-float64(idx)*cfg.RightRadius*slotSpacing, cfg.RightRadius, cfg.Width-cfg.RightRadius)

		left, err := physics.NewBody(physics.BodyParams{
			ID:         len(bodies),
			Team:       "left",
			X:          leftX,
			Y:          cfg.Height - cfg.LeftRadius,
			VX:         math.Abs(cfg.LeftSpeed),
			Radius:     cfg.LeftRadius,
			Mass:       cfg.LeftMass,
			Power:      cfg.LeftPower,
			ForwardDir: 1,
			MaxHP:      math.Max(1, cfg.LeftHP),
			HP:         math.Min(math.Max(0, cfg.LeftHP), math.Max(1, cfg.LeftHP)),
		})
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, left)

		right, err := physics.NewBody(physics.BodyParams{
			ID:         len(bodies),
			Team:       "right",
			X:          rightX,
			Y:          cfg.Height - cfg.RightRadius,
			VX:         -math.Abs(cfg.RightSpeed),
			Radius:     cfg.RightRadius,
			Mass:       cfg.RightMass,
			Power:      cfg.RightPower,
			ForwardDir: -1,
			MaxHP:      math.Max(1, cfg.RightHP),
			HP:         math.Min(math.Max(0, cfg.RightHP), math.Max(1, cfg.RightHP)),
		})
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, right)
	}

	var invincible []string
	if cfg.LeftInvincible {
		invincible = append(invincible, "left")
	}
	if cfg.RightInvincible {
		invincible = append(invincible, "right")
	}

	return physics.NewWorld(cfg.Width, cfg.Height, bodies, cfg.Tuning, invincible)
}

// ClashConfig spawns two jittered grids of fighters facing the center.
type ClashConfig struct {
	Width, Height float64
	PlayerCount   int
	MonsterCount  int
	Radius        float64
	PlayerMass    float64
	MonsterMass   float64
	SpawnJitter   float64
	Tuning        physics.Tuning
}

// DefaultClashConfig returns the stock eight-versus-eight brawl.
func DefaultClashConfig() ClashConfig {
	return ClashConfig{
		Width:        960,
		Height:       620,
		PlayerCount:  8,
		MonsterCount: 8,
		Radius:       16,
		PlayerMass:   1.0,
		MonsterMass:  1.2,
		SpawnJitter:  120,
		Tuning:       physics.DefaultTuning(),
	}
}

// ClashWorld builds a team brawl. Spawn jitter draws from the caller-owned
// random source, so equal seeds reproduce the exact same layout.
func ClashWorld(cfg ClashConfig, rng *rand.Rand) (*physics.World, error) {
	if rng == nil {
		return nil, fmt.Errorf("scenario: rng must not be nil")
	}
	if cfg.PlayerCount <= 0 || cfg.MonsterCount <= 0 {
		return nil, fmt.Errorf("scenario: player_count and monster_count must be > 0")
	}
	if cfg.Radius <= 0 {
		return nil, fmt.Errorf("scenario: radius must be > 0, got %g", cfg.Radius)
	}
	if cfg.PlayerMass <= 0 || cfg.MonsterMass <= 0 {
		return nil, fmt.Errorf("scenario: mass must be > 0")
	}
	if cfg.SpawnJitter < 0 {
		return nil, fmt.Errorf("scenario: spawn_jitter must be >= 0, got %g", cfg.SpawnJitter)
	}

	bodies, err := spawnTeam(spawnTeamConfig{
		team:         "player",
		count:        cfg.PlayerCount,
		anchorX:      cfg.Width * 0.22,
		anchorY:      cfg.Height * 0.22,
		towardCenter: 1,
		radius:       cfg.Radius,
		mass:         cfg.PlayerMass,
		spawnJitter:  cfg.SpawnJitter,
		nextID:       0,
		width:        cfg.Width,
		height:       cfg.Height,
	}, rng)
	if err != nil {
		return nil, err
	}

	monsters, err := spawnTeam(spawnTeamConfig{
		team:         "monster",
		count:        cfg.MonsterCount,
		anchorX:      cfg.Width * 0.78,
		anchorY:      cfg.Height * 0.22,
		towardCenter: -1,
		radius:       cfg.Radius,
		mass:         cfg.MonsterMass,
		spawnJitter:  cfg.SpawnJitter,
		nextID:       len(bodies),
		width:        cfg.Width,
		height:       cfg.Height,
	}, rng)
	if err != nil {
		return nil, err
	}
	bodies = append(bodies, monsters...)

	return physics.NewWorld(cfg.Width, cfg.Height, bodies, cfg.Tuning, nil)
}

type spawnTeamConfig struct {
	team          string
	count         int
	anchorX       float64
	anchorY       float64
	towardCenter  float64
	radius        float64
	mass          float64
	spawnJitter   float64
	nextID        int
	width, height float64
}

// spawnTeam lays a team out in a compact grid around its anchor with a bit
// of positional jitter, everyone drifting toward the arena center.
func spawnTeam(cfg spawnTeamConfig, rng *rand.Rand) ([]*physics.Body, error) {
	rows := int(math.Ceil(math.Sqrt(float64(cfg.count))))
	if rows < 1 {
		rows = 1
	}
	if rows > 6 {
		rows = 6
	}
	spacing := cfg.radius * 2.4

	spawned := make([]*physics.Body, 0, cfg.count)
	for idx := 0; idx < cfg.count; idx++ {
		row := idx % rows
		col := idx / rows

		x := cfg.anchorX - float64(col)*spacing*cfg.towardCenter
		y := cfg.anchorY + (float64(row)-float64(rows-1)*0.5)*spacing

		x += uniform(rng, -cfg.radius*0.15, cfg.radius*0.15)
		y += uniform(rng, -cfg.radius*0.15, cfg.radius*0.15)
		x = clampRange(x, cfg.radius, cfg.width-cfg.radius)
		y = clampRange(y, cfg.radius, cfg.height-cfg.radius)

		vx := cfg.towardCenter * (95.0 + uniform(rng, -cfg.spawnJitter, cfg.spawnJitter)*0.35)
		vy := uniform(rng, -cfg.spawnJitter, cfg.spawnJitter) * 0.22

		body, err := physics.NewBody(physics.BodyParams{
			ID:         cfg.nextID + idx,
			Team:       cfg.team,
			X:          x,
			Y:          y,
			VX:         vx,
			VY:         vy,
			Radius:     cfg.radius,
			Mass:       cfg.mass,
			Power:      1.0,
			ForwardDir: cfg.towardCenter,
			MaxHP:      100,
			HP:         100,
		})
		if err != nil {
			return nil, err
		}
		spawned = append(spawned, body)
	}
	return spawned, nil
}

func clampRange(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
