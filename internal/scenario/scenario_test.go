package scenario

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballclash/ballclash-sim/internal/physics"
)

func TestFighterClassDerivations(t *testing.T) {
	tests := []struct {
		name     string
		class    FighterClass
		power    float64
		mass     float64
		radius   float64
		maxHP    float64
		speed    float64
		cooldown float64
	}{
		{
			name:   "baseline stats derive reference parameters",
			class:  FighterClass{Str: 10, Dex: 10, Int: 10, Vit: 10, Wis: 10},
			power:  1.0, mass: 1.0, radius: 28.0, maxHP: 100.0, speed: 250.0, cooldown: 0,
		},
		{
			name:   "bulky tank",
			class:  FighterClass{Role: physics.RoleTank, Str: 8, Dex: 7, Vit: 18, Wis: 4},
			power:  0.8, mass: 1.8, radius: 28.0 * math.Sqrt(1.8), maxHP: 180.0, speed: 175.0, cooldown: 0,
		},
		{
			name:   "healer recovers with wisdom",
			class:  FighterClass{Role: physics.RoleHealer, Str: 4, Dex: 8, Vit: 8, Wis: 12},
			power:  0.4, mass: 0.8, radius: 28.0 * math.Sqrt(0.8), maxHP: 80.0, speed: 200.0, cooldown: 1.0,
		},
		{
			name:   "ranged dealer recovers with dexterity",
			class:  FighterClass{Role: physics.RoleRangedDealer, Str: 6, Dex: 9, Vit: 7, Wis: 4},
			power:  0.6, mass: 0.7, radius: 28.0 * math.Sqrt(0.7), maxHP: 70.0, speed: 225.0, cooldown: 10.0 / 9.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.power, tt.class.Power(), 1e-9)
			assert.InDelta(t, tt.mass, tt.class.Mass(), 1e-9)
			assert.InDelta(t, tt.radius, tt.class.Radius(), 1e-9)
			assert.InDelta(t, tt.maxHP, tt.class.MaxHP(), 1e-9)
			assert.InDelta(t, tt.speed, tt.class.Speed(), 1e-9)
			assert.InDelta(t, tt.cooldown, tt.class.AbilityCooldown(), 1e-9)
		})
	}
}

func TestFighterClassClampsStats(t *testing.T) {
	c := FighterClass{Str: 99, Dex: -3, Vit: 0}
	assert.InDelta(t, 2.0, c.Power(), 1e-9)
	assert.InDelta(t, 25.0, c.Speed(), 1e-9)
	assert.InDelta(t, 10.0, c.MaxHP(), 1e-9)
}

func TestDefaultClassesCoverRoles(t *testing.T) {
	classes := DefaultClasses()
	require.Len(t, classes, 4)
	seen := map[physics.Role]bool{}
	for _, c := range classes {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Description)
		seen[c.Role] = true
	}
	assert.True(t, seen[physics.RoleTank])
	assert.True(t, seen[physics.RoleDealer])
	assert.True(t, seen[physics.RoleHealer])
	assert.True(t, seen[physics.RoleRangedDealer])
}

func TestBodySpecResolveDefaults(t *testing.T) {
	got := BodySpec{}.Resolve(0, 0)

	assert.Equal(t, "left", got.Team)
	assert.Equal(t, physics.RoleDealer, got.Role)
	assert.InDelta(t, 1.0, got.Power, 1e-9)
	assert.InDelta(t, 1.0, got.Mass, 1e-9)
	assert.InDelta(t, 28.0, got.Radius, 1e-9)
	assert.InDelta(t, 100.0, got.MaxHP, 1e-9)
	assert.InDelta(t, 100.0, got.HP, 1e-9)
	assert.InDelta(t, 1.0, got.ForwardDir, 1e-9)
	assert.InDelta(t, 250.0, got.VX, 1e-9)
	assert.InDelta(t, 0.0, got.AbilityCooldown, 1e-9)
	assert.InDelta(t, 10.0, got.IntStat, 1e-9)
	assert.InDelta(t, 10.0, got.WisStat, 1e-9)
}

func TestBodySpecResolveTeamMovement(t *testing.T) {
	right := BodySpec{Team: "  RIGHT ", Dex: 12}.Resolve(0, 0)
	assert.Equal(t, "right", right.Team)
	assert.InDelta(t, -1.0, right.ForwardDir, 1e-9)
	assert.InDelta(t, -300.0, right.VX, 1e-9)

	neutral := BodySpec{Team: "rogue"}.Resolve(0, 0)
	assert.InDelta(t, 0.0, neutral.ForwardDir, 1e-9)
	assert.InDelta(t, 0.0, neutral.VX, 1e-9)
}

func TestBodySpecResolveOverrides(t *testing.T) {
	vx := -40.0
	hp := 350.0
	fwd := 1.0
	cd := 0.25
	got := BodySpec{
		Team: "right", Role: "ranged_healer",
		VX: &vx, HP: &hp, ForwardDir: &fwd, AbilityCooldown: &cd,
		Vit: 18, Wis: 16, Int: 14,
	}.Resolve(120, 180)

	assert.Equal(t, physics.RoleRangedHealer, got.Role)
	assert.InDelta(t, -40.0, got.VX, 1e-9)
	assert.InDelta(t, 1.0, got.ForwardDir, 1e-9)
	assert.InDelta(t, 0.25, got.AbilityCooldown, 1e-9)
	// Explicit hp clamps into [0, max_hp].
	assert.InDelta(t, 180.0, got.MaxHP, 1e-9)
	assert.InDelta(t, 180.0, got.HP, 1e-9)
	assert.InDelta(t, 14.0, got.IntStat, 1e-9)
	assert.InDelta(t, 16.0, got.WisStat, 1e-9)
}

func TestBodySpecResolveTeamSpeedFallback(t *testing.T) {
	got := BodySpec{Team: "right"}.Resolve(120, 180)
	assert.InDelta(t, -180.0, got.VX, 1e-9)

	// An explicit zero stays zero.
	zero := 0.0
	still := BodySpec{Team: "right", VX: &zero}.Resolve(120, 180)
	assert.InDelta(t, 0.0, still.VX, 1e-9)
}

func TestBuildWorldPlacement(t *testing.T) {
	w, err := BuildWorld(BuildConfig{
		Width: 1000, Height: 400, SideMargin: 100,
		Tuning: physics.DefaultTuning(),
		Specs: []BodySpec{
			{Team: "left"},
			{Team: "left"},
			{Team: "right"},
		},
	})
	require.NoError(t, err)

	bodies := w.Bodies()
	require.Len(t, bodies, 3)

	// Left team lines up from the margin inward, spaced 2.3 radii.
	assert.InDelta(t, 128.0, bodies[0].X, 1e-9)
	assert.InDelta(t, 128.0+28.0*2.3, bodies[1].X, 1e-9)
	assert.InDelta(t, 872.0, bodies[2].X, 1e-9)
	for _, b := range bodies {
		assert.InDelta(t, 372.0, b.Y, 1e-9)
	}
	assert.Equal(t, 0, bodies[0].ID)
	assert.Equal(t, 2, bodies[2].ID)
}

func TestBuildWorldClampsIntoArena(t *testing.T) {
	x := -500.0
	y := 10000.0
	w, err := BuildWorld(BuildConfig{
		Width: 600, Height: 300,
		Tuning: physics.DefaultTuning(),
		Specs:  []BodySpec{{Team: "left", X: &x, Y: &y}},
	})
	require.NoError(t, err)

	b := w.Bodies()[0]
	assert.InDelta(t, b.Radius, b.X, 1e-9)
	assert.InDelta(t, 300.0-b.Radius, b.Y, 1e-9)
}

func TestBuildWorldRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  BuildConfig
	}{
		{"zero width", BuildConfig{Height: 100, Tuning: physics.DefaultTuning(), Specs: []BodySpec{{}}}},
		{"negative margin", BuildConfig{Width: 100, Height: 100, SideMargin: -1, Tuning: physics.DefaultTuning(), Specs: []BodySpec{{}}}},
		{"no specs", BuildConfig{Width: 100, Height: 100, Tuning: physics.DefaultTuning()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildWorld(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestDuelWorldDefaults(t *testing.T) {
	w, err := DuelWorld(DefaultDuelConfig())
	require.NoError(t, err)

	bodies := w.Bodies()
	require.Len(t, bodies, 2)

	left, right := bodies[0], bodies[1]
	assert.Equal(t, "left", left.Team)
	assert.Equal(t, "right", right.Team)
	assert.InDelta(t, 152.0, left.X, 1e-9)
	assert.InDelta(t, 1248.0, right.X, 1e-9)
	assert.InDelta(t, 488.0, left.Y, 1e-9)
	assert.InDelta(t, 260.0, left.VX, 1e-9)
	assert.InDelta(t, -210.0, right.VX, 1e-9)
	assert.InDelta(t, 1.0, left.ForwardDir, 1e-9)
	assert.InDelta(t, -1.0, right.ForwardDir, 1e-9)
}

func TestDuelWorldInvincibleFlags(t *testing.T) {
	cfg := DefaultDuelConfig()
	cfg.RightInvincible = true
	w, err := DuelWorld(cfg)
	require.NoError(t, err)

	assert.False(t, w.IsTeamInvincible("left"))
	assert.True(t, w.IsTeamInvincible("right"))
}

func TestDuelWorldMultipleBallsPerSide(t *testing.T) {
	cfg := DefaultDuelConfig()
	cfg.BallsPerSide = 3
	w, err := DuelWorld(cfg)
	require.NoError(t, err)

	bodies := w.Bodies()
	require.Len(t, bodies, 6)
	// Second left fighter sits one spacing further in.
	assert.InDelta(t, 152.0+32.0*2.3, bodies[2].X, 1e-9)
}

func TestClashWorldIsSeedReproducible(t *testing.T) {
	cfg := DefaultClashConfig()

	a, err := ClashWorld(cfg, rand.New(rand.NewSource(77)))
	require.NoError(t, err)
	b, err := ClashWorld(cfg, rand.New(rand.NewSource(77)))
	require.NoError(t, err)

	aBodies, bBodies := a.Bodies(), b.Bodies()
	require.Len(t, aBodies, 16)
	require.Len(t, bBodies, 16)
	for i := range aBodies {
		assert.Equal(t, aBodies[i].Team, bBodies[i].Team)
		assert.InDelta(t, aBodies[i].X, bBodies[i].X, 1e-12)
		assert.InDelta(t, aBodies[i].Y, bBodies[i].Y, 1e-12)
		assert.InDelta(t, aBodies[i].VX, bBodies[i].VX, 1e-12)
		assert.InDelta(t, aBodies[i].VY, bBodies[i].VY, 1e-12)
	}
}

func TestClashWorldTeamsFaceEachOther(t *testing.T) {
	w, err := ClashWorld(DefaultClashConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for _, b := range w.Bodies() {
		switch b.Team {
		case "player":
			assert.Positive(t, b.VX)
			assert.InDelta(t, 1.0, b.ForwardDir, 1e-9)
		case "monster":
			assert.Negative(t, b.VX)
			assert.InDelta(t, -1.0, b.ForwardDir, 1e-9)
		default:
			t.Fatalf("unexpected team %q", b.Team)
		}
		assert.GreaterOrEqual(t, b.X, b.Radius)
		assert.LessOrEqual(t, b.X, w.Width-b.Radius)
	}
}

func TestClashWorldRejectsBadConfig(t *testing.T) {
	cfg := DefaultClashConfig()
	_, err := ClashWorld(cfg, nil)
	assert.Error(t, err)

	cfg.PlayerCount = 0
	_, err = ClashWorld(cfg, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func writeSettings(t *testing.T, doc any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadSettingsAppliesTuningOverrides(t *testing.T) {
	path := writeSettings(t, map[string]any{
		"width":  900,
		"height": 450,
		"values": map[string]float64{
			"gravity":     300,
			"restitution": 0.9,
		},
	})

	s, err := LoadSettings(path)
	require.NoError(t, err)

	tn, err := s.Tuning()
	require.NoError(t, err)
	assert.InDelta(t, 300.0, tn.Gravity, 1e-9)
	assert.InDelta(t, 0.9, tn.Restitution, 1e-9)
	// Untouched fields keep their defaults.
	assert.InDelta(t, physics.DefaultTuning().ApproachForce, tn.ApproachForce, 1e-9)
}

func TestSettingsTuningRejectsInvalidOverride(t *testing.T) {
	s := Settings{Values: map[string]float64{"gravity": -10}}
	_, err := s.Tuning()
	assert.Error(t, err)
}

func TestSettingsWorldBuildsFromSpecs(t *testing.T) {
	path := writeSettings(t, map[string]any{
		"width": 800, "height": 400, "side_margin": 60,
		"left_speed": 150, "right_speed": 130,
		"ball_specs": []map[string]any{
			{"team": "left", "role": "healer", "wis_stat": 12},
			{"team": "right"},
		},
		"invincible_teams": []string{"LEFT"},
	})

	s, err := LoadSettings(path)
	require.NoError(t, err)

	w, err := s.World()
	require.NoError(t, err)

	bodies := w.Bodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, physics.RoleHealer, bodies[0].Role)
	assert.InDelta(t, 1.0, bodies[0].AbilityCooldown, 1e-9)
	assert.InDelta(t, 150.0, bodies[0].VX, 1e-9)
	assert.InDelta(t, -130.0, bodies[1].VX, 1e-9)
	assert.True(t, w.IsTeamInvincible("left"))
}

func TestSettingsWorldFallsBackToDuel(t *testing.T) {
	s := Settings{}
	w, err := s.World()
	require.NoError(t, err)
	assert.Len(t, w.Bodies(), 2)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
