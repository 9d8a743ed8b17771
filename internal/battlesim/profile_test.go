package battlesim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballclash/ballclash-sim/internal/scenario"
)

func TestDefaultProfilesPool(t *testing.T) {
	profiles := DefaultProfiles()
	require.Len(t, profiles, 6)

	assert.Equal(t, "balanced", profiles[0].Name)
	assert.InDelta(t, 1.0, profiles[0].RadiusScale, 1e-9)
	assert.InDelta(t, 1.0, profiles[0].SpeedScale, 1e-9)

	names := map[string]bool{}
	for _, p := range profiles {
		names[p.Name] = true
		assert.Positive(t, p.RadiusScale)
		assert.Positive(t, p.MassScale)
		assert.Positive(t, p.PowerScale)
		assert.Positive(t, p.HPScale)
		assert.Positive(t, p.SpeedScale)
	}
	assert.True(t, names["juggernaut"])
	assert.True(t, names["berserker"])
}

func TestProfileFromClassBaselineIsNeutral(t *testing.T) {
	class := scenario.FighterClass{Name: "plain", Str: 10, Dex: 10, Int: 10, Vit: 10, Wis: 10}
	p := ProfileFromClass(class, 1.0)

	assert.Equal(t, "plain", p.Name)
	assert.InDelta(t, 1.0, p.RadiusScale, 1e-9)
	assert.InDelta(t, 1.0, p.MassScale, 1e-9)
	assert.InDelta(t, 1.0, p.PowerScale, 1e-9)
	assert.InDelta(t, 1.0, p.HPScale, 1e-9)
	assert.InDelta(t, 1.0, p.SpeedScale, 1e-9)
}

func TestProfileFromClassScalesWithStats(t *testing.T) {
	class := scenario.FighterClass{Name: "heavy", Str: 20, Dex: 5, Vit: 10, Wis: 10}
	p := ProfileFromClass(class, 2.0)

	assert.InDelta(t, 4.0, p.PowerScale, 1e-9)
	assert.InDelta(t, 1.0, p.SpeedScale, 1e-9)
	assert.InDelta(t, 2.0, p.MassScale, 1e-9)
}

func TestRandomProfileStaysInSamplingRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		p := RandomProfile(rng, "rand")
		assert.GreaterOrEqual(t, p.RadiusScale, 0.80)
		assert.LessOrEqual(t, p.RadiusScale, 1.25)
		assert.GreaterOrEqual(t, p.MassScale, 0.72)
		assert.LessOrEqual(t, p.MassScale, 1.85)
		assert.GreaterOrEqual(t, p.PowerScale, 0.72)
		assert.LessOrEqual(t, p.PowerScale, 1.75)
		assert.GreaterOrEqual(t, p.HPScale, 0.72)
		assert.LessOrEqual(t, p.HPScale, 1.85)
		assert.GreaterOrEqual(t, p.SpeedScale, 0.72)
		assert.LessOrEqual(t, p.SpeedScale, 1.40)
	}
}

func TestRandomProfileIsSeedReproducible(t *testing.T) {
	a := RandomProfile(rand.New(rand.NewSource(7)), "a")
	b := RandomProfile(rand.New(rand.NewSource(7)), "b")
	assert.InDelta(t, a.RadiusScale, b.RadiusScale, 1e-15)
	assert.InDelta(t, a.SpeedScale, b.SpeedScale, 1e-15)
}

func TestProfileApplyFloorsParameters(t *testing.T) {
	spec := scenario.BodySpec{Team: "left"}.Resolve(0, 0)
	tiny := Profile{Name: "tiny", RadiusScale: 0.01, MassScale: 0.01, PowerScale: 0.01, HPScale: 0.001, SpeedScale: 0.001}

	shaped := tiny.apply(spec, rand.New(rand.NewSource(1)), 0)
	assert.InDelta(t, 6.0, shaped.Radius, 1e-9)
	assert.InDelta(t, 0.2, shaped.Mass, 1e-9)
	assert.InDelta(t, 0.1, shaped.Power, 1e-9)
	assert.InDelta(t, 1.0, shaped.MaxHP, 1e-9)
	assert.InDelta(t, 0.1, shaped.HP, 1e-9)
	// Speed floors at 8 but keeps its direction.
	assert.InDelta(t, 8.0, shaped.VX, 1e-9)
}

func TestProfileApplyKeepsSpeedDirection(t *testing.T) {
	spec := scenario.BodySpec{Team: "right"}.Resolve(0, 0)
	require.Negative(t, spec.VX)

	shaped := Profile{Name: "fast", RadiusScale: 1, MassScale: 1, PowerScale: 1, HPScale: 1, SpeedScale: 2}.
		apply(spec, rand.New(rand.NewSource(1)), 0)
	assert.InDelta(t, spec.VX*2, shaped.VX, 1e-9)
}

func TestProfileApplyJitterIsSeedReproducible(t *testing.T) {
	spec := scenario.BodySpec{Team: "left"}.Resolve(0, 0)
	p := DefaultProfiles()[1]

	a := p.apply(spec, rand.New(rand.NewSource(9)), 12)
	b := p.apply(spec, rand.New(rand.NewSource(9)), 12)
	assert.InDelta(t, a.VX, b.VX, 1e-15)
}
