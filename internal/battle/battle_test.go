package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		unit    UnitSpec
		wantErr bool
	}{
		{"valid", UnitSpec{Name: "grunt", HP: 10, Attack: 2, AttackSpeed: 1.0}, false},
		{"zero attack allowed", UnitSpec{Name: "wall", HP: 10, Attack: 0, AttackSpeed: 1.0}, false},
		{"zero hp", UnitSpec{Name: "ghost", HP: 0, Attack: 2, AttackSpeed: 1.0}, true},
		{"negative attack", UnitSpec{Name: "pacifist", HP: 10, Attack: -1, AttackSpeed: 1.0}, true},
		{"zero attack speed", UnitSpec{Name: "statue", HP: 10, Attack: 2, AttackSpeed: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.unit.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimulateOneOnOne(t *testing.T) {
	teamA := []UnitSpec{{Name: "hero", HP: 10, Attack: 3, AttackSpeed: 1.0}}
	teamB := []UnitSpec{{Name: "grunt", HP: 10, Attack: 2, AttackSpeed: 1.0}}

	result, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)

	assert.Equal(t, "A", result.Winner)
	assert.InDelta(t, 3.0, result.TimeElapsed, 1e-9)
	assert.Equal(t, 7, result.Actions)
	require.Len(t, result.Survivors, 1)
	assert.Equal(t, Survivor{Team: "A", Name: "hero", Slot: 0, HP: 4}, result.Survivors[0])
}

func TestSimulateLogFormat(t *testing.T) {
	teamA := []UnitSpec{{Name: "hero", HP: 10, Attack: 3, AttackSpeed: 1.0}}
	teamB := []UnitSpec{{Name: "grunt", HP: 10, Attack: 2, AttackSpeed: 1.0}}

	result, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Log)
	assert.Equal(t, "000.00s A:hero[0] -> B:grunt[0] for 3 (target hp: 7)", result.Log[0])
	assert.Equal(t, "003.00s B:grunt[0] defeated", result.Log[len(result.Log)-1])
}

func TestSimulateArmorReducesDamageWithFloor(t *testing.T) {
	teamA := []UnitSpec{{Name: "knight", HP: 100, Attack: 5, Armor: 0, AttackSpeed: 1.0}}
	teamB := []UnitSpec{{Name: "turtle", HP: 9, Attack: 1, Armor: 3, AttackSpeed: 1.0}}

	result, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)

	// 5 attack into 3 armor lands 2 per swing; armor above attack still
	// lets 1 through on the return hits.
	assert.Contains(t, result.Log[0], "for 2 (target hp: 7)")
	assert.Equal(t, "A", result.Winner)
}

func TestSimulateTargetsFrontlineFirst(t *testing.T) {
	teamA := []UnitSpec{{Name: "hero", HP: 100, Attack: 10, AttackSpeed: 1.0}}
	teamB := []UnitSpec{
		{Name: "front", HP: 20, Attack: 1, AttackSpeed: 1.0},
		{Name: "back", HP: 10, Attack: 1, AttackSpeed: 1.0},
	}

	result, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)

	assert.Contains(t, result.Log[0], "A:hero[0] -> B:front[0]")
	// The backline only gets hit once the frontline is down.
	assert.Equal(t, "001.00s B:front[0] defeated", result.Log[4])
	assert.Contains(t, result.Log[6], "A:hero[0] -> B:back[0]")
}

func TestSimulateFasterUnitAttacksMoreOften(t *testing.T) {
	teamA := []UnitSpec{{Name: "flurry", HP: 5, Attack: 1, AttackSpeed: 2.0}}
	teamB := []UnitSpec{{Name: "plodder", HP: 5, Attack: 1, AttackSpeed: 1.0}}

	result, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)

	assert.Equal(t, "A", result.Winner)
	assert.InDelta(t, 2.0, result.TimeElapsed, 1e-9)
	require.Len(t, result.Survivors, 1)
	assert.Equal(t, 3, result.Survivors[0].HP)
}

func TestSimulateStopsAtActionLimit(t *testing.T) {
	teamA := []UnitSpec{{Name: "wall-a", HP: 100000, Attack: 0, AttackSpeed: 1.0}}
	teamB := []UnitSpec{{Name: "wall-b", HP: 100000, Attack: 0, AttackSpeed: 1.0}}

	result, err := Simulate(teamA, teamB, Options{MaxActions: 10})
	require.NoError(t, err)

	assert.Empty(t, result.Winner)
	assert.Equal(t, 10, result.Actions)
	assert.Len(t, result.Survivors, 2)
}

func TestSimulateIsDeterministic(t *testing.T) {
	teamA := []UnitSpec{
		{Name: "hero", HP: 30, Attack: 4, AttackSpeed: 1.3},
		{Name: "mage", HP: 18, Attack: 6, AttackSpeed: 0.8},
	}
	teamB := []UnitSpec{
		{Name: "ogre", HP: 40, Attack: 5, Armor: 1, AttackSpeed: 0.9},
		{Name: "imp", HP: 12, Attack: 3, AttackSpeed: 1.6},
	}

	first, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)
	second, err := Simulate(teamA, teamB, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Winner, second.Winner)
	assert.Equal(t, first.Actions, second.Actions)
	assert.Equal(t, first.Log, second.Log)
	assert.Equal(t, first.Survivors, second.Survivors)
}

func TestSimulateCustomTeamNames(t *testing.T) {
	teamA := []UnitSpec{{Name: "hero", HP: 10, Attack: 5, AttackSpeed: 1.0}}
	teamB := []UnitSpec{{Name: "grunt", HP: 5, Attack: 1, AttackSpeed: 1.0}}

	result, err := Simulate(teamA, teamB, Options{TeamAName: "red", TeamBName: "blue"})
	require.NoError(t, err)

	assert.Equal(t, "red", result.Winner)
	assert.Contains(t, result.Log[0], "red:hero[0]")
}

func TestSimulateRejectsBadInput(t *testing.T) {
	valid := []UnitSpec{{Name: "ok", HP: 10, Attack: 1, AttackSpeed: 1.0}}

	_, err := Simulate(nil, valid, Options{})
	assert.Error(t, err)
	_, err = Simulate(valid, nil, Options{})
	assert.Error(t, err)
	_, err = Simulate(valid, valid, Options{TeamAName: "same", TeamBName: "same"})
	assert.Error(t, err)
	_, err = Simulate([]UnitSpec{{Name: "bad", HP: 0, AttackSpeed: 1}}, valid, Options{})
	assert.Error(t, err)
	_, err = Simulate(valid, valid, Options{MaxActions: -1})
	assert.Error(t, err)
	_, err = Simulate(valid, valid, Options{MaxTime: -1})
	assert.Error(t, err)
}
