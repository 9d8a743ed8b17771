package battlesim

import "math"

// Combat-feel targets. Each metric scores 1.0 at its target and falls off
// linearly to 0.0 at one tolerance away.
var scoreTargets = []struct {
	target    float64
	tolerance float64
	weight    float64
	value     func(RunMetrics) float64
}{
	{2.2, 1.6, 0.23, func(m RunMetrics) float64 { return m.CollisionsPerSecond }},
	{22.0, 16.0, 0.20, func(m RunMetrics) float64 { return m.DamagePerSecond }},
	{0.26, 0.18, 0.12, func(m RunMetrics) float64 { return m.AirRatio }},
	{14.0, 10.0, 0.20, func(m RunMetrics) float64 { return m.FightEndTime }},
	{3.0, 3.0, 0.15, func(m RunMetrics) float64 { return float64(m.LeadChanges) }},
	{80.0, 65.0, 0.10, func(m RunMetrics) float64 { return float64(m.CollisionBursts) }},
}

func scoreMetric(value, target, tolerance float64) float64 {
	if tolerance <= 0 {
		return 0
	}
	delta := math.Abs(value-target) / tolerance
	return math.Max(0, 1.0-delta)
}

// Score grades a run's combat feel on a 0..100 scale, rounded to two
// decimals.
func Score(m RunMetrics) float64 {
	weighted := 0.0
	for _, t := range scoreTargets {
		weighted += scoreMetric(t.value(m), t.target, t.tolerance) * t.weight
	}
	return math.Round(weighted*100.0*100.0) / 100.0
}
