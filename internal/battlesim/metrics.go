package battlesim

import (
	"fmt"
	"math"

	"github.com/ballclash/ballclash-sim/internal/physics"
)

// Match outcomes reported by a run.
const (
	WinnerLeft  = "left"
	WinnerRight = "right"
	WinnerDraw  = "draw"
)

// RunMetrics is the telemetry of a single simulated fight.
type RunMetrics struct {
	Duration            float64  `json:"duration"`
	FightEndTime        float64  `json:"fight_end_time"`
	CollisionsPerSecond float64  `json:"collisions_per_second"`
	DamagePerSecond     float64  `json:"damage_per_second"`
	DamagePerCollision  float64  `json:"damage_per_collision"`
	AirRatio            float64  `json:"air_ratio"`
	LeadChanges         int      `json:"lead_changes"`
	CollisionBursts     int      `json:"collision_bursts"`
	PeakSpeed           float64  `json:"peak_speed"`
	LeftRemainingHP     float64  `json:"left_remaining_hp"`
	RightRemainingHP    float64  `json:"right_remaining_hp"`
	Winner              string   `json:"winner"`
	TimeToFirstContact  *float64 `json:"time_to_first_collision,omitempty"`
}

func teamHP(w *physics.World, team string) float64 {
	total := 0.0
	for _, b := range w.Bodies() {
		if b.Team == team {
			total += b.HP
		}
	}
	return total
}

func teamAlive(w *physics.World, team string) bool {
	for _, b := range w.Bodies() {
		if b.Team == team && b.Alive() {
			return true
		}
	}
	return false
}

// winnerFromWorld declares the last team standing, falling back to total
// remaining hp when both (or neither) survive.
func winnerFromWorld(w *physics.World) string {
	leftAlive := teamAlive(w, WinnerLeft)
	rightAlive := teamAlive(w, WinnerRight)
	if leftAlive && !rightAlive {
		return WinnerLeft
	}
	if rightAlive && !leftAlive {
		return WinnerRight
	}
	leftHP := teamHP(w, WinnerLeft)
	rightHP := teamHP(w, WinnerRight)
	if math.Abs(leftHP-rightHP) < 1e-6 {
		return WinnerDraw
	}
	if leftHP > rightHP {
		return WinnerLeft
	}
	return WinnerRight
}

func isGrounded(w *physics.World, b *physics.Body) bool {
	groundY := w.Height - b.Radius
	return b.Y >= groundY-1e-6 && math.Abs(b.VY) <= w.Tuning().GroundSnapSpeed
}

func leadSign(hpDiff float64) int {
	if hpDiff > 1e-6 {
		return 1
	}
	if hpDiff < -1e-6 {
		return -1
	}
	return 0
}

// SimulateRun steps the world for the given wall-clock duration (ending
// early when a team is wiped) and reports the combat-feel telemetry.
func SimulateRun(w *physics.World, duration, dt float64) (RunMetrics, error) {
	if duration <= 0 {
		return RunMetrics{}, fmt.Errorf("battlesim: duration must be > 0, got %g", duration)
	}
	if dt <= 0 {
		return RunMetrics{}, fmt.Errorf("battlesim: dt must be > 0, got %g", dt)
	}

	steps := int(duration / dt)
	if steps < 1 {
		steps = 1
	}

	var timeToFirstContact *float64
	collisionBursts := 0
	peakSpeed := w.MaxSpeed()
	airborneAcc := 0.0
	airborneSamples := 0
	leadChanges := 0
	fightEndTime := duration

	initialLeftHP := teamHP(w, WinnerLeft)
	initialRightHP := teamHP(w, WinnerRight)
	prevLead := leadSign(initialLeftHP - initialRightHP)

	for stepIdx := 0; stepIdx < steps; stepIdx++ {
		if err := w.Step(dt); err != nil {
			return RunMetrics{}, err
		}

		if w.LastStepCollisions > 0 {
			collisionBursts++
			if timeToFirstContact == nil {
				t := float64(stepIdx+1) * dt
				timeToFirstContact = &t
			}
		}

		peakSpeed = math.Max(peakSpeed, w.MaxSpeed())
		for _, b := range w.Bodies() {
			if b.Alive() {
				airborneSamples++
				if !isGrounded(w, b) {
					airborneAcc++
				}
			}
		}

		lead := leadSign(teamHP(w, WinnerLeft) - teamHP(w, WinnerRight))
		if prevLead != 0 && lead != 0 && lead != prevLead {
			leadChanges++
		}
		if lead != 0 {
			prevLead = lead
		}

		if !teamAlive(w, WinnerLeft) || !teamAlive(w, WinnerRight) {
			fightEndTime = float64(stepIdx+1) * dt
			break
		}
	}

	finalLeftHP := teamHP(w, WinnerLeft)
	finalRightHP := teamHP(w, WinnerRight)
	damageDone := (initialLeftHP + initialRightHP) - (finalLeftHP + finalRightHP)
	collisions := w.TotalCollisions
	if collisions < 0 {
		collisions = 0
	}
	elapsed := math.Max(dt, w.TimeElapsed)

	airRatio := 0.0
	if airborneSamples > 0 {
		airRatio = airborneAcc / float64(airborneSamples)
	}
	damagePerCollision := 0.0
	if collisions > 0 {
		damagePerCollision = damageDone / float64(collisions)
	}

	return RunMetrics{
		Duration:            elapsed,
		FightEndTime:        fightEndTime,
		CollisionsPerSecond: float64(collisions) / elapsed,
		DamagePerSecond:     damageDone / elapsed,
		DamagePerCollision:  damagePerCollision,
		AirRatio:            airRatio,
		LeadChanges:         leadChanges,
		CollisionBursts:     collisionBursts,
		PeakSpeed:           peakSpeed,
		LeftRemainingHP:     finalLeftHP,
		RightRemainingHP:    finalRightHP,
		Winner:              winnerFromWorld(w),
		TimeToFirstContact:  timeToFirstContact,
	}, nil
}
