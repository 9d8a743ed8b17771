package physics

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// pairKey identifies an unordered body pair by (min id, max id).
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// World owns all fighter bodies and the active tuning for one match, and
// advances the simulation one fixed timestep at a time. A World must be
// driven by exactly one goroutine; concurrent Step calls are not supported.
type World struct {
	Width  float64
	Height float64

	bodies  []*Body
	tuning  Tuning
	invincibleTeams map[string]struct{}

	// Telemetry, updated at the end of every Step.
	TimeElapsed        float64
	TotalCollisions    int
	LastStepCollisions int

	// Pairs touching as of the previous completed tick. A pair absent here
	// but overlapping this tick is a new contact and triggers impact effects.
	activeContacts map[pairKey]struct{}
}

// NewWorld validates the arena, bodies and tuning and assembles a world.
// The world takes ownership of the body slice.
func NewWorld(width, height float64, bodies []*Body, tuning Tuning, invincibleTeams []string) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("world size must be > 0, got %gx%g", width, height)
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	for _, b := range bodies {
		if b == nil {
			return nil, errors.New("world: nil body")
		}
	}

	w := &World{
		Width:           width,
		Height:          height,
		bodies:          bodies,
		tuning:          tuning,
		invincibleTeams: map[string]struct{}{},
		activeContacts:  map[pairKey]struct{}{},
	}
	w.SetInvincibleTeams(invincibleTeams)
	return w, nil
}

// Bodies returns the world's body slice in spawn order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Tuning returns the active tuning.
func (w *World) Tuning() Tuning {
	return w.tuning
}

// SetTuning replaces the tuning. On validation failure the previous tuning
// stays in effect.
func (w *World) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	w.tuning = t
	return nil
}

// SetInvincibleTeams replaces the invincible-team set. Names are normalized
// (lowercased, trimmed); empty names are dropped.
func (w *World) SetInvincibleTeams(teams []string) {
	normalized := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		name := normalizeTeam(team)
		if name != "" {
			normalized[name] = struct{}{}
		}
	}
	w.invincibleTeams = normalized
}

// IsTeamInvincible reports whether incoming damage is suppressed for a team.
func (w *World) IsTeamInvincible(team string) bool {
	_, ok := w.invincibleTeams[normalizeTeam(team)]
	return ok
}

// AddRandomImpulse kicks every living body with a uniformly distributed
// velocity change scaled by 1/mass. The caller owns the random source so
// Step itself stays deterministic.
func (w *World) AddRandomImpulse(rng *rand.Rand, magnitude float64) error {
	if rng == nil {
		return errors.New("random impulse: rng must not be nil")
	}
	if magnitude <= 0 {
		return fmt.Errorf("random impulse: magnitude must be > 0, got %g", magnitude)
	}
	for _, b := range w.bodies {
		if !b.Alive() {
			continue
		}
		b.VX += uniform(rng, -magnitude, magnitude) / b.Mass
		b.VY += uniform(rng, -magnitude, magnitude) / b.Mass
	}
	return nil
}

// MaxSpeed returns the highest current speed among living bodies.
func (w *World) MaxSpeed() float64 {
	maxSpeed := 0.0
	for _, b := range w.bodies {
		if !b.Alive() {
			continue
		}
		if speed := math.Hypot(b.VX, b.VY); speed > maxSpeed {
			maxSpeed = speed
		}
	}
	return maxSpeed
}

// Step advances the simulation by dt seconds: integrate every body, run the
// iterative collision solver, apply first-contact impact effects, run role
// abilities, then update telemetry. State is only observable between
// completed steps.
func (w *World) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("step: dt must be > 0, got %g", dt)
	}

	for _, b := range w.bodies {
		w.integrate(b, dt)
	}

	collisions := 0
	currentContacts := make(map[pairKey]struct{}, len(w.activeContacts))
	impacted := make(map[pairKey]struct{})
	for pass := 0; pass < w.tuning.SolverPasses; pass++ {
		collisions += w.resolveBodyCollisions(currentContacts, impacted)
	}

	w.applyRoleActions()

	w.activeContacts = currentContacts
	w.LastStepCollisions = collisions
	w.TotalCollisions += collisions
	w.TimeElapsed += dt
	return nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
