package physics

import "math"

const (
	distanceEpsilon = 1e-12
	tangentEpsilon  = 1e-9
	powerEpsilon    = 1e-6
)

// resolveBodyCollisions runs one detection+response pass over every living
// opposite-team pair, in spawn order for determinism. It records touching
// pairs in currentContacts, fires impact effects for pairs not touching last
// tick (at most once per tick via impacted), and returns the number of
// overlaps resolved in this pass.
func (w *World) resolveBodyCollisions(currentContacts, impacted map[pairKey]struct{}) int {
	t := w.tuning
	collisions := 0

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if !a.Alive() {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if !b.Alive() || a.Team == b.Team {
				continue
			}

			dx := b.X - a.X
			dy := b.Y - a.Y
			radii := a.Radius + b.Radius
			distSq := dx*dx + dy*dy
			if distSq >= radii*radii {
				continue
			}

			pair := makePairKey(a.ID, b.ID)
			currentContacts[pair] = struct{}{}

			// Contact normal from a to b. A fully degenerate overlap picks a
			// deterministic horizontal axis from the id parity.
			var nx, ny, dist float64
			if distSq <= distanceEpsilon {
				nx = 1.0
				if (a.ID+b.ID)%2 != 0 {
					nx = -1.0
				}
				ny = 0
				dist = radii
			} else {
				dist = math.Sqrt(distSq)
				nx = dx / dist
				ny = dy / dist
			}

			invMassA := 1.0 / a.Mass
			invMassB := 1.0 / b.Mass
			invMassSum := invMassA + invMassB

			// Baumgarte-style positional correction split by inverse mass.
			penetration := radii - dist
			correction := (penetration / invMassSum) * t.PositionCorrection
			a.X -= nx * correction * invMassA
			a.Y -= ny * correction * invMassA
			b.X += nx * correction * invMassB
			b.Y += ny * correction * invMassB

			relVX := b.VX - a.VX
			relVY := b.VY - a.VY
			relNormalSpeed := relVX*nx + relVY*ny

			if relNormalSpeed < 0 {
				// Power-weighted effective inverse mass: the stronger body
				// contributes less resistance, so it pushes harder and
				// recoils less. Intentionally not momentum-conserving.
				effInvMassA := invMassA / math.Max(powerEpsilon, a.Power)
				effInvMassB := invMassB / math.Max(powerEpsilon, b.Power)
				effInvMassSum := effInvMassA + effInvMassB

				impulse := -(1 + t.Restitution) * relNormalSpeed
				impulse /= effInvMassSum
				impulse *= t.CollisionBoost

				impulseX := impulse * nx
				impulseY := impulse * ny
				a.VX -= impulseX * effInvMassA
				a.VY -= impulseY * effInvMassA
				b.VX += impulseX * effInvMassB
				b.VY += impulseY * effInvMassB

				// Coulomb friction along the tangent, clipped to the normal
				// impulse magnitude.
				tangentX := relVX - relNormalSpeed*nx
				tangentY := relVY - relNormalSpeed*ny
				tangentMag := math.Hypot(tangentX, tangentY)
				if tangentMag > tangentEpsilon {
					tangentX /= tangentMag
					tangentY /= tangentMag
					frictionImpulse := -(relVX*tangentX + relVY*tangentY)
					frictionImpulse /= effInvMassSum
					limit := math.Abs(impulse) * t.Friction
					frictionImpulse = math.Max(-limit, math.Min(frictionImpulse, limit))

					fx := frictionImpulse * tangentX
					fy := frictionImpulse * tangentY
					a.VX -= fx * effInvMassA
					a.VY -= fy * effInvMassA
					b.VX += fx * effInvMassB
					b.VY += fy * effInvMassB
				}
			}

			// Impact effects fire once per pair per tick, and only when the
			// pair was apart at the end of the previous tick.
			if _, wasTouching := w.activeContacts[pair]; !wasTouching && relNormalSpeed < 0 {
				if _, done := impacted[pair]; !done {
					w.applyImpactEffects(a, b, nx)
					impacted[pair] = struct{}{}
				}
			}

			collisions++
		}
	}

	return collisions
}
