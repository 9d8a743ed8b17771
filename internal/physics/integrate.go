package physics

import "math"

const groundEpsilon = 1e-6

// integrate advances a single body by dt: timers, forward drive, gravity,
// damping, ground friction, then position and wall response. Bodies never
// affect each other here; pair interaction belongs to the collision solver.
func (w *World) integrate(b *Body, dt float64) {
	b.LastDamage = 0

	t := w.tuning
	if !b.Alive() {
		// Dead bodies are inert: no drive, no timers, velocity zeroed every
		// tick. Gravity still pulls them down from the zeroed state until the
		// floor snap catches them, so a corpse settles at floor height.
		b.VX = 0
		b.VY = 0
		b.StaggerTimer = 0
		b.AbilityCooldown = 0
		if !w.isGrounded(b) {
			b.VY += t.Gravity * dt
			b.Y += b.VY * dt
		}
		w.resolveWallCollision(b)
		return
	}

	if b.StaggerTimer > 0 {
		b.StaggerTimer = math.Max(0, b.StaggerTimer-dt)
	}
	if b.AbilityCooldown > 0 {
		b.AbilityCooldown = math.Max(0, b.AbilityCooldown-dt)
	}

	onGround := w.isGrounded(b)

	driveForce := t.ApproachForce * b.Power
	if b.StaggerTimer > 0 {
		driveForce *= t.StaggerDriveMultiplier
	}

	ax := (b.ForwardDir * driveForce) / b.Mass
	ay := t.Gravity
	if onGround && b.VY >= 0 {
		ay = 0
		b.VY = 0
	}

	damping := math.Max(0, 1-t.LinearDamping*dt)
	b.VX += ax * dt
	b.VY += ay * dt
	b.VX *= damping
	b.VY *= damping

	if onGround {
		b.VX *= math.Max(0, 1-t.GroundFriction*dt)
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt

	w.resolveWallCollision(b)
}

// isGrounded reports whether the body rests on the arena floor: at floor
// height (y grows downward, so the floor is at Height) and moving slower
// than the snap speed.
func (w *World) isGrounded(b *Body) bool {
	groundY := w.Height - b.Radius
	return b.Y >= groundY-groundEpsilon && math.Abs(b.VY) <= w.tuning.GroundSnapSpeed
}

// resolveWallCollision reflects the velocity component crossing an arena
// boundary by the wall restitution and applies wall friction to the
// tangential component. The floor additionally snaps slow rebounds to rest.
func (w *World) resolveWallCollision(b *Body) {
	t := w.tuning
	r := b.Radius
	wallFriction := math.Max(0, 1-t.WallFriction)

	if b.X-r < 0 {
		b.X = r
		if b.VX < 0 {
			b.VX = -b.VX * t.WallRestitution
			b.VY *= wallFriction
		}
	} else if b.X+r > w.Width {
		b.X = w.Width - r
		if b.VX > 0 {
			b.VX = -b.VX * t.WallRestitution
			b.VY *= wallFriction
		}
	}

	if b.Y-r < 0 {
		b.Y = r
		if b.VY < 0 {
			b.VY = -b.VY * t.WallRestitution
			b.VX *= wallFriction
		}
	} else if b.Y+r > w.Height {
		b.Y = w.Height - r
		if b.VY > t.GroundSnapSpeed {
			b.VY = -b.VY * t.WallRestitution
		} else {
			b.VY = 0
		}
		b.VX *= math.Max(0, 1-t.GroundFriction)
	}
}
