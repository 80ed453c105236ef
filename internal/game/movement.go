package game

import (
	"math"

	"zoneclash/internal/geom"
)

// UpdateCombatant runs one integration step for a combatant: regeneration,
// the sprint state machine, acceleration-based movement, wall collision with
// slide and unstuck correction, and aim smoothing. Returns whether the
// combatant wants to fire this tick.
//
// Movement itself is deterministic: for identical intent/dt sequences and a
// fixed wall layout the resulting positions are identical. Randomness lives
// only in spread angles, loot selection and the bot controller.
func (s *Sim) UpdateCombatant(c *Combatant, in Intent, dt float64) bool {
	if !c.Alive() {
		return false
	}

	s.updateRegen(c, dt)
	updateSprint(c, in.Sprint, dt)
	updateReload(c, s.now)

	s.integrateVelocity(c, in.Move, dt)
	s.moveWithCollision(c, dt)
	s.unstick(c)

	return s.updateAim(c, in, dt)
}

// updateRegen accumulates peace time and heals in fixed steps once the
// regeneration delay has fully re-elapsed since the last damage event.
func (s *Sim) updateRegen(c *Combatant, dt float64) {
	if c.HP <= 0 || c.HP >= c.MaxHP {
		return
	}
	c.RegenAccum += dt * 1000
	if c.RegenAccum >= RegenDelay {
		c.HP = geom.Clamp(c.HP+RegenAmount, 0, c.MaxHP)
		// Next heal after RegenInterval, not another full delay.
		c.RegenAccum = RegenDelay - RegenInterval
	}
}

// updateSprint advances the sprint state machine. A sprint request only
// succeeds when both the active window and the cooldown have fully drained.
func updateSprint(c *Combatant, wantSprint bool, dt float64) {
	ms := dt * 1000
	if c.SprintTimeLeft > 0 {
		c.SprintTimeLeft -= ms
	}
	if c.SprintCooldownLeft > 0 {
		c.SprintCooldownLeft -= ms
	}

	if wantSprint && c.SprintTimeLeft <= 0 && c.SprintCooldownLeft <= 0 {
		c.SprintTimeLeft = SprintDuration
		c.SprintCooldownLeft = SprintCooldown
	}

	if c.SprintTimeLeft > 0 {
		c.SpeedMult = SprintMult
	} else {
		c.SpeedMult = 1
	}
}

// integrateVelocity interpolates each velocity axis toward the target
// velocity. Three rate constants apply: friction when decelerating toward
// zero, a fast turn rate when reversing direction, and the normal
// acceleration rate otherwise. Tiny velocities snap to exactly zero.
func (s *Sim) integrateVelocity(c *Combatant, move geom.Vec, dt float64) {
	target := move.Normalize().Scale(BaseMoveSpeed * c.SpeedMult)

	c.Vel.X = approachAxis(c.Vel.X, target.X, dt)
	c.Vel.Y = approachAxis(c.Vel.Y, target.Y, dt)

	if math.Abs(c.Vel.X) < VelocityEpsilon {
		c.Vel.X = 0
	}
	if math.Abs(c.Vel.Y) < VelocityEpsilon {
		c.Vel.Y = 0
	}
}

func approachAxis(v, target, dt float64) float64 {
	rate := AccelRate
	switch {
	case target == 0:
		rate = FrictionRate
	case v != 0 && (v < 0) != (target < 0):
		rate = TurnAccelRate
	}
	t := geom.Clamp(rate*dt, 0, 1)
	return v + (target-v)*t
}

// moveWithCollision applies the velocity axis by axis. A blocked axis keeps
// its old coordinate and gets a small inverted bounce; when exactly one axis
// is blocked the other axis is damped so the combatant slides along the wall
// instead of stopping dead.
func (s *Sim) moveWithCollision(c *Combatant, dt float64) {
	newX := geom.Vec{X: c.Pos.X + c.Vel.X*dt, Y: c.Pos.Y}
	newY := geom.Vec{X: c.Pos.X, Y: c.Pos.Y + c.Vel.Y*dt}

	blockedX := s.circleBlocked(newX, c.Radius)
	blockedY := s.circleBlocked(newY, c.Radius)

	if blockedX {
		c.Vel.X = -c.Vel.X * WallBounce
	} else {
		c.Pos.X = newX.X
	}
	if blockedY {
		c.Vel.Y = -c.Vel.Y * WallBounce
	} else {
		c.Pos.Y = newY.Y
	}

	if blockedX != blockedY {
		if blockedX {
			c.Vel.Y *= SlideDamp
		} else {
			c.Vel.X *= SlideDamp
		}
	}
}

func (s *Sim) circleBlocked(p geom.Vec, r float64) bool {
	for _, w := range s.Walls {
		if w.BlocksCircle(p, r) {
			return true
		}
	}
	return false
}

// unstick resolves residual penetration that axis-separated blocking can
// leave behind near corners: push away from each penetrating wall's center,
// weighted by estimated depth, for a bounded number of passes.
func (s *Sim) unstick(c *Combatant) {
	for i := 0; i < UnstuckIter; i++ {
		var push geom.Vec
		stuck := false
		for _, w := range s.Walls {
			if !w.BlocksCircle(c.Pos, c.Radius) {
				continue
			}
			stuck = true
			away := c.Pos.Sub(w.Pos)
			depth := penetrationDepth(c, w, away.Len())
			dir := away.Normalize()
			if dir == (geom.Vec{}) {
				dir = geom.Vec{X: 1}
			}
			push = push.Add(dir.Scale(depth))
		}
		if !stuck {
			return
		}
		c.Pos = c.Pos.Add(push)
	}
}

func penetrationDepth(c *Combatant, w *Wall, centerDist float64) float64 {
	if w.Circle {
		return math.Max(1, c.Radius+w.Radius-centerDist)
	}
	// Rectangle: estimate by how far inside the expanded bounds the center
	// sits; half the smaller extent is a safe upper bound per pass.
	halfExtent := math.Min(w.W, w.H)/2 + c.Radius
	return geom.Clamp(halfExtent-centerDist+1, 1, halfExtent)
}

// updateAim resolves the combatant's facing angle and firing intent.
//
// Priority: an explicit externally-supplied angle (the networked opponent
// owns its own aim feel) wins outright. Otherwise an aim stick past the
// deadzone steers the angle, blended by aim assist when snapped; with no aim
// input the facing tracks the movement direction so a moving character still
// turns naturally.
func (s *Sim) updateAim(c *Combatant, in Intent, dt float64) bool {
	if in.HasAngle {
		c.Angle = geom.NormalizeAngle(in.Angle)
		return in.Fire
	}

	aimMag := in.Aim.Len()
	smooth := geom.Clamp(TurnSpeed*dt, 0, 1)

	if aimMag > AimDeadzone {
		desired := in.Aim.Angle()
		desired, forceFire := s.applyAimAssist(c, desired, aimMag)
		c.Angle = geom.LerpAngle(c.Angle, desired, smooth)
		return forceFire || aimMag > AutoFireThreshold || in.Fire
	}

	// Not aiming: clear any snap and face the way we move.
	c.Snapped = false
	if in.Move.Len() > AimDeadzone {
		c.Angle = geom.LerpAngle(c.Angle, in.Move.Angle(), smooth)
	}
	return in.Fire
}
