package game

import (
	"math"

	"zoneclash/internal/geom"
)

// applyAimAssist magnetizes stick-based aim toward the opponent. It acquires
// a snap inside the narrow acquire cone, keeps it inside the wider maintain
// cone (hysteresis stops flicker at the boundary), and drops it on range
// loss. While snapped, the desired angle is blended toward the exact
// angle-to-target and firing intent is forced at a lowered stick threshold.
//
// Pure UX affordance for the local human: bots and networked remotes never
// run it, and each side runs its own snap independent of the peer.
func (s *Sim) applyAimAssist(c *Combatant, rawAngle float64, aimMag float64) (float64, bool) {
	target := s.opponentOf(c)
	if target == nil || !target.Alive() {
		c.Snapped = false
		return rawAngle, false
	}

	toTarget := target.Pos.Sub(c.Pos)
	dist := toTarget.Len()
	if dist > SnapMaxRange {
		c.Snapped = false
		return rawAngle, false
	}

	targetAngle := toTarget.Angle()
	diff := math.Abs(geom.AngleDiff(c.Angle, targetAngle))

	if c.Snapped {
		if diff > SnapMaintainCone {
			c.Snapped = false
		}
	} else if diff < SnapAcquireCone {
		c.Snapped = true
	}

	if !c.Snapped {
		return rawAngle, false
	}

	blended := geom.NormalizeAngle(rawAngle + geom.AngleDiff(rawAngle, targetAngle)*SnapStrength)
	return blended, aimMag > SnapFireThreshold
}
