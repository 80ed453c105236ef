package game

import (
	"math"
	"math/rand"

	"zoneclash/internal/geom"
)

// BotState is the explicit state of the bot controller. States are evaluated
// in priority order every tick; Unstuck is an independent override.
type BotState int

const (
	BotSeeking BotState = iota // moving toward a health/armor pickup
	BotFleeing                 // running from a stronger, close opponent
	BotApproaching             // closing toward optimal weapon range
	BotRetreating              // backing off from inside optimal range
	BotStrafing                // circling inside the optimal band
	BotUnstuck                 // escaping a geometry trap
)

// String returns a readable state name.
func (b BotState) String() string {
	switch b {
	case BotSeeking:
		return "seeking"
	case BotFleeing:
		return "fleeing"
	case BotApproaching:
		return "approaching"
	case BotRetreating:
		return "retreating"
	case BotStrafing:
		return "strafing"
	case BotUnstuck:
		return "unstuck"
	default:
		return "unknown"
	}
}

// BotController produces movement and fire intent for the computer opponent
// in solo matches. The accuracy roll per shot window is the fairness lever.
type BotController struct {
	rng *rand.Rand

	State BotState

	stuckSince float64 // sim ms when near-zero speed was first observed
	stuckUntil float64 // sim ms until which the unstuck sweep runs
	nextShotAt float64 // sim ms of the next firing decision window
}

// NewBotController creates a controller with its own RNG stream.
func NewBotController(rng *rand.Rand) *BotController {
	return &BotController{rng: rng, stuckSince: -1}
}

// Decide evaluates the heuristic controller and returns the bot's intent for
// this tick. now is the sim clock in ms.
func (b *BotController) Decide(self, foe *Combatant, loot []*LootItem, now float64) Intent {
	move := b.decideMovement(self, foe, loot, now)

	aim := b.decideAim(self, foe)
	fire := b.decideFire(self, foe, now)

	// Unstuck override: intent says move but the body is not moving.
	move = b.applyStuckOverride(self, move, now)

	return Intent{
		Move:     move,
		Angle:    aim,
		HasAngle: true,
		Fire:     fire,
	}
}

func (b *BotController) decideMovement(self, foe *Combatant, loot []*LootItem, now float64) geom.Vec {
	t := now / 1000
	hpFrac := self.HP / self.MaxHP
	advantage := self.HP+self.Armor > foe.HP+foe.Armor

	// Priority 1: critically hurt and a restorative item is near.
	if hpFrac < BotCriticalHPFrac {
		if item := nearestRestorative(self, loot); item != nil {
			b.State = BotSeeking
			dir := item.Pos.Sub(self.Pos).Normalize()
			// Small oscillating deviation so the path is not a straight,
			// exploitable line.
			perp := geom.Vec{X: -dir.Y, Y: dir.X}
			return dir.Add(perp.Scale(0.3 * math.Sin(t*4))).Normalize()
		}
	}

	dist := geom.Dist(self.Pos, foe.Pos)

	// Priority 2: hurt, pressed, and not ahead on durability: run.
	if hpFrac < BotLowHPFrac && dist < BotDangerDistance && !advantage {
		b.State = BotFleeing
		away := self.Pos.Sub(foe.Pos).Normalize()
		perp := geom.Vec{X: -away.Y, Y: away.X}
		zigzag := math.Sin(t * 5)
		return away.Add(perp.Scale(0.5 * zigzag)).Normalize()
	}

	// Priority 3: hold the optimal range band for the equipped weapon,
	// tightening in when pressing an advantage against a weakened foe.
	w := GetWeapon(self.Weapon)
	optimal := w.Range * 0.65
	if advantage && foe.HP/foe.MaxHP < BotLowHPFrac {
		optimal = w.Range * 0.45
	}
	band := w.Range * BotOptimalBandFrac

	toFoe := foe.Pos.Sub(self.Pos).Normalize()
	perp := geom.Vec{X: -toFoe.Y, Y: toFoe.X}

	switch {
	case dist > optimal+band:
		b.State = BotApproaching
		weave := math.Sin(t * 3)
		return toFoe.Add(perp.Scale(0.4 * weave)).Normalize()
	case dist < optimal-band:
		b.State = BotRetreating
		return toFoe.Scale(-1)
	default:
		b.State = BotStrafing
		// Strafe direction flips on a slow sine timer; a secondary
		// oscillation keeps the orbit unpredictable.
		strafeDir := 1.0
		if math.Sin(t*2*math.Pi*BotStrafeFlipHz) < 0 {
			strafeDir = -1
		}
		wobble := 0.25 * math.Sin(t*7)
		return perp.Scale(strafeDir).Add(toFoe.Scale(wobble)).Normalize()
	}
}

// applyStuckOverride swaps in a full-circle sweep direction when the bot has
// been trying to move without measurable speed, to escape geometry traps the
// steering cannot resolve.
func (b *BotController) applyStuckOverride(self *Combatant, move geom.Vec, now float64) geom.Vec {
	if now < b.stuckUntil {
		b.State = BotUnstuck
		sweep := (now - b.stuckUntil + 1500) / 1500 * 2 * math.Pi
		return geom.FromAngle(sweep)
	}

	if move.Len() > 0.1 && self.Vel.Len() < BotStuckSpeed {
		if b.stuckSince < 0 {
			b.stuckSince = now
		} else if now-b.stuckSince > BotStuckDelay {
			b.stuckUntil = now + 1500
			b.stuckSince = -1
		}
	} else {
		b.stuckSince = -1
	}
	return move
}

// decideAim returns the exact angle to the opponent with a small lead offset
// proportional to its velocity. Crude linear prediction, no iterative solve.
func (b *BotController) decideAim(self, foe *Combatant) float64 {
	predicted := foe.Pos.Add(foe.Vel.Scale(BotLeadFactor))
	return predicted.Sub(self.Pos).Angle()
}

// decideFire gates shooting on range, reload state, the bot's own fire-rate
// window and a final accuracy roll. A failed roll consumes the window so the
// bot visibly hesitates instead of rerolling every tick.
func (b *BotController) decideFire(self, foe *Combatant, now float64) bool {
	if !foe.Alive() || self.Reloading {
		return false
	}

	w := GetWeapon(self.Weapon)
	if geom.Dist(self.Pos, foe.Pos) > w.Range*BotFireRangeMult {
		return false
	}

	if now < b.nextShotAt {
		return false
	}
	b.nextShotAt = now + w.FireInterval*w.BotRateMult

	return b.rng.Float64() < BotAccuracy
}

func nearestRestorative(self *Combatant, loot []*LootItem) *LootItem {
	var best *LootItem
	bestDist := BotSearchRadius
	for _, item := range loot {
		switch item.Kind {
		case ItemMedkit, ItemMegaHealth, ItemShield:
		default:
			continue
		}
		d := geom.Dist(self.Pos, item.Pos)
		if d < bestDist {
			bestDist = d
			best = item
		}
	}
	return best
}
