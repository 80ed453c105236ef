package game

import (
	"fmt"

	"zoneclash/internal/geom"
)

// ItemKind is the closed set of loot item types.
type ItemKind int

const (
	ItemMedkit ItemKind = iota
	ItemMegaHealth
	ItemShield
	ItemAmmo
	ItemWeapon
)

// String returns the wire name of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemMedkit:
		return "medkit"
	case ItemMegaHealth:
		return "mega_health"
	case ItemShield:
		return "shield"
	case ItemAmmo:
		return "ammo"
	case ItemWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// ItemKindFromString maps a wire name back to an ItemKind, defaulting to a medkit.
func ItemKindFromString(s string) ItemKind {
	switch s {
	case "mega_health":
		return ItemMegaHealth
	case "shield":
		return ItemShield
	case "ammo":
		return ItemAmmo
	case "weapon":
		return ItemWeapon
	default:
		return ItemMedkit
	}
}

// Combatant is a player- or bot-controlled fighter. Exactly two exist per
// match; hp reaching zero ends the match rather than removing the entity.
type Combatant struct {
	ID     string
	Pos    geom.Vec
	Radius float64

	HP    float64
	MaxHP float64
	Armor float64 // 0..MaxArmor, absorbs damage before hp

	Vel   geom.Vec
	Angle float64 // facing/aim direction, radians

	Weapon        WeaponID
	Ammo          int
	Reloading     bool
	ReloadReadyAt float64 // ms, sim clock
	LastFiredAt   float64 // ms, sim clock

	SpeedMult          float64
	SprintTimeLeft     float64 // ms
	SprintCooldownLeft float64 // ms

	LastDamageAt float64
	RegenAccum   float64 // ms since last damage, gates regeneration

	IsBot bool

	// Aim-assist state, local to the side running this combatant's input.
	Snapped bool
}

// NewCombatant creates a fighter at the given spawn with default loadout.
func NewCombatant(id string, spawn geom.Vec, isBot bool) *Combatant {
	return &Combatant{
		ID:        id,
		Pos:       spawn,
		Radius:    CombatantRadius,
		HP:        DefaultMaxHP,
		MaxHP:     DefaultMaxHP,
		Weapon:    WeaponPistol,
		Ammo:      GetWeapon(WeaponPistol).ClipSize,
		SpeedMult: 1,
		IsBot:     isBot,
	}
}

// Alive reports whether the combatant can still fight.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// ResetLoadout normalizes weapon, ammo, hp and armor to match-start values.
// Both sides run this on Init so PvP starts fair regardless of any earlier
// single-player state on the reused entities.
func (c *Combatant) ResetLoadout() {
	c.Weapon = WeaponPistol
	c.Ammo = GetWeapon(WeaponPistol).ClipSize
	c.Reloading = false
	c.ReloadReadyAt = 0
	c.LastFiredAt = 0
	c.HP = c.MaxHP
	c.Armor = 0
	c.Vel = geom.Vec{}
	c.SpeedMult = 1
	c.SprintTimeLeft = 0
	c.SprintCooldownLeft = 0
	c.RegenAccum = 0
	c.Snapped = false
}

// Bullet is a live projectile. Bullets collide as points against walls and
// as small circles against combatants.
type Bullet struct {
	ID        string
	OwnerID   string
	Pos       geom.Vec
	Vel       geom.Vec
	Radius    float64
	Damage    float64
	RangeLeft float64 // px of travel remaining; <=0 removes the bullet
	Color     string
}

// Wall is a static obstacle: an axis-aligned rectangle, or a circle when
// Circle is set. The arena boundary is four oversized rectangles.
type Wall struct {
	ID     string
	Pos    geom.Vec // center
	W, H   float64
	Radius float64
	Circle bool
}

// BlocksCircle reports whether a circle at p with radius r intersects the wall.
func (w *Wall) BlocksCircle(p geom.Vec, r float64) bool {
	if w.Circle {
		return geom.CirclesOverlap(p, r, w.Pos, w.Radius)
	}
	return geom.CircleRectOverlap(p, r, w.Pos, w.W, w.H)
}

// BlocksPoint reports whether the point p lies inside the wall. Bullets use
// this since their radius is negligible against static geometry.
func (w *Wall) BlocksPoint(p geom.Vec) bool {
	if w.Circle {
		return geom.CirclesOverlap(p, 0, w.Pos, w.Radius)
	}
	return geom.PointInRect(p, w.Pos, w.W, w.H)
}

// BlocksSegment reports whether the segment a-b crosses the wall. Bullets
// sweep their whole per-tick path with this so a fast projectile cannot step
// over a thin obstacle in one integration step.
func (w *Wall) BlocksSegment(a, b geom.Vec) bool {
	if w.Circle {
		return geom.SegmentIntersectsCircle(a, b, w.Pos, w.Radius)
	}
	return geom.SegmentIntersectsRect(a, b, w.Pos, w.W, w.H)
}

// LootItem is a pickup on the ground. Spawned only by the loot authority
// (host or single-player), consumed on overlap.
type LootItem struct {
	ID     string
	Pos    geom.Vec
	Radius float64
	Kind   ItemKind
	Weapon WeaponID // only meaningful when Kind == ItemWeapon
	Value  float64  // heal amount or other magnitude
}

// Intent is the per-tick input for one combatant: the latest values written
// by an input device or a network message, read once at the top of the tick.
type Intent struct {
	Move   geom.Vec // normalized movement direction (may be zero)
	Aim    geom.Vec // normalized aim stick (may be zero)
	Sprint bool
	Fire   bool // pointer-based fire (desktop)

	// Angle is the externally-computed facing for the networked opponent,
	// authoritative from its own client. Applied only when HasAngle is set.
	Angle    float64
	HasAngle bool
}

func bulletID(owner string, tick uint64, n int) string {
	return fmt.Sprintf("b_%s_%d_%d", owner, tick, n)
}

func lootID(seq uint64) string {
	return fmt.Sprintf("loot_%d", seq)
}
