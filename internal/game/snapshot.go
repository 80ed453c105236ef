package game

import (
	"sync/atomic"

	"zoneclash/internal/geom"
)

// CombatantSnapshot is an immutable view of one fighter, safe to serialize
// off the tick goroutine.
type CombatantSnapshot struct {
	ID        string   `json:"id"`
	Pos       geom.Vec `json:"pos"`
	Vel       geom.Vec `json:"vel"`
	Angle     float64  `json:"angle"`
	HP        float64  `json:"hp"`
	MaxHP     float64  `json:"maxHp"`
	Armor     float64  `json:"armor"`
	Weapon    string   `json:"weapon"`
	Ammo      int      `json:"ammo"`
	Reloading bool     `json:"reloading"`
	Sprinting bool     `json:"sprinting"`
	IsBot     bool     `json:"isBot"`
}

// BulletSnapshot is an immutable view of one projectile.
type BulletSnapshot struct {
	ID      string   `json:"id"`
	OwnerID string   `json:"ownerId"`
	Pos     geom.Vec `json:"pos"`
	Color   string   `json:"color"`
}

// LootSnapshot is an immutable view of one ground item.
type LootSnapshot struct {
	ID     string   `json:"id"`
	Pos    geom.Vec `json:"pos"`
	Kind   string   `json:"kind"`
	Weapon string   `json:"weapon,omitempty"`
}

// WallSnapshot is an immutable view of one static obstacle.
type WallSnapshot struct {
	ID     string   `json:"id"`
	Pos    geom.Vec `json:"pos"`
	W      float64  `json:"w,omitempty"`
	H      float64  `json:"h,omitempty"`
	Radius float64  `json:"radius,omitempty"`
	Circle bool     `json:"circle,omitempty"`
}

// Snapshot is a complete point-in-time copy of visible match state. All
// fields are value types: readers never touch live sim memory.
type Snapshot struct {
	Tick          uint64              `json:"tick"`
	Combatants    []CombatantSnapshot `json:"combatants"`
	Bullets       []BulletSnapshot    `json:"bullets"`
	Loot          []LootSnapshot      `json:"loot"`
	Walls         []WallSnapshot      `json:"walls"`
	ZoneCenter    geom.Vec            `json:"zoneCenter"`
	ZoneRadius    float64             `json:"zoneRadius"`
	TimeRemaining float64             `json:"timeRemainingMs"`
	Over          bool                `json:"over"`
	Winner        string              `json:"winner,omitempty"`
}

// WallFromSnapshot rebuilds a live wall from its snapshot form. The client
// uses this to adopt the host's arena.
func WallFromSnapshot(ws WallSnapshot) *Wall {
	return &Wall{ID: ws.ID, Pos: ws.Pos, W: ws.W, H: ws.H, Radius: ws.Radius, Circle: ws.Circle}
}

// SnapshotPool publishes snapshots through three rotating buffers. The tick
// goroutine writes into the buffer after the published one and then flips an
// atomic index, so Latest never blocks and never observes a half-written
// snapshot.
type SnapshotPool struct {
	buffers [3]Snapshot
	current atomic.Int32
}

// NewSnapshotPool creates an empty pool. Latest is valid (and empty) before
// the first Produce.
func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{}
}

// Latest returns the most recently published snapshot.
func (p *SnapshotPool) Latest() *Snapshot {
	return &p.buffers[p.current.Load()]
}

// Produce copies the sim's visible state into the next buffer and publishes
// it. Must only be called from the tick goroutine.
func (p *SnapshotPool) Produce(s *Sim) *Snapshot {
	next := (p.current.Load() + 1) % 3
	snap := &p.buffers[next]

	snap.Tick = s.tick
	snap.ZoneCenter = s.ZoneCenter
	snap.ZoneRadius = ZoneRadius(s.now)
	snap.TimeRemaining = MatchDuration - s.now
	if snap.TimeRemaining < 0 {
		snap.TimeRemaining = 0
	}
	snap.Over = s.Over
	snap.Winner = s.Winner

	snap.Combatants = snap.Combatants[:0]
	for _, c := range s.combatants() {
		snap.Combatants = append(snap.Combatants, CombatantSnapshot{
			ID:        c.ID,
			Pos:       c.Pos,
			Vel:       c.Vel,
			Angle:     c.Angle,
			HP:        c.HP,
			MaxHP:     c.MaxHP,
			Armor:     c.Armor,
			Weapon:    c.Weapon.String(),
			Ammo:      c.Ammo,
			Reloading: c.Reloading,
			Sprinting: c.SprintTimeLeft > 0,
			IsBot:     c.IsBot,
		})
	}

	snap.Bullets = snap.Bullets[:0]
	for _, b := range s.Bullets {
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			ID:      b.ID,
			OwnerID: b.OwnerID,
			Pos:     b.Pos,
			Color:   b.Color,
		})
	}

	snap.Loot = snap.Loot[:0]
	for _, item := range s.Loot {
		ls := LootSnapshot{ID: item.ID, Pos: item.Pos, Kind: item.Kind.String()}
		if item.Kind == ItemWeapon {
			ls.Weapon = item.Weapon.String()
		}
		snap.Loot = append(snap.Loot, ls)
	}

	snap.Walls = snap.Walls[:0]
	for _, w := range s.Walls {
		snap.Walls = append(snap.Walls, WallSnapshot{
			ID: w.ID, Pos: w.Pos, W: w.W, H: w.H, Radius: w.Radius, Circle: w.Circle,
		})
	}

	p.current.Store(next)
	return snap
}
