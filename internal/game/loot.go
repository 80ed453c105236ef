package game

import (
	"math"

	"zoneclash/internal/geom"
)

// lootWeights drives the weighted random item type selection.
var lootWeights = []struct {
	kind   ItemKind
	weight int
}{
	{ItemMedkit, 30},
	{ItemShield, 22},
	{ItemAmmo, 20},
	{ItemWeapon, 20},
	{ItemMegaHealth, 8},
}

// weaponDropWeights drives the weighted weapon choice for weapon drops.
var weaponDropWeights = []struct {
	id     WeaponID
	weight int
}{
	{WeaponSMG, 30},
	{WeaponShotgun, 26},
	{WeaponRifle, 26},
	{WeaponSniper, 18},
}

// UpdateLootAndZone runs the loot director and the zone for one tick:
// periodic spawning (authority side only), pickup resolution, and
// outside-zone damage. dt is seconds.
func (s *Sim) UpdateLootAndZone(dt float64) {
	// The network client never originates loot; it renders what State says.
	if s.Mode != ModeClient {
		s.maybeSpawnLoot()
	}
	s.resolvePickups()
	s.applyZoneDamage(dt)
}

func (s *Sim) maybeSpawnLoot() {
	if s.now-s.lastLootSpawnAt < LootSpawnInterval || len(s.Loot) >= MaxLootItems {
		return
	}
	s.lastLootSpawnAt = s.now

	kind := s.pickLootKind()
	s.lootSeq++
	item := &LootItem{
		ID:     lootID(s.lootSeq),
		Pos:    s.placeLoot(),
		Radius: LootRadius,
		Kind:   kind,
	}
	switch kind {
	case ItemMedkit:
		item.Value = MedkitValue
	case ItemMegaHealth:
		item.Value = MegaHealthValue
	case ItemShield:
		item.Value = ShieldValue
	case ItemWeapon:
		item.Weapon = s.pickDropWeapon()
	}
	s.Loot = append(s.Loot, item)

	s.events.Emit(EventLootSpawn, s.tick, "", LootPayload{
		LootID: item.ID,
		Kind:   kind.String(),
	})
}

func (s *Sim) pickLootKind() ItemKind {
	total := 0
	for _, lw := range lootWeights {
		total += lw.weight
	}
	roll := s.rng.Intn(total)
	for _, lw := range lootWeights {
		roll -= lw.weight
		if roll < 0 {
			return lw.kind
		}
	}
	return ItemMedkit
}

func (s *Sim) pickDropWeapon() WeaponID {
	total := 0
	for _, ww := range weaponDropWeights {
		total += ww.weight
	}
	roll := s.rng.Intn(total)
	for _, ww := range weaponDropWeights {
		roll -= ww.weight
		if roll < 0 {
			return ww.id
		}
	}
	return WeaponSMG
}

// placeLoot finds a spawn position that does not overlap a wall, retrying a
// bounded number of times. After exhausting the retries the last candidate
// is accepted anyway: visually imperfect, but never blocks gameplay.
func (s *Sim) placeLoot() geom.Vec {
	var p geom.Vec
	for i := 0; i < LootPlaceAttempts; i++ {
		p = geom.Vec{
			X: SpawnMargin + s.rng.Float64()*(ArenaWidth-2*SpawnMargin),
			Y: SpawnMargin + s.rng.Float64()*(ArenaHeight-2*SpawnMargin),
		}
		if !s.circleBlocked(p, LootRadius) {
			return p
		}
	}
	return p
}

// dropConsumableNear sheds a random non-weapon item close to p. Used for the
// solo-mode bot drops on damage.
func (s *Sim) dropConsumableNear(p geom.Vec) {
	if len(s.Loot) >= MaxLootItems {
		return
	}
	kinds := []ItemKind{ItemMedkit, ItemShield, ItemAmmo}
	kind := kinds[s.rng.Intn(len(kinds))]

	s.lootSeq++
	item := &LootItem{
		ID:     lootID(s.lootSeq),
		Pos:    p.Add(geom.FromAngle(s.rng.Float64() * 2 * math.Pi).Scale(40 + s.rng.Float64()*30)),
		Radius: LootRadius,
		Kind:   kind,
	}
	switch kind {
	case ItemMedkit:
		item.Value = MedkitValue
	case ItemShield:
		item.Value = ShieldValue
	}
	s.Loot = append(s.Loot, item)
}

// resolvePickups consumes loot items that overlap a combatant. A heal item
// is deliberately left on the ground when the combatant is already at full
// health, so the pickup is never wasted.
func (s *Sim) resolvePickups() {
	n := 0
	for _, item := range s.Loot {
		consumed := false
		for _, c := range s.combatants() {
			if !c.Alive() || !geom.CirclesOverlap(c.Pos, c.Radius, item.Pos, item.Radius) {
				continue
			}
			if s.applyPickup(c, item) {
				consumed = true
				break
			}
		}
		if !consumed {
			s.Loot[n] = item
			n++
		}
	}
	s.Loot = s.Loot[:n]
}

// applyPickup applies an item's effect. Returns false when the item should
// stay on the ground (heal at full health).
func (s *Sim) applyPickup(c *Combatant, item *LootItem) bool {
	switch item.Kind {
	case ItemMedkit, ItemMegaHealth:
		if c.HP >= c.MaxHP {
			return false
		}
		c.HP = geom.Clamp(c.HP+item.Value, 0, c.MaxHP)
	case ItemShield:
		c.Armor = geom.Clamp(c.Armor+item.Value, 0, MaxArmor)
	case ItemAmmo:
		c.Ammo = GetWeapon(c.Weapon).ClipSize
		c.Reloading = false
	case ItemWeapon:
		c.Weapon = item.Weapon
		c.Ammo = GetWeapon(item.Weapon).ClipSize
		c.Reloading = false
	}

	s.events.Emit(EventPickup, s.tick, c.ID, LootPayload{
		LootID:      item.ID,
		Kind:        item.Kind.String(),
		CombatantID: c.ID,
	})
	return true
}

// ZoneRadius returns the safe-zone radius at the given elapsed ms. Constant
// until the shrink starts, then a monotonic linear interpolation down to the
// minimum; it never re-expands.
func ZoneRadius(elapsed float64) float64 {
	if elapsed <= ZoneShrinkStart {
		return ZoneInitialRadius
	}
	t := geom.Clamp((elapsed-ZoneShrinkStart)/ZoneShrinkDuration, 0, 1)
	return geom.Lerp(ZoneInitialRadius, ZoneMinRadius, t)
}

// applyZoneDamage hurts combatants outside the current safe radius. The
// damage resets the regeneration window exactly like a projectile hit.
func (s *Sim) applyZoneDamage(dt float64) {
	radius := ZoneRadius(s.now)
	for _, c := range s.combatants() {
		if !c.Alive() {
			continue
		}
		if geom.Dist(c.Pos, s.ZoneCenter) > radius {
			c.HP = geom.Clamp(c.HP-ZoneDamagePerSec*dt, 0, c.MaxHP)
			c.LastDamageAt = s.now
			c.RegenAccum = 0
		}
	}
}
