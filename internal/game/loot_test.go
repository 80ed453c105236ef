package game

import (
	"math"
	"testing"

	"zoneclash/internal/geom"
)

func TestZoneRadiusSchedule(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		want    float64
	}{
		{"match start", 0, ZoneInitialRadius},
		{"last full-size moment", ZoneShrinkStart, ZoneInitialRadius},
		{"halfway through the shrink", ZoneShrinkStart + ZoneShrinkDuration/2, (ZoneInitialRadius + ZoneMinRadius) / 2},
		{"shrink complete", ZoneShrinkStart + ZoneShrinkDuration, ZoneMinRadius},
		{"long after", 10 * ZoneShrinkStart, ZoneMinRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZoneRadius(tt.elapsed); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("ZoneRadius(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestZoneRadiusNeverGrows(t *testing.T) {
	prev := ZoneRadius(0)
	for ms := 0.0; ms < ZoneShrinkStart+ZoneShrinkDuration+10000; ms += 500 {
		r := ZoneRadius(ms)
		if r > prev {
			t.Fatalf("radius grew from %v to %v at %vms", prev, r, ms)
		}
		prev = r
	}
}

func TestZoneDamageBypassesArmor(t *testing.T) {
	s := newBareSim()
	s.P1.Pos = s.ZoneCenter.Add(geom.Vec{X: ZoneInitialRadius + 100}) // outside
	s.P1.Armor = 50
	s.P2.Pos = s.ZoneCenter // inside

	s.applyZoneDamage(1.0)

	if s.P1.HP != DefaultMaxHP-ZoneDamagePerSec {
		t.Fatalf("outside hp = %v, want %v", s.P1.HP, DefaultMaxHP-ZoneDamagePerSec)
	}
	if s.P1.Armor != 50 {
		t.Fatalf("zone damage consumed armor: %v", s.P1.Armor)
	}
	if s.P2.HP != DefaultMaxHP {
		t.Fatalf("inside hp = %v, want untouched", s.P2.HP)
	}
}

func TestZoneDamageResetsRegen(t *testing.T) {
	s := newBareSim()
	s.now = 9000
	s.P1.Pos = s.ZoneCenter.Add(geom.Vec{X: ZoneInitialRadius + 100})
	s.P1.RegenAccum = 3000

	s.applyZoneDamage(1.0 / 60)

	if s.P1.RegenAccum != 0 {
		t.Fatalf("regen accumulator = %v, want 0", s.P1.RegenAccum)
	}
	if s.P1.LastDamageAt != 9000 {
		t.Fatalf("last damage at = %v, want 9000", s.P1.LastDamageAt)
	}
}

func TestMedkitStaysOnGroundAtFullHP(t *testing.T) {
	s := newBareSim()
	med := &LootItem{ID: "m", Pos: s.P1.Pos, Radius: LootRadius, Kind: ItemMedkit, Value: MedkitValue}
	s.Loot = append(s.Loot, med)

	s.resolvePickups()
	if len(s.Loot) != 1 {
		t.Fatal("full-hp combatant consumed a medkit")
	}

	s.P1.HP = 50
	s.resolvePickups()
	if len(s.Loot) != 0 {
		t.Fatal("wounded combatant did not pick up the medkit")
	}
	if s.P1.HP != 85 {
		t.Fatalf("hp = %v, want 85", s.P1.HP)
	}
}

func TestPickupEffects(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Combatant)
		item  LootItem
		check func(t *testing.T, c *Combatant)
	}{
		{
			name:  "mega health clamps at max",
			setup: func(c *Combatant) { c.HP = 90 },
			item:  LootItem{Kind: ItemMegaHealth, Value: MegaHealthValue},
			check: func(t *testing.T, c *Combatant) {
				if c.HP != c.MaxHP {
					t.Fatalf("hp = %v, want %v", c.HP, c.MaxHP)
				}
			},
		},
		{
			name:  "shield clamps at max armor",
			setup: func(c *Combatant) { c.Armor = 40 },
			item:  LootItem{Kind: ItemShield, Value: ShieldValue},
			check: func(t *testing.T, c *Combatant) {
				if c.Armor != MaxArmor {
					t.Fatalf("armor = %v, want %v", c.Armor, MaxArmor)
				}
			},
		},
		{
			name: "ammo refills and cancels reload",
			setup: func(c *Combatant) {
				c.Ammo = 0
				c.Reloading = true
			},
			item: LootItem{Kind: ItemAmmo},
			check: func(t *testing.T, c *Combatant) {
				if c.Ammo != GetWeapon(c.Weapon).ClipSize || c.Reloading {
					t.Fatalf("ammo = %d reloading = %v, want full clip and no reload", c.Ammo, c.Reloading)
				}
			},
		},
		{
			name: "weapon swap resets the clip",
			setup: func(c *Combatant) {
				c.Ammo = 2
				c.Reloading = true
			},
			item: LootItem{Kind: ItemWeapon, Weapon: WeaponRifle},
			check: func(t *testing.T, c *Combatant) {
				if c.Weapon != WeaponRifle {
					t.Fatalf("weapon = %v, want rifle", c.Weapon)
				}
				if c.Ammo != 15 || c.Reloading {
					t.Fatalf("ammo = %d reloading = %v, want fresh clip", c.Ammo, c.Reloading)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newBareSim()
			c := s.P1
			tt.setup(c)

			if !s.applyPickup(c, &tt.item) {
				t.Fatal("pickup unexpectedly stayed on the ground")
			}
			tt.check(t, c)
		})
	}
}

func TestLootSpawnIntervalAndCap(t *testing.T) {
	s := newBareSim()

	s.maybeSpawnLoot()
	if len(s.Loot) != 0 {
		t.Fatal("loot spawned before the first interval elapsed")
	}

	s.now = LootSpawnInterval
	s.maybeSpawnLoot()
	if len(s.Loot) != 1 {
		t.Fatalf("loot = %d, want 1 after the interval", len(s.Loot))
	}

	s.maybeSpawnLoot()
	if len(s.Loot) != 1 {
		t.Fatal("loot spawned twice in the same interval")
	}

	// At the cap, nothing spawns even when due.
	for len(s.Loot) < MaxLootItems {
		s.Loot = append(s.Loot, &LootItem{ID: "x", Kind: ItemAmmo, Pos: geom.Vec{X: -1000, Y: -1000}})
	}
	s.now += 2 * LootSpawnInterval
	s.maybeSpawnLoot()
	if len(s.Loot) != MaxLootItems {
		t.Fatalf("loot = %d, want cap of %d", len(s.Loot), MaxLootItems)
	}
}

func TestClientNeverSpawnsLoot(t *testing.T) {
	s := newBareSim()
	s.Mode = ModeClient
	s.now = 10 * LootSpawnInterval

	s.UpdateLootAndZone(1.0 / 60)

	if len(s.Loot) != 0 {
		t.Fatal("client-side sim originated loot")
	}
}

func TestDeadCombatantCannotPickUp(t *testing.T) {
	s := newBareSim()
	s.P1.HP = 0
	s.Loot = append(s.Loot, &LootItem{ID: "m", Pos: s.P1.Pos, Radius: LootRadius, Kind: ItemMedkit, Value: MedkitValue})

	s.resolvePickups()

	if len(s.Loot) != 1 {
		t.Fatal("a dead combatant consumed loot")
	}
}

func TestWeightedKindSelectionCoversCatalog(t *testing.T) {
	s := newBareSim()
	seen := map[ItemKind]bool{}
	for i := 0; i < 2000; i++ {
		seen[s.pickLootKind()] = true
	}
	for _, lw := range lootWeights {
		if !seen[lw.kind] {
			t.Fatalf("kind %v never selected in 2000 draws", lw.kind)
		}
	}
}

func TestPlacedLootAvoidsWalls(t *testing.T) {
	s := newBareSim()
	s.Walls = GenerateWalls(s.rng)

	blocked := 0
	for i := 0; i < 50; i++ {
		p := s.placeLoot()
		if s.circleBlocked(p, LootRadius) {
			blocked++
		}
	}
	// Bounded retries accept the last candidate, so a rare collision is
	// tolerated but it must not be the norm.
	if blocked > 5 {
		t.Fatalf("%d/50 placements landed in walls", blocked)
	}
}
