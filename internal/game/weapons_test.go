package game

import "testing"

func TestWeaponCatalog(t *testing.T) {
	ids := []WeaponID{WeaponPistol, WeaponSMG, WeaponShotgun, WeaponRifle, WeaponSniper}
	for _, id := range ids {
		w, ok := Weapons[id]
		if !ok {
			t.Fatalf("weapon %v missing from catalog", id)
		}
		if w.ClipSize <= 0 || w.Damage <= 0 || w.Range <= 0 || w.Pellets <= 0 {
			t.Fatalf("weapon %v has degenerate stats: %+v", id, w)
		}
		if w.BotRateMult < 1 {
			t.Fatalf("weapon %v lets bots outpace players: %v", id, w.BotRateMult)
		}
	}
}

func TestGetWeaponFallsBackToPistol(t *testing.T) {
	if got := GetWeapon(WeaponID(99)); got.ID != WeaponPistol {
		t.Fatalf("unknown id resolved to %v, want pistol", got.ID)
	}
}

func TestAllWeaponsOrdered(t *testing.T) {
	all := AllWeapons()
	if len(all) != len(Weapons) {
		t.Fatalf("AllWeapons returned %d entries, want %d", len(all), len(Weapons))
	}
	for i, w := range all {
		if w.ID != WeaponID(i) {
			t.Fatalf("index %d holds %v, want catalog order", i, w.ID)
		}
	}
}

func TestWeaponNameRoundTrip(t *testing.T) {
	for id := WeaponPistol; id <= WeaponSniper; id++ {
		if got := WeaponIDFromString(id.String()); got != id {
			t.Fatalf("%v -> %q -> %v", id, id.String(), got)
		}
	}
	if got := WeaponIDFromString("plasma"); got != WeaponPistol {
		t.Fatalf("unknown name resolved to %v, want pistol", got)
	}
}
