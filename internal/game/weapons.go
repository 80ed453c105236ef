package game

// WeaponID identifies a weapon in the static catalog.
type WeaponID int

const (
	WeaponPistol WeaponID = iota
	WeaponSMG
	WeaponShotgun
	WeaponRifle
	WeaponSniper
)

// String returns the wire/display name of the weapon.
func (w WeaponID) String() string {
	switch w {
	case WeaponPistol:
		return "pistol"
	case WeaponSMG:
		return "smg"
	case WeaponShotgun:
		return "shotgun"
	case WeaponRifle:
		return "rifle"
	case WeaponSniper:
		return "sniper"
	default:
		return "unknown"
	}
}

// WeaponIDFromString maps a wire name back to a WeaponID, defaulting to the pistol.
func WeaponIDFromString(s string) WeaponID {
	switch s {
	case "smg":
		return WeaponSMG
	case "shotgun":
		return WeaponShotgun
	case "rifle":
		return WeaponRifle
	case "sniper":
		return WeaponSniper
	default:
		return WeaponPistol
	}
}

// Weapon holds the static per-weapon stats.
type Weapon struct {
	ID           WeaponID
	Name         string
	Damage       float64 // per bullet (per pellet for the shotgun)
	FireInterval float64 // ms between shots
	ClipSize     int
	ReloadTime   float64 // ms
	Speed        float64 // projectile speed, px/s
	Spread       float64 // total spread arc, radians
	Range        float64 // px a bullet travels before expiring
	Pellets      int     // bullets per trigger pull
	BotRateMult  float64 // bot fire-interval multiplier (bots shoot slower)
	Color        string  // bullet tint, cosmetic only
}

// Weapons is the static catalog. Stats are authoritative on the host;
// clients only ever render them.
var Weapons = map[WeaponID]Weapon{
	WeaponPistol: {
		ID:           WeaponPistol,
		Name:         "Pistol",
		Damage:       12,
		FireInterval: 350,
		ClipSize:     12,
		ReloadTime:   1100,
		Speed:        900,
		Spread:       0.06,
		Range:        600,
		Pellets:      1,
		BotRateMult:  1.4,
		Color:        "#ffd54f",
	},
	WeaponSMG: {
		ID:           WeaponSMG,
		Name:         "SMG",
		Damage:       7,
		FireInterval: 110,
		ClipSize:     30,
		ReloadTime:   1500,
		Speed:        1000,
		Spread:       0.12,
		Range:        500,
		Pellets:      1,
		BotRateMult:  1.8,
		Color:        "#4fc3f7",
	},
	WeaponShotgun: {
		ID:           WeaponShotgun,
		Name:         "Shotgun",
		Damage:       9,
		FireInterval: 800,
		ClipSize:     6,
		ReloadTime:   1800,
		Speed:        800,
		Spread:       0.5,
		Range:        320,
		Pellets:      5,
		BotRateMult:  1.3,
		Color:        "#ff8a65",
	},
	WeaponRifle: {
		ID:           WeaponRifle,
		Name:         "Rifle",
		Damage:       18,
		FireInterval: 450,
		ClipSize:     15,
		ReloadTime:   1600,
		Speed:        1200,
		Spread:       0.03,
		Range:        700,
		Pellets:      1,
		BotRateMult:  1.5,
		Color:        "#aed581",
	},
	WeaponSniper: {
		ID:           WeaponSniper,
		Name:         "Sniper",
		Damage:       40,
		FireInterval: 1200,
		ClipSize:     5,
		ReloadTime:   2200,
		Speed:        1600,
		Spread:       0.005,
		Range:        1200,
		Pellets:      1,
		BotRateMult:  1.2,
		Color:        "#ce93d8",
	},
}

// GetWeapon returns a weapon by ID, defaulting to the pistol.
func GetWeapon(id WeaponID) Weapon {
	if w, ok := Weapons[id]; ok {
		return w
	}
	return Weapons[WeaponPistol]
}

// AllWeapons returns the catalog as a slice, ordered by ID.
func AllWeapons() []Weapon {
	weapons := make([]Weapon, 0, len(Weapons))
	for id := WeaponPistol; id <= WeaponSniper; id++ {
		weapons = append(weapons, Weapons[id])
	}
	return weapons
}
