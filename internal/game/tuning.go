package game

import "math"

// Movement tuning. Speeds are px/s, times are ms unless noted.
const (
	BaseMoveSpeed   = 260.0
	SprintMult      = 1.55
	SprintDuration  = 2000.0 // ms of sprint per activation
	SprintCooldown  = 4000.0 // ms before sprint can be re-triggered
	AccelRate       = 10.0   // per-second rate toward a nonzero target
	TurnAccelRate   = 16.0   // fastest: reversing direction on an axis
	FrictionRate    = 7.0    // decelerating toward zero
	VelocityEpsilon = 0.5    // px/s below which velocity snaps to zero

	WallBounce  = 0.25 // velocity inversion factor on a blocked axis
	SlideDamp   = 0.7  // damping on the free axis while sliding along a wall
	UnstuckIter = 3    // corrective push passes per tick
)

// Health regeneration. Damage resets the accumulator; healing starts only
// after RegenDelay of uninterrupted peace and then ticks every RegenInterval.
const (
	RegenDelay    = 4000.0 // ms without damage before healing starts
	RegenInterval = 500.0  // ms between heal ticks once started
	RegenAmount   = 3.0    // hp per heal tick
)

// Aiming.
const (
	AimDeadzone       = 0.25 // stick magnitude below which aim input is ignored
	AutoFireThreshold = 0.85 // stick magnitude that implies firing intent
	TurnSpeed         = 14.0 // angular smoothing rate, per second
)

// Aim assist. The acquire cone is narrower than the maintain cone so a snap
// does not flicker at the boundary.
const (
	SnapMaxRange      = 520.0
	SnapAcquireCone   = 18.0 * math.Pi / 180.0
	SnapMaintainCone  = 34.0 * math.Pi / 180.0
	SnapStrength      = 0.65 // blend between stick angle and exact target angle
	SnapFireThreshold = 0.45 // lowered firing threshold while snapped
)

// Combatant defaults.
const (
	CombatantRadius = 22.0
	MaxArmor        = 50.0
	DefaultMaxHP    = 100.0
)

// Bot tuning. Accuracy is the primary difficulty lever and is deliberately
// well below 1.0 so bots stay beatable.
const (
	BotAccuracy        = 0.7
	BotLeadFactor      = 0.12
	BotFireRangeMult   = 1.1
	BotSearchRadius    = 450.0
	BotDangerDistance  = 320.0
	BotLowHPFrac       = 0.35
	BotCriticalHPFrac  = 0.2
	BotStrafeFlipHz    = 0.35 // sine-driven strafe direction flips
	BotStuckSpeed      = 12.0 // px/s below which the bot counts as stuck
	BotStuckDelay      = 600.0
	BotOptimalBandFrac = 0.15 // width of the optimal-range band
)

// Loot director.
const (
	LootSpawnInterval = 6000.0 // ms between spawn attempts
	MaxLootItems      = 8
	LootRadius        = 16.0
	LootPlaceAttempts = 12
	BotDropChance     = 0.15 // consumable drop on bot damage, solo mode only
	MedkitValue       = 35.0
	MegaHealthValue   = 100.0
	ShieldValue       = 25.0
)

// Arena.
const (
	ArenaWidth    = 1600.0
	ArenaHeight   = 1200.0
	BoundaryDepth = 400.0 // thickness of the oversized boundary rectangles
	ObstacleCount = 9
	SpawnMargin   = 120.0
)

// Zone.
const (
	ZoneInitialRadius  = 880.0
	ZoneShrinkStart    = 45000.0 // ms of full-size zone
	ZoneShrinkDuration = 60000.0 // ms to reach minimum radius
	ZoneMinRadius      = 180.0
	ZoneDamagePerSec   = 8.0
)

// Simulation pacing.
const (
	DefaultTickRate = 60
	MaxDeltaMs      = 100.0    // clamp on a single integration step
	MatchDuration   = 180000.0 // ms until time runs out
	MaxBullets      = 128
	StatsInterval   = 250.0 // ms between HUD stats pushes
)
