package game

import (
	"math/rand"
	"sync"

	"zoneclash/internal/geom"
)

// Mode selects who owns which parts of the simulation.
type Mode int

const (
	// ModeSolo runs everything locally: local player vs bot.
	ModeSolo Mode = iota
	// ModeHost runs the authoritative PvP sim and broadcasts state.
	ModeHost
	// ModeClient predicts locally and yields to host snapshots.
	ModeClient
)

// String returns a readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeSolo:
		return "solo"
	case ModeHost:
		return "host"
	case ModeClient:
		return "client"
	default:
		return "unknown"
	}
}

// Seat identifiers. P1 is the local/host seat, P2 the opponent.
const (
	SeatP1 = "p1"
	SeatP2 = "p2"
)

// StatsFunc receives periodic HUD stats from the tick loop.
type StatsFunc func(snap *Snapshot)

// Sim is one complete match simulation. All mutation happens on the tick
// goroutine; concurrent readers use the snapshot pool.
type Sim struct {
	Mode Mode

	P1 *Combatant
	P2 *Combatant

	Bullets []*Bullet
	Walls   []*Wall
	Loot    []*LootItem

	ZoneCenter geom.Vec

	Over      bool
	Winner    string // seat ID, or "" for a draw
	forfeited bool

	now  float64 // sim clock, ms since match start
	tick uint64
	seed int64

	rng    *rand.Rand
	events *EventLog
	bot    *BotController

	lastLootSpawnAt float64
	lastStatsAt     float64
	lastZoneRadius  float64
	lootSeq         uint64

	mailbox   *InputMailbox
	Snapshots *SnapshotPool

	statsFn StatsFunc
}

// NewSim creates a match. The seed drives every random decision (spread,
// loot, bot rolls, obstacle layout) so two sims with the same seed and input
// sequence evolve identically.
func NewSim(mode Mode, seed int64) *Sim {
	rng := rand.New(rand.NewSource(seed))

	s := &Sim{
		Mode:       mode,
		seed:       seed,
		rng:        rng,
		events:     NewEventLog(),
		Walls:      GenerateWalls(rng),
		ZoneCenter: geom.Vec{X: ArenaWidth / 2, Y: ArenaHeight / 2},
		mailbox:    NewInputMailbox(),
		Snapshots:  NewSnapshotPool(),
		Bullets:    make([]*Bullet, 0, MaxBullets),
		Loot:       make([]*LootItem, 0, MaxLootItems),
	}
	s.lastZoneRadius = ZoneInitialRadius

	s.P1 = NewCombatant(SeatP1, PlayerSpawn(), false)
	s.P2 = NewCombatant(SeatP2, EnemySpawn(), mode == ModeSolo)
	if mode == ModeSolo {
		s.bot = NewBotController(rng)
	}
	return s
}

// EventLog exposes the match event log for lifecycle control.
func (s *Sim) EventLog() *EventLog { return s.events }

// SetStatsFunc installs the periodic stats callback. Call before the loop
// starts.
func (s *Sim) SetStatsFunc(fn StatsFunc) { s.statsFn = fn }

// Mailbox exposes the input mailbox for the seats.
func (s *Sim) Mailbox() *InputMailbox { return s.mailbox }

// Now returns the sim clock in ms.
func (s *Sim) Now() float64 { return s.now }

// TickNum returns the current tick number.
func (s *Sim) TickNum() uint64 { return s.tick }

func (s *Sim) combatants() []*Combatant {
	return []*Combatant{s.P1, s.P2}
}

func (s *Sim) opponentOf(c *Combatant) *Combatant {
	if c == s.P1 {
		return s.P2
	}
	return s.P1
}

// SeatByID resolves a seat identifier to its combatant.
func (s *Sim) SeatByID(id string) *Combatant {
	if id == SeatP2 {
		return s.P2
	}
	return s.P1
}

// Tick advances the simulation by dt seconds. Order is fixed: input, per-
// combatant integration, firing, projectiles, loot and zone, win check,
// snapshot publish. dt is clamped so a stalled host cannot teleport entities.
func (s *Sim) Tick(dt float64) {
	if s.Over {
		return
	}
	if dt > MaxDeltaMs/1000 {
		dt = MaxDeltaMs / 1000
	}
	s.tick++
	s.now += dt * 1000
	s.events.Emit(EventTick, s.tick, "", TickPayload{RNGSeed: s.seed, DeltaTimeMs: dt * 1000})

	in1 := s.mailbox.Take(SeatP1)
	var in2 Intent
	if s.bot != nil {
		in2 = s.bot.Decide(s.P2, s.P1, s.Loot, s.now)
	} else {
		in2 = s.mailbox.Take(SeatP2)
	}

	fire1 := s.UpdateCombatant(s.P1, in1, dt)
	fire2 := s.UpdateCombatant(s.P2, in2, dt)

	if fire1 {
		s.Fire(s.P1, s.now)
	}
	if fire2 {
		s.Fire(s.P2, s.now)
	}

	s.AdvanceBullets(dt)
	s.UpdateLootAndZone(dt)
	s.emitZoneShrink()
	s.checkWinCondition()

	s.Snapshots.Produce(s)
	s.maybePushStats()
}

// emitZoneShrink logs the zone radius at a coarse granularity once the
// shrink is underway.
func (s *Sim) emitZoneShrink() {
	r := ZoneRadius(s.now)
	if s.lastZoneRadius-r >= 20 {
		s.lastZoneRadius = r
		s.events.Emit(EventZoneShrink, s.tick, "", map[string]float64{"radius": r})
	}
}

// checkWinCondition ends the match on a death or on the match timer. A timer
// expiry awards the healthier seat, or a draw on exact parity. Only an
// authority runs it: the network client's predicted state never decides the
// outcome, its terminal flag comes from State and GameOver messages.
func (s *Sim) checkWinCondition() {
	if s.Over || s.Mode == ModeClient {
		return
	}

	p1Dead, p2Dead := !s.P1.Alive(), !s.P2.Alive()
	switch {
	case p1Dead && p2Dead:
		s.finish("")
	case p1Dead:
		s.finish(SeatP2)
	case p2Dead:
		s.finish(SeatP1)
	case s.now >= MatchDuration:
		switch {
		case s.P1.HP > s.P2.HP:
			s.finish(SeatP1)
		case s.P2.HP > s.P1.HP:
			s.finish(SeatP2)
		default:
			s.finish("")
		}
	}
}

// Forfeit ends the match immediately, awarding the seat's opponent. Used
// when a networked seat disconnects or times out.
func (s *Sim) Forfeit(seat string) {
	if s.Over {
		return
	}
	s.forfeited = true
	winner := SeatP1
	if seat == SeatP1 {
		winner = SeatP2
	}
	s.finish(winner)
}

// Forfeited reports whether the match ended by forfeit.
func (s *Sim) Forfeited() bool { return s.forfeited }

func (s *Sim) finish(winner string) {
	s.Over = true
	s.Winner = winner
	s.events.Emit(EventMatchEnd, s.tick, winner, MatchEndPayload{
		Winner:  winner,
		Elapsed: s.now,
	})
}

func (s *Sim) maybePushStats() {
	if s.statsFn == nil || s.now-s.lastStatsAt < StatsInterval {
		return
	}
	s.lastStatsAt = s.now
	s.statsFn(s.Snapshots.Latest())
}

// SetWalls replaces the arena layout. The client uses this to adopt the
// host's generated arena from the Init handshake.
func (s *Sim) SetWalls(walls []*Wall) {
	s.Walls = walls
}

// ApplySnapshot overwrites live state with an authoritative snapshot. The
// last snapshot always wins over local prediction, except the local seat's
// aim angle, which stays under local control so aiming never feels laggy.
func (s *Sim) ApplySnapshot(snap *Snapshot, localID string) {
	for _, cs := range snap.Combatants {
		c := s.SeatByID(cs.ID)
		keepAngle := c.Angle
		c.Pos = cs.Pos
		c.Vel = cs.Vel
		c.Angle = cs.Angle
		c.HP = cs.HP
		c.MaxHP = cs.MaxHP
		c.Armor = cs.Armor
		c.Weapon = WeaponIDFromString(cs.Weapon)
		c.Ammo = cs.Ammo
		c.Reloading = cs.Reloading
		if cs.ID == localID {
			c.Angle = keepAngle
		}
	}

	s.Bullets = s.Bullets[:0]
	for _, bs := range snap.Bullets {
		s.Bullets = append(s.Bullets, &Bullet{
			ID: bs.ID, OwnerID: bs.OwnerID, Pos: bs.Pos, Color: bs.Color, Radius: 3,
		})
	}

	s.Loot = s.Loot[:0]
	for _, ls := range snap.Loot {
		item := &LootItem{
			ID: ls.ID, Pos: ls.Pos, Radius: LootRadius,
			Kind: ItemKindFromString(ls.Kind),
		}
		if item.Kind == ItemWeapon {
			item.Weapon = WeaponIDFromString(ls.Weapon)
		}
		s.Loot = append(s.Loot, item)
	}

	s.ZoneCenter = snap.ZoneCenter
	s.Over = snap.Over
	s.Winner = snap.Winner
}

// InputMailbox holds the latest intent per seat. Writers (input handlers,
// network receivers) overwrite at any time; the tick reads each seat exactly
// once per step so an intent can never change mid-tick.
type InputMailbox struct {
	mu      sync.Mutex
	intents map[string]Intent
	lastAt  map[string]float64
}

// NewInputMailbox creates an empty mailbox.
func NewInputMailbox() *InputMailbox {
	return &InputMailbox{
		intents: make(map[string]Intent, 2),
		lastAt:  make(map[string]float64, 2),
	}
}

// Put stores the latest intent for a seat.
func (m *InputMailbox) Put(id string, in Intent) {
	m.mu.Lock()
	m.intents[id] = in
	m.mu.Unlock()
}

// PutAt stores an intent and records the arrival time (sim or wall ms),
// for input-timeout detection on the host.
func (m *InputMailbox) PutAt(id string, in Intent, at float64) {
	m.mu.Lock()
	m.intents[id] = in
	m.lastAt[id] = at
	m.mu.Unlock()
}

// Take returns the latest intent for a seat. Held intents persist: keys keep
// acting until the device reports a change.
func (m *InputMailbox) Take(id string) Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intents[id]
}

// LastInputAt returns when the seat last wrote, or -1 if it never has.
func (m *InputMailbox) LastInputAt(id string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if at, ok := m.lastAt[id]; ok {
		return at
	}
	return -1
}
