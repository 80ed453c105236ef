package game

import (
	"math/rand"
	"testing"

	"zoneclash/internal/geom"
)

// newBareSim builds a sim with no walls and fixed spawns, for tests that
// need exact geometry. The event log stays unstarted so Emit is a no-op.
func newBareSim() *Sim {
	s := &Sim{
		Mode:       ModeHost,
		rng:        rand.New(rand.NewSource(1)),
		events:     NewEventLog(),
		mailbox:    NewInputMailbox(),
		Snapshots:  NewSnapshotPool(),
		ZoneCenter: geom.Vec{X: 800, Y: 600},
	}
	s.lastZoneRadius = ZoneInitialRadius
	s.P1 = NewCombatant(SeatP1, geom.Vec{X: 400, Y: 400}, false)
	s.P2 = NewCombatant(SeatP2, geom.Vec{X: 700, Y: 400}, false)
	return s
}

func TestTickClampsDelta(t *testing.T) {
	s := NewSim(ModeHost, 1)
	s.Tick(1.0) // a full second, way past the clamp
	if got := s.Now(); got != MaxDeltaMs {
		t.Fatalf("sim clock = %v ms, want clamp at %v", got, MaxDeltaMs)
	}
}

func TestWinOnDeath(t *testing.T) {
	s := NewSim(ModeHost, 1)
	s.P2.HP = 0
	s.Tick(1.0 / 60)

	if !s.Over {
		t.Fatal("match should be over after a death")
	}
	if s.Winner != SeatP1 {
		t.Fatalf("winner = %q, want %q", s.Winner, SeatP1)
	}
}

func TestTickAfterOverIsNoop(t *testing.T) {
	s := NewSim(ModeHost, 1)
	s.P2.HP = 0
	s.Tick(1.0 / 60)
	tick, now := s.TickNum(), s.Now()

	s.Tick(1.0 / 60)
	if s.TickNum() != tick || s.Now() != now {
		t.Fatal("sim advanced after terminal state")
	}
}

func TestTimerExpiryAwardsHealthierSeat(t *testing.T) {
	tests := []struct {
		name       string
		hp1, hp2   float64
		wantWinner string
	}{
		{"p1 healthier", 80, 60, SeatP1},
		{"p2 healthier", 40, 70, SeatP2},
		{"exact parity is a draw", 50, 50, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newBareSim()
			s.now = MatchDuration
			s.P1.HP = tt.hp1
			s.P2.HP = tt.hp2
			s.checkWinCondition()

			if !s.Over {
				t.Fatal("match should end on timer expiry")
			}
			if s.Winner != tt.wantWinner {
				t.Fatalf("winner = %q, want %q", s.Winner, tt.wantWinner)
			}
		})
	}
}

func TestSoloBotMoves(t *testing.T) {
	s := NewSim(ModeSolo, 2)
	for i := 0; i < 120; i++ {
		s.Tick(1.0 / 60)
	}
	if s.P2.Vel.Len() == 0 {
		t.Fatal("bot never produced movement")
	}
}

func TestSnapshotPublishedEachTick(t *testing.T) {
	s := NewSim(ModeHost, 1)
	s.Tick(1.0 / 60)

	snap := s.Snapshots.Latest()
	if snap.Tick != 1 {
		t.Fatalf("snapshot tick = %d, want 1", snap.Tick)
	}
	if len(snap.Combatants) != 2 {
		t.Fatalf("snapshot combatants = %d, want 2", len(snap.Combatants))
	}
	if snap.ZoneRadius != ZoneInitialRadius {
		t.Fatalf("snapshot zone radius = %v, want %v", snap.ZoneRadius, ZoneInitialRadius)
	}
}

func TestApplySnapshotPreservesLocalAim(t *testing.T) {
	host := NewSim(ModeHost, 1)
	host.P1.Angle = 0.3
	host.P2.Angle = 2.0
	snap := host.Snapshots.Produce(host)

	client := NewSim(ModeClient, 1)
	client.P1.Angle = 1.2
	client.ApplySnapshot(snap, SeatP1)

	if client.P1.Angle != 1.2 {
		t.Fatalf("local aim angle = %v, want 1.2 (preserved)", client.P1.Angle)
	}
	if client.P2.Angle != 2.0 {
		t.Fatalf("remote angle = %v, want 2.0 (from snapshot)", client.P2.Angle)
	}
}

func TestApplySnapshotOverwritesState(t *testing.T) {
	host := NewSim(ModeHost, 1)
	host.P2.HP = 37
	host.P2.Armor = 10
	host.Loot = append(host.Loot, &LootItem{ID: "loot_1", Pos: geom.Vec{X: 500, Y: 500}, Radius: LootRadius, Kind: ItemMedkit, Value: MedkitValue})
	snap := host.Snapshots.Produce(host)

	client := NewSim(ModeClient, 2)
	client.ApplySnapshot(snap, SeatP1)

	if client.P2.HP != 37 || client.P2.Armor != 10 {
		t.Fatalf("remote hp/armor = %v/%v, want 37/10", client.P2.HP, client.P2.Armor)
	}
	if len(client.Loot) != 1 || client.Loot[0].Kind != ItemMedkit {
		t.Fatalf("loot not adopted from snapshot: %+v", client.Loot)
	}
}

func TestClientPredictionNeverSelfTerminates(t *testing.T) {
	s := NewSim(ModeClient, 1)
	s.P2.HP = 0 // a mispredicted local kill
	s.Tick(1.0 / 60)

	if s.Over {
		t.Fatal("client prediction decided the match outcome")
	}

	// Prediction keeps running through the misprediction.
	s.Tick(1.0 / 60)
	if s.TickNum() != 2 {
		t.Fatalf("tick = %d, want 2 (prediction frozen)", s.TickNum())
	}
}

func TestApplySnapshotClearsStaleTerminalState(t *testing.T) {
	host := NewSim(ModeHost, 1)
	snap := host.Snapshots.Produce(host) // both alive, match running

	client := NewSim(ModeClient, 1)
	client.Over = true
	client.Winner = SeatP1

	client.ApplySnapshot(snap, SeatP1)
	if client.Over || client.Winner != "" {
		t.Fatalf("over=%v winner=%q, want the authoritative running state", client.Over, client.Winner)
	}

	client.Tick(1.0 / 60)
	if client.TickNum() == 0 {
		t.Fatal("prediction still frozen after the authoritative snapshot")
	}
}

func TestMailboxLatestWins(t *testing.T) {
	m := NewInputMailbox()
	m.Put(SeatP1, Intent{Move: geom.Vec{X: 1}})
	m.Put(SeatP1, Intent{Move: geom.Vec{Y: -1}})

	got := m.Take(SeatP1)
	if got.Move != (geom.Vec{Y: -1}) {
		t.Fatalf("mailbox returned %+v, want latest intent", got.Move)
	}

	// Held inputs persist across reads.
	if again := m.Take(SeatP1); again.Move != (geom.Vec{Y: -1}) {
		t.Fatalf("mailbox dropped held intent: %+v", again.Move)
	}
}

func TestMailboxTracksInputTime(t *testing.T) {
	m := NewInputMailbox()
	if m.LastInputAt(SeatP2) != -1 {
		t.Fatal("expected -1 for a seat that never wrote")
	}
	m.PutAt(SeatP2, Intent{Fire: true}, 1234)
	if got := m.LastInputAt(SeatP2); got != 1234 {
		t.Fatalf("last input at = %v, want 1234", got)
	}
}

func TestStatsCallbackThrottled(t *testing.T) {
	s := NewSim(ModeHost, 1)
	calls := 0
	s.SetStatsFunc(func(snap *Snapshot) {
		calls++
		if snap == nil {
			t.Fatal("stats callback received nil snapshot")
		}
	})

	// One second of ticks at 60 Hz: the callback fires once per StatsInterval,
	// not once per tick.
	for i := 0; i < 60; i++ {
		s.Tick(1.0 / 60)
	}
	if calls < 3 || calls > 5 {
		t.Fatalf("stats callback fired %d times over 1s, want ~%d", calls, int(1000/StatsInterval))
	}
}

func TestDeterministicSims(t *testing.T) {
	a := NewSim(ModeSolo, 42)
	b := NewSim(ModeSolo, 42)

	in := Intent{Move: geom.Vec{X: 1, Y: 0.3}, Aim: geom.Vec{X: 1}, Fire: true}
	for i := 0; i < 180; i++ {
		a.Mailbox().Put(SeatP1, in)
		b.Mailbox().Put(SeatP1, in)
		a.Tick(1.0 / 60)
		b.Tick(1.0 / 60)
	}

	if a.P1.Pos != b.P1.Pos || a.P2.Pos != b.P2.Pos {
		t.Fatalf("same seed and inputs diverged: %+v vs %+v", a.P1.Pos, b.P1.Pos)
	}
	if a.P1.HP != b.P1.HP || a.P2.HP != b.P2.HP {
		t.Fatalf("hp diverged: %v/%v vs %v/%v", a.P1.HP, a.P2.HP, b.P1.HP, b.P2.HP)
	}
	if len(a.Bullets) != len(b.Bullets) {
		t.Fatalf("bullet counts diverged: %d vs %d", len(a.Bullets), len(b.Bullets))
	}
}
