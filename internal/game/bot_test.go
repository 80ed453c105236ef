package game

import (
	"math/rand"
	"testing"

	"zoneclash/internal/geom"
)

func botPair(dist float64) (*BotController, *Combatant, *Combatant) {
	b := NewBotController(rand.New(rand.NewSource(7)))
	self := NewCombatant("bot", geom.Vec{X: 400, Y: 400}, true)
	foe := NewCombatant("foe", geom.Vec{X: 400 + dist, Y: 400}, false)
	return b, self, foe
}

func TestBotApproachesWhenFar(t *testing.T) {
	// Pistol range 600, optimal band around 390 +- 90.
	b, self, foe := botPair(550)

	move := b.decideMovement(self, foe, nil, 1000)

	if b.State != BotApproaching {
		t.Fatalf("state = %v, want approaching", b.State)
	}
	toFoe := foe.Pos.Sub(self.Pos).Normalize()
	if move.X*toFoe.X+move.Y*toFoe.Y <= 0 {
		t.Fatalf("approach direction %+v points away from foe", move)
	}
}

func TestBotRetreatsWhenTooClose(t *testing.T) {
	b, self, foe := botPair(150)

	move := b.decideMovement(self, foe, nil, 1000)

	if b.State != BotRetreating {
		t.Fatalf("state = %v, want retreating", b.State)
	}
	if move.X >= 0 {
		t.Fatalf("retreat direction %+v should point away from foe", move)
	}
}

func TestBotStrafesInOptimalBand(t *testing.T) {
	b, self, foe := botPair(390)

	move := b.decideMovement(self, foe, nil, 1000)

	if b.State != BotStrafing {
		t.Fatalf("state = %v, want strafing", b.State)
	}
	if move.Len() == 0 {
		t.Fatal("strafing produced no movement")
	}
}

func TestBotFleesWhenHurtAndPressed(t *testing.T) {
	b, self, foe := botPair(200)
	self.HP = 30 // below the low threshold, foe is healthier

	move := b.decideMovement(self, foe, nil, 1000)

	if b.State != BotFleeing {
		t.Fatalf("state = %v, want fleeing", b.State)
	}
	if move.X >= 0 {
		t.Fatalf("flee direction %+v should point away from foe", move)
	}
}

func TestBotHoldsGroundWithAdvantage(t *testing.T) {
	b, self, foe := botPair(200)
	self.HP = 30
	foe.HP = 20 // bot is ahead on durability, no flee

	b.decideMovement(self, foe, nil, 1000)

	if b.State == BotFleeing {
		t.Fatal("bot fled while holding the durability advantage")
	}
}

func TestBotSeeksRestorativeWhenCritical(t *testing.T) {
	b, self, foe := botPair(390)
	self.HP = 15
	loot := []*LootItem{
		{ID: "ammo", Pos: geom.Vec{X: 410, Y: 400}, Kind: ItemAmmo},
		{ID: "med", Pos: geom.Vec{X: 400, Y: 600}, Kind: ItemMedkit},
	}

	move := b.decideMovement(self, foe, loot, 1000)

	if b.State != BotSeeking {
		t.Fatalf("state = %v, want seeking", b.State)
	}
	if move.Y <= 0 {
		t.Fatalf("seek direction %+v should head toward the medkit", move)
	}
}

func TestBotIgnoresDistantLoot(t *testing.T) {
	b, self, foe := botPair(390)
	self.HP = 15
	loot := []*LootItem{
		{ID: "med", Pos: geom.Vec{X: 400, Y: 400 + BotSearchRadius + 100}, Kind: ItemMedkit},
	}

	b.decideMovement(self, foe, loot, 1000)

	if b.State == BotSeeking {
		t.Fatal("bot chased loot beyond its search radius")
	}
}

func TestBotAimLeadsTarget(t *testing.T) {
	b, self, foe := botPair(300)
	foe.Vel = geom.Vec{Y: 200}

	got := b.decideAim(self, foe)

	want := foe.Pos.Add(foe.Vel.Scale(BotLeadFactor)).Sub(self.Pos).Angle()
	if got != want {
		t.Fatalf("aim = %v, want lead-adjusted %v", got, want)
	}
	direct := foe.Pos.Sub(self.Pos).Angle()
	if got == direct {
		t.Fatal("aim ignored target velocity")
	}
}

func TestBotFireGates(t *testing.T) {
	b, self, foe := botPair(300)

	t.Run("out of range", func(t *testing.T) {
		farFoe := NewCombatant("far", geom.Vec{X: 400 + 700, Y: 400}, false)
		if b.decideFire(self, farFoe, 1000) {
			t.Fatal("fired beyond weapon range")
		}
	})

	t.Run("reloading", func(t *testing.T) {
		self.Reloading = true
		if b.decideFire(self, foe, 1000) {
			t.Fatal("fired while reloading")
		}
		self.Reloading = false
	})

	t.Run("dead foe", func(t *testing.T) {
		foe.HP = 0
		if b.decideFire(self, foe, 1000) {
			t.Fatal("fired at a dead foe")
		}
		foe.HP = foe.MaxHP
	})

	t.Run("window consumed by a roll", func(t *testing.T) {
		b.nextShotAt = 0
		b.decideFire(self, foe, 1000)
		if b.nextShotAt <= 1000 {
			t.Fatal("firing decision did not consume the window")
		}
		if b.decideFire(self, foe, 1001) {
			t.Fatal("fired again inside the same window")
		}
	})
}

func TestBotStuckOverrideSweeps(t *testing.T) {
	b, self, _ := botPair(300)
	self.Vel = geom.Vec{} // intent says move, body is still
	want := geom.Vec{X: 1}

	// First observation arms the timer, the next past the delay schedules
	// the sweep, and the one after runs it.
	b.applyStuckOverride(self, want, 1000)
	b.applyStuckOverride(self, want, 1000+BotStuckDelay+1)
	move := b.applyStuckOverride(self, want, 1000+BotStuckDelay+2)

	if b.State != BotUnstuck {
		t.Fatalf("state = %v, want unstuck", b.State)
	}
	if move == want {
		t.Fatal("override did not change the movement direction")
	}
}

func TestBotMovingClearsStuckTimer(t *testing.T) {
	b, self, _ := botPair(300)
	self.Vel = geom.Vec{X: 100}

	b.applyStuckOverride(self, geom.Vec{X: 1}, 1000)
	if b.stuckSince != -1 {
		t.Fatal("stuck timer armed while moving at speed")
	}
}
