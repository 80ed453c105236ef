package game

import (
	"math"
	"testing"

	"zoneclash/internal/geom"
)

// aimSim positions the opponent due east of the aimer at the given distance,
// so the exact target angle is 0.
func aimSim(dist float64) *Sim {
	s := newBareSim()
	s.P1.Pos = geom.Vec{X: 400, Y: 400}
	s.P2.Pos = geom.Vec{X: 400 + dist, Y: 400}
	return s
}

func TestSnapAcquiresInsideCone(t *testing.T) {
	s := aimSim(300)
	c := s.P1
	c.Angle = 0.1 // well inside the acquire cone

	blended, forceFire := s.applyAimAssist(c, 0.1, 0.6)

	if !c.Snapped {
		t.Fatal("expected snap to acquire inside the cone")
	}
	want := 0.1 + (0-0.1)*SnapStrength
	if math.Abs(blended-want) > 1e-9 {
		t.Fatalf("blended angle = %v, want %v", blended, want)
	}
	if !forceFire {
		t.Fatal("snapped at 0.6 deflection should force fire (threshold 0.45)")
	}
}

func TestNoAcquireAtExactConeBoundary(t *testing.T) {
	s := aimSim(300)
	c := s.P1
	c.Angle = SnapAcquireCone // exactly on the boundary

	got, forceFire := s.applyAimAssist(c, c.Angle, 1)

	if c.Snapped {
		t.Fatal("the exact cone boundary must not acquire")
	}
	if got != c.Angle || forceFire {
		t.Fatal("unsnapped aim must pass through unchanged")
	}
}

func TestMaintainConeHysteresis(t *testing.T) {
	s := aimSim(300)
	c := s.P1
	c.Snapped = true

	// Between acquire (18 deg) and maintain (34 deg): snap holds.
	c.Angle = 0.45
	s.applyAimAssist(c, c.Angle, 1)
	if !c.Snapped {
		t.Fatal("snap dropped inside the maintain cone")
	}

	// Past the maintain cone: snap drops.
	c.Angle = 0.7
	s.applyAimAssist(c, c.Angle, 1)
	if c.Snapped {
		t.Fatal("snap survived outside the maintain cone")
	}
}

func TestSnapDropsOutOfRange(t *testing.T) {
	s := aimSim(SnapMaxRange + 50)
	c := s.P1
	c.Snapped = true
	c.Angle = 0

	got, forceFire := s.applyAimAssist(c, 0.2, 1)

	if c.Snapped || forceFire {
		t.Fatal("snap must drop past max range")
	}
	if got != 0.2 {
		t.Fatalf("angle = %v, want raw 0.2", got)
	}
}

func TestSnapDropsOnDeadTarget(t *testing.T) {
	s := aimSim(200)
	s.P2.HP = 0
	c := s.P1
	c.Snapped = true

	s.applyAimAssist(c, 0, 1)
	if c.Snapped {
		t.Fatal("snap survived target death")
	}
}

func TestSnapLowersFireThreshold(t *testing.T) {
	s := aimSim(300)
	c := s.P1
	c.Angle = 0
	c.Snapped = true

	if _, fire := s.applyAimAssist(c, 0, 0.5); !fire {
		t.Fatal("0.5 deflection should fire while snapped")
	}
	if _, fire := s.applyAimAssist(c, 0, 0.4); fire {
		t.Fatal("0.4 deflection is below even the snapped threshold")
	}
}
