package geom

import (
	"math"
	"testing"
)

// TestVecNormalize tests unit vector computation
func TestVecNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec
		want Vec
	}{
		{"unit x", Vec{5, 0}, Vec{1, 0}},
		{"unit y", Vec{0, -3}, Vec{0, -1}},
		{"zero stays zero", Vec{0, 0}, Vec{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestAngleDiff tests signed shortest-arc rotation
func TestAngleDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"zero", 0, 0, 0},
		{"quarter turn", 0, math.Pi / 2, math.Pi / 2},
		{"wraps positive", math.Pi - 0.1, -math.Pi + 0.1, 0.2},
		{"wraps negative", -math.Pi + 0.1, math.Pi - 0.1, -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleDiff(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleDiff(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestLerpAngle tests interpolation across the pi boundary
func TestLerpAngle(t *testing.T) {
	got := LerpAngle(math.Pi-0.1, -math.Pi+0.1, 0.5)
	want := math.Pi // midpoint of the short way around
	if math.Abs(NormalizeAngle(got-want)) > 1e-9 {
		t.Errorf("LerpAngle across boundary = %v, want %v", got, want)
	}
}

// TestCirclesOverlap tests circle-circle intersection
func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name   string
		c1     Vec
		r1     float64
		c2     Vec
		r2     float64
		expect bool
	}{
		{"overlapping", Vec{0, 0}, 10, Vec{15, 0}, 10, true},
		{"touching is not overlap", Vec{0, 0}, 10, Vec{20, 0}, 10, false},
		{"far apart", Vec{0, 0}, 5, Vec{100, 100}, 5, false},
		{"contained", Vec{0, 0}, 50, Vec{5, 5}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.c1, tt.r1, tt.c2, tt.r2); got != tt.expect {
				t.Errorf("CirclesOverlap = %v, want %v", got, tt.expect)
			}
		})
	}
}

// TestCircleRectOverlap tests circle vs axis-aligned rectangle
func TestCircleRectOverlap(t *testing.T) {
	rectCenter := Vec{100, 100}
	w, h := 40.0, 20.0

	tests := []struct {
		name   string
		c      Vec
		r      float64
		expect bool
	}{
		{"center inside", Vec{100, 100}, 1, true},
		{"touching edge from outside", Vec{130, 100}, 10, false},
		{"overlapping edge", Vec{128, 100}, 10, true},
		{"near corner outside", Vec{125, 115}, 5, false},
		{"near corner overlapping", Vec{123, 113}, 5, true},
		{"far away", Vec{0, 0}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircleRectOverlap(tt.c, tt.r, rectCenter, w, h); got != tt.expect {
				t.Errorf("CircleRectOverlap(%v, r=%v) = %v, want %v", tt.c, tt.r, got, tt.expect)
			}
		})
	}
}

// TestSegmentIntersectsRect tests swept-path vs axis-aligned rectangle
func TestSegmentIntersectsRect(t *testing.T) {
	rectCenter := Vec{300, 100}
	w, h := 30.0, 200.0

	tests := []struct {
		name   string
		a, b   Vec
		expect bool
	}{
		{"crosses straight through", Vec{200, 100}, Vec{360, 100}, true},
		{"ends inside", Vec{200, 100}, Vec{300, 100}, true},
		{"entirely inside", Vec{295, 100}, Vec{305, 100}, true},
		{"stops short", Vec{200, 100}, Vec{280, 100}, false},
		{"passes beside", Vec{200, 250}, Vec{400, 250}, false},
		{"diagonal through corner region", Vec{270, -20}, Vec{330, 20}, true},
		{"degenerate point outside", Vec{200, 100}, Vec{200, 100}, false},
		{"degenerate point inside", Vec{300, 100}, Vec{300, 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersectsRect(tt.a, tt.b, rectCenter, w, h); got != tt.expect {
				t.Errorf("SegmentIntersectsRect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expect)
			}
		})
	}
}

// TestSegmentIntersectsCircle tests swept-path vs circle
func TestSegmentIntersectsCircle(t *testing.T) {
	center := Vec{300, 100}
	r := 36.0

	tests := []struct {
		name   string
		a, b   Vec
		expect bool
	}{
		{"crosses straight through", Vec{200, 100}, Vec{400, 100}, true},
		{"grazes inside radius", Vec{200, 130}, Vec{400, 130}, true},
		{"passes outside radius", Vec{200, 140}, Vec{400, 140}, false},
		{"stops short", Vec{200, 100}, Vec{260, 100}, false},
		{"starts inside", Vec{300, 100}, Vec{500, 100}, true},
		{"degenerate point outside", Vec{200, 100}, Vec{200, 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersectsCircle(tt.a, tt.b, center, r); got != tt.expect {
				t.Errorf("SegmentIntersectsCircle(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expect)
			}
		})
	}
}

// TestClamp tests scalar clamping
func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("in-range value should pass through")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("below range should clamp to lo")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("above range should clamp to hi")
	}
}
