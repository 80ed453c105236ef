// Package geom provides the 2D vector math and collision primitives used
// by the simulation. Everything here is a pure function over value types.
package geom

import "math"

// Vec is a 2D float pair used for positions, velocities and directions.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Len returns the vector magnitude.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector, or the zero vector if v is zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Angle returns the direction of v in radians.
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle returns the unit vector pointing in direction a.
func FromAngle(a float64) Vec {
	return Vec{math.Cos(a), math.Sin(a)}
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NormalizeAngle wraps a into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from a to b, in (-pi, pi].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// LerpAngle interpolates from a toward b along the shortest arc by t in [0,1].
func LerpAngle(a, b, t float64) float64 {
	return NormalizeAngle(a + AngleDiff(a, b)*t)
}

// CirclesOverlap reports whether two circles intersect.
func CirclesOverlap(c1 Vec, r1 float64, c2 Vec, r2 float64) bool {
	r := r1 + r2
	dx := c2.X - c1.X
	dy := c2.Y - c1.Y
	return dx*dx+dy*dy < r*r
}

// CircleRectOverlap reports whether a circle intersects an axis-aligned
// rectangle given by its center and full width/height.
func CircleRectOverlap(c Vec, r float64, rectCenter Vec, w, h float64) bool {
	// Closest point on the rectangle to the circle center.
	cx := Clamp(c.X, rectCenter.X-w/2, rectCenter.X+w/2)
	cy := Clamp(c.Y, rectCenter.Y-h/2, rectCenter.Y+h/2)
	dx := c.X - cx
	dy := c.Y - cy
	return dx*dx+dy*dy < r*r
}

// PointInRect reports whether p lies inside the axis-aligned rectangle.
func PointInRect(p Vec, rectCenter Vec, w, h float64) bool {
	return p.X > rectCenter.X-w/2 && p.X < rectCenter.X+w/2 &&
		p.Y > rectCenter.Y-h/2 && p.Y < rectCenter.Y+h/2
}

// SegmentIntersectsCircle reports whether the segment a-b passes within r of
// center. Degenerate segments (a == b) reduce to a point-distance test.
func SegmentIntersectsCircle(a, b, center Vec, r float64) bool {
	ab := b.Sub(a)
	t := 0.0
	if denom := ab.X*ab.X + ab.Y*ab.Y; denom > 0 {
		t = Clamp(((center.X-a.X)*ab.X+(center.Y-a.Y)*ab.Y)/denom, 0, 1)
	}
	closest := a.Add(ab.Scale(t))
	return Dist(closest, center) < r
}

// SegmentIntersectsRect reports whether the segment a-b crosses the
// axis-aligned rectangle, including segments entirely inside it. Slab
// clipping per axis.
func SegmentIntersectsRect(a, b Vec, rectCenter Vec, w, h float64) bool {
	tmin, tmax := 0.0, 1.0
	if !clipSlab(a.X, b.X-a.X, rectCenter.X-w/2, rectCenter.X+w/2, &tmin, &tmax) {
		return false
	}
	if !clipSlab(a.Y, b.Y-a.Y, rectCenter.Y-h/2, rectCenter.Y+h/2, &tmin, &tmax) {
		return false
	}
	return tmin <= tmax
}

func clipSlab(p, d, lo, hi float64, tmin, tmax *float64) bool {
	if d == 0 {
		return p > lo && p < hi
	}
	t1 := (lo - p) / d
	t2 := (hi - p) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tmin {
		*tmin = t1
	}
	if t2 < *tmax {
		*tmax = t2
	}
	return *tmin <= *tmax
}
