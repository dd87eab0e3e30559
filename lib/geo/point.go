package geo

import (
	"fmt"
	"math"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p1 *Point) Equals(p2 *Point) bool {
	if p1 == nil {
		return p2 == nil
	} else if p2 == nil {
		return false
	}
	return (p1.X == p2.X) && (p1.Y == p2.Y)
}

func (p *Point) Copy() *Point {
	return &Point{X: p.X, Y: p.Y}
}

type Points []*Point

func (ps Points) Copy() Points {
	if ps == nil {
		return nil
	}
	out := make(Points, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Copy())
	}
	return out
}

func (ps Points) Equals(other Points) bool {
	if len(ps) != len(other) {
		return false
	}
	for i := range ps {
		if !ps[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

func (p *Point) ToString() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

func (points Points) ToString() string {
	strs := make([]string, 0, len(points))
	for _, p := range points {
		strs = append(strs, p.ToString())
	}
	return strings.Join(strs, ", ")
}

func (p1 *Point) DistanceTo(p2 *Point) float64 {
	return EuclideanDistance(p1.X, p1.Y, p2.X, p2.Y)
}

// Moves the given point by Vector
func (start *Point) AddVector(v Vector) *Point {
	return start.ToVector().Add(v).ToPoint()
}

// Creates a Vector of the size between start and endpoint, pointing to endpoint
func (start *Point) VectorTo(endpoint *Point) Vector {
	return endpoint.ToVector().Minus(start.ToVector())
}

// Creates a Vector pointing to point
func (endpoint *Point) ToVector() Vector {
	return []float64{endpoint.X, endpoint.Y}
}

// get the point of intersection between line segments u and v (or nil if they do not intersect)
func IntersectionPoint(u0, u1, v0, v1 *Point) *Point {
	// https://en.wikipedia.org/wiki/Intersection_(Euclidean_geometry)
	//
	// x = u0.X + s * (u1.X - u0.X)
	//   = v0.X + t * (v1.X - v0.X)
	// y = u0.Y + s * (u1.Y - u0.Y)
	//   = v0.Y + t * (v1.Y - v0.Y)
	udx := u1.X - u0.X
	vdx := v1.X - v0.X
	uvdx := v0.X - u0.X
	udy := u1.Y - u0.Y
	vdy := v1.Y - v0.Y
	uvdy := v0.Y - u0.Y

	denom := (udy*vdx - udx*vdy)
	if denom == 0 {
		// lines are parallel
		return nil
	}
	// Cramer's rule
	s := (vdx*uvdy - vdy*uvdx) / denom
	t := (udx*uvdy - udy*uvdx) / denom

	if s < 0 || s > 1 || t < 0 || t > 1 {
		return nil
	}

	return NewPoint(u0.X+s*udx, u0.Y+s*udy)
}

// point t% of the way between a and b
func (a *Point) Interpolate(b *Point, t float64) *Point {
	return NewPoint(
		a.X*(1.0-t)+b.X*t,
		a.Y*(1.0-t)+b.Y*t,
	)
}

func (p *Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func cross(o, a, b *Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// SegmentsCross reports whether segments u and v cross at a single point
// interior to both. Touching endpoints and collinear overlaps don't count.
func SegmentsCross(u0, u1, v0, v1 *Point) bool {
	o1 := Sign(cross(u0, u1, v0))
	o2 := Sign(cross(u0, u1, v1))
	o3 := Sign(cross(v0, v1, u0))
	o4 := Sign(cross(v0, v1, u1))
	return o1*o2 < 0 && o3*o4 < 0
}
