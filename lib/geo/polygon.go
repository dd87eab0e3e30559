package geo

import "math"

// Polygon is a simple polygon given by its vertices. The closing edge from the
// last vertex back to the first is implicit.
type Polygon []*Point

func NewPolygon(points ...*Point) Polygon {
	return Polygon(points)
}

func (poly Polygon) Copy() Polygon {
	return Polygon(Points(poly).Copy())
}

func (poly Polygon) BoundingBox() *Box {
	return BoundingBox(poly)
}

func (poly Polygon) Edges() []Segment {
	if len(poly) < 2 {
		return nil
	}
	edges := make([]Segment, 0, len(poly))
	for i := range poly {
		edges = append(edges, Segment{poly[i], poly[(i+1)%len(poly)]})
	}
	return edges
}

func (poly Polygon) signedArea() float64 {
	a := 0.
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func (poly Polygon) Area() float64 {
	return math.Abs(poly.signedArea())
}

// Centroid is the area-weighted center of the polygon. Degenerate polygons
// fall back to the mean of their vertices.
func (poly Polygon) Centroid() *Point {
	if len(poly) == 0 {
		return nil
	}
	a := poly.signedArea()
	if a == 0 {
		x, y := 0., 0.
		for _, p := range poly {
			x += p.X
			y += p.Y
		}
		n := float64(len(poly))
		return NewPoint(x/n, y/n)
	}
	cx, cy := 0., 0.
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return NewPoint(cx/(6*a), cy/(6*a))
}

// ContainsPoint uses the even-odd rule; points on the boundary may go either way.
func (poly Polygon) ContainsPoint(pt *Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ContainsBox reports whether the whole box lies inside the polygon: every
// corner is inside, no vertex pokes into the box and no edge cuts through it.
func (poly Polygon) ContainsBox(b *Box) bool {
	if len(poly) < 3 {
		return false
	}
	for _, c := range b.Corners() {
		if !poly.ContainsPoint(c) {
			return false
		}
	}
	for _, p := range poly {
		if p.X > b.Left() && p.X < b.Right() && p.Y > b.Top() && p.Y < b.Bottom() {
			return false
		}
	}
	boxEdges := b.Edges()
	for _, e := range poly.Edges() {
		for _, be := range boxEdges {
			if SegmentsCross(e.Start, e.End, be.Start, be.End) {
				return false
			}
		}
	}
	return true
}

// IntersectsBox reports whether the polygon and the box share any area or boundary.
func (poly Polygon) IntersectsBox(b *Box) bool {
	if len(poly) == 0 {
		return false
	}
	bb := poly.BoundingBox()
	if bb.Right() < b.Left() || b.Right() < bb.Left() || bb.Bottom() < b.Top() || b.Bottom() < bb.Top() {
		return false
	}
	for _, e := range poly.Edges() {
		if len(b.Intersections(e)) > 0 {
			return true
		}
	}
	if b.ContainsPoint(poly[0]) {
		return true
	}
	return poly.ContainsPoint(b.Center())
}

// BoundaryPointToward returns the boundary crossing of the segment from -> to
// that lies closest to to, or nil if the segment never crosses the boundary.
func (poly Polygon) BoundaryPointToward(from, to *Point) *Point {
	var closest *Point
	best := math.Inf(1)
	seg := Segment{from, to}
	for _, e := range poly.Edges() {
		if p := IntersectionPoint(seg.Start, seg.End, e.Start, e.End); p != nil {
			if d := p.DistanceTo(to); d < best {
				best = d
				closest = p
			}
		}
	}
	return closest
}
