package geo

import "fmt"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Equals(other *Box) bool {
	if b == nil {
		return other == nil
	} else if other == nil {
		return false
	}
	return b.TopLeft.Equals(other.TopLeft) && b.Width == other.Width && b.Height == other.Height
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) Left() float64 {
	return b.TopLeft.X
}

func (b *Box) Top() float64 {
	return b.TopLeft.Y
}

func (b *Box) Right() float64 {
	return b.TopLeft.X + b.Width
}

func (b *Box) Bottom() float64 {
	return b.TopLeft.Y + b.Height
}

// Overlaps reports whether the interiors of b and other intersect.
// Boxes that only share an edge do not overlap.
func (b *Box) Overlaps(other *Box) bool {
	return b.Left() < other.Right() && other.Left() < b.Right() &&
		b.Top() < other.Bottom() && other.Top() < b.Bottom()
}

// Contains reports whether other lies entirely within b, edges included.
func (b *Box) Contains(other *Box) bool {
	return other.Left() >= b.Left() && other.Right() <= b.Right() &&
		other.Top() >= b.Top() && other.Bottom() <= b.Bottom()
}

func (b *Box) ContainsPoint(p *Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() && p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Corners in clockwise order starting at the top left.
func (b *Box) Corners() []*Point {
	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)
	return []*Point{tl, tr, br, bl}
}

// Edges in clockwise order: top, right, bottom, left.
func (b *Box) Edges() []Segment {
	c := b.Corners()
	return []Segment{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

func (b *Box) Intersections(s Segment) []*Point {
	pts := []*Point{}
	for _, e := range b.Edges() {
		if p := IntersectionPoint(s.Start, s.End, e.Start, e.End); p != nil {
			pts = append(pts, p)
		}
	}
	return pts
}

// BoundingBox returns the smallest box containing all points, or nil if there are none.
func BoundingBox(points []*Point) *Box {
	if len(points) == 0 {
		return nil
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
