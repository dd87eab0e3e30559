package geo

// Transform is a 2D affine transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Transform {
	return Transform{A: 1, E: 1}
}

func Translate(x, y float64) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

func Scale(x, y float64) Transform {
	return Transform{A: x, E: y}
}

// Multiply returns t * other, i.e. other is applied first.
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Invert returns the inverse transform; ok is false for singular transforms.
func (t Transform) Invert() (inv Transform, ok bool) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return Transform{}, false
	}
	inv.A = t.E / det
	inv.B = -t.B / det
	inv.D = -t.D / det
	inv.E = t.A / det
	inv.C = -(inv.A*t.C + inv.B*t.F)
	inv.F = -(inv.D*t.C + inv.E*t.F)
	return inv, true
}

func (t Transform) Apply(p *Point) *Point {
	return NewPoint(t.A*p.X+t.B*p.Y+t.C, t.D*p.X+t.E*p.Y+t.F)
}

// ApplyBox returns the bounding box of the transformed corners of b.
func (t Transform) ApplyBox(b *Box) *Box {
	corners := b.Corners()
	for i, c := range corners {
		corners[i] = t.Apply(c)
	}
	return BoundingBox(corners)
}

func (t Transform) ApplyPolygon(poly Polygon) Polygon {
	out := make(Polygon, 0, len(poly))
	for _, p := range poly {
		out = append(out, t.Apply(p))
	}
	return out
}
