package vizlabels

import (
	"math"

	"oss.terrastruct.com/vizcore/lib/geo"
)

// leaderLine connects the anchor's boundary to the label edge facing it. It
// starts where the line from the anchor centroid to the label center leaves
// the polygon, or at the anchor point, and stops stemExtension short of the
// nearest edge midpoint of the label.
func leaderLine(a Anchor, t geo.Transform, b *geo.Box, stemExtension float64) []*geo.Point {
	center := b.Center()
	var start *geo.Point
	switch a.Kind {
	case AnchorPolygon:
		centroid := t.Apply(a.Polygon.Centroid())
		start = t.ApplyPolygon(a.Polygon).BoundaryPointToward(centroid, center)
		if start == nil {
			start = centroid
		}
	default:
		start = t.Apply(a.Point)
	}

	var end *geo.Point
	best := math.Inf(1)
	for _, e := range b.Edges() {
		mid := e.Midpoint()
		if d := mid.DistanceTo(start); d < best {
			best = d
			end = mid
		}
	}

	if stemExtension > 0 && best > stemExtension {
		end = end.AddVector(end.VectorTo(start).Unit().Multiply(stemExtension))
	}
	return []*geo.Point{start, end}
}
