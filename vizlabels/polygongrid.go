package vizlabels

import (
	"oss.terrastruct.com/vizcore/lib/geo"
)

const DefaultPolygonGridMultiplier = 2

// PolygonGrid answers whether a label box runs into any anchor polygon. The
// grid is keyed by the polygons' on-screen bounding boxes while the exact test
// runs against the source polygons.
type PolygonGrid struct {
	grid
	polygons    []geo.Polygon
	screenBoxes []*geo.Box
	cells       [][]int

	// visit stamps dedupe polygons spanning several cells within one query
	stamp   int
	visited []int
}

func NewPolygonGrid(polygons []geo.Polygon, t geo.Transform, multiplier float64) *PolygonGrid {
	if multiplier <= 0 {
		multiplier = DefaultPolygonGridMultiplier
	}
	pg := &PolygonGrid{}
	var corners []*geo.Point
	maxW, maxH := 0., 0.
	for _, poly := range polygons {
		if len(poly) == 0 {
			continue
		}
		sb := t.ApplyPolygon(poly).BoundingBox()
		pg.polygons = append(pg.polygons, poly)
		pg.screenBoxes = append(pg.screenBoxes, sb)
		corners = append(corners, sb.Corners()...)
		if sb.Width > maxW {
			maxW = sb.Width
		}
		if sb.Height > maxH {
			maxH = sb.Height
		}
	}
	bounds := geo.BoundingBox(corners)
	if bounds == nil {
		bounds = geo.NewBox(geo.NewPoint(0, 0), 0, 0)
	}
	pg.grid = newGrid(bounds, maxW*multiplier, maxH*multiplier)
	pg.cells = make([][]int, pg.cols*pg.rows)
	pg.visited = make([]int, len(pg.polygons))
	for i, sb := range pg.screenBoxes {
		r := pg.cellsFor(sb)
		for row := r.minRow; row <= r.maxRow; row++ {
			for col := r.minCol; col <= r.maxCol; col++ {
				ci := pg.index(col, row)
				pg.cells[ci] = append(pg.cells[ci], i)
			}
		}
	}
	return pg
}

func (pg *PolygonGrid) Len() int {
	return len(pg.polygons)
}

// HasConflict reports whether the label, given both on screen and in source
// space, intersects any polygon boundary or area.
func (pg *PolygonGrid) HasConflict(pixelBox, sourceBox *geo.Box) bool {
	if len(pg.polygons) == 0 {
		return false
	}
	pg.stamp++
	r := pg.cellsFor(pixelBox)
	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			for _, i := range pg.cells[pg.index(col, row)] {
				if pg.visited[i] == pg.stamp {
					continue
				}
				pg.visited[i] = pg.stamp
				sb := pg.screenBoxes[i]
				if sb.Right() < pixelBox.Left() || pixelBox.Right() < sb.Left() ||
					sb.Bottom() < pixelBox.Top() || pixelBox.Bottom() < sb.Top() {
					continue
				}
				if pg.polygons[i].IntersectsBox(sourceBox) {
					return true
				}
			}
		}
	}
	return false
}
