package vizlabels

import (
	"math"

	"oss.terrastruct.com/vizcore/lib/geo"
	"oss.terrastruct.com/vizcore/lib/go2"
)

const (
	// Cells are this many times the size of the largest label.
	occupancyCellMultiplier = 2

	minGridCells = 1
	maxGridCells = 100
)

type cellRange struct {
	minCol, maxCol int
	minRow, maxRow int
}

// grid is a uniform partition of bounds into at most maxGridCells per axis.
// Anything outside bounds maps to the edge cells.
type grid struct {
	bounds     *geo.Box
	cols, rows int
	cellWidth  float64
	cellHeight float64
}

func gridDimension(extent, cellSize float64) int {
	if cellSize <= 0 || extent <= 0 {
		return minGridCells
	}
	n := math.Ceil(extent / cellSize)
	if math.IsNaN(n) {
		return minGridCells
	}
	return int(go2.Clamp(n, minGridCells, maxGridCells))
}

func newGrid(bounds *geo.Box, cellWidth, cellHeight float64) grid {
	g := grid{
		bounds: bounds,
		cols:   gridDimension(bounds.Width, cellWidth),
		rows:   gridDimension(bounds.Height, cellHeight),
	}
	g.cellWidth = bounds.Width / float64(g.cols)
	g.cellHeight = bounds.Height / float64(g.rows)
	return g
}

func cellIndex(v, origin, size float64, n int) int {
	if size <= 0 {
		return 0
	}
	i := math.Floor((v - origin) / size)
	return int(go2.Clamp(i, 0, float64(n-1)))
}

func (g grid) cellsFor(b *geo.Box) cellRange {
	return cellRange{
		minCol: cellIndex(b.Left(), g.bounds.Left(), g.cellWidth, g.cols),
		maxCol: cellIndex(b.Right(), g.bounds.Left(), g.cellWidth, g.cols),
		minRow: cellIndex(b.Top(), g.bounds.Top(), g.cellHeight, g.rows),
		maxRow: cellIndex(b.Bottom(), g.bounds.Top(), g.cellHeight, g.rows),
	}
}

func (g grid) index(col, row int) int {
	return row*g.cols + col
}

// OccupancyGrid answers whether a box overlaps any box placed so far.
type OccupancyGrid struct {
	grid
	cells [][]*geo.Box
}

// NewOccupancyGrid partitions the viewport so a label of labelSize spans a
// handful of cells.
func NewOccupancyGrid(viewport Viewport, labelSize Size) *OccupancyGrid {
	g := newGrid(viewport.Box(), labelSize.Width*occupancyCellMultiplier, labelSize.Height*occupancyCellMultiplier)
	return &OccupancyGrid{
		grid:  g,
		cells: make([][]*geo.Box, g.cols*g.rows),
	}
}

func (og *OccupancyGrid) Add(b *geo.Box) {
	r := og.cellsFor(b)
	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			i := og.index(col, row)
			og.cells[i] = append(og.cells[i], b)
		}
	}
}

func (og *OccupancyGrid) HasConflict(b *geo.Box) bool {
	r := og.cellsFor(b)
	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			for _, other := range og.cells[og.index(col, row)] {
				if other.Overlaps(b) {
					return true
				}
			}
		}
	}
	return false
}
