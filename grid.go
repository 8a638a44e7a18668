package geochrono

import (
	"math"

	"github.com/hupe1980/geochrono/geo"
)

// GridSpec divides a bounding box into LatCells x LonCells equal cells.
// Row index runs along latitude, column index along longitude.
type GridSpec struct {
	Bounds   geo.GeoBounds
	LatCells int
	LonCells int
}

// NewGridSpec returns a grid over b with the given cell counts.
func NewGridSpec(b geo.GeoBounds, latCells, lonCells int) GridSpec {
	return GridSpec{Bounds: b, LatCells: latCells, LonCells: lonCells}
}

// SquareCells returns a grid over b with roughly target cells whose sides are
// about equal in degrees. Each axis gets at least one cell. A box that is flat
// along one axis puts all cells along the other.
func SquareCells(b geo.GeoBounds, target int) GridSpec {
	latSpan, lonSpan := b.Height(), b.Width()
	t := float64(max(target, 1))

	switch {
	case !(latSpan > 0) && !(lonSpan > 0):
		return NewGridSpec(b, 1, 1)
	case !(latSpan > 0):
		return NewGridSpec(b, 1, int(t))
	case !(lonSpan > 0):
		return NewGridSpec(b, int(t), 1)
	}

	aspect := lonSpan / latSpan
	latCells := max(1, floorToInt(math.Sqrt(t/aspect), target))
	lonCells := max(1, floorToInt(math.Sqrt(t*aspect), target))
	return NewGridSpec(b, latCells, lonCells)
}

// CellSize returns the height and width of one cell in degrees.
func (g GridSpec) CellSize() (lat, lon float64) {
	return g.Bounds.Height() / float64(g.LatCells), g.Bounds.Width() / float64(g.LonCells)
}

// NumCells returns LatCells * LonCells, or zero for a grid without cells.
func (g GridSpec) NumCells() int {
	if g.LatCells <= 0 || g.LonCells <= 0 {
		return 0
	}
	return g.LatCells * g.LonCells
}

// Cell returns the cell holding l. Locations on the upper edges fall into the
// last row or column. Returns false if l is outside the grid.
func (g GridSpec) Cell(l geo.Location) (latIdx, lonIdx int, ok bool) {
	if g.NumCells() == 0 || !g.Bounds.Contains(l) {
		return 0, 0, false
	}
	latSize, lonSize := g.CellSize()
	return cellIndex(l.Lat-g.Bounds.MinLat, latSize, g.LatCells),
		cellIndex(l.Lon-g.Bounds.MinLon, lonSize, g.LonCells),
		true
}

// Heatmap holds per-cell location counts over a GridSpec.
// It is immutable once built.
type Heatmap struct {
	grid     GridSpec
	counts   []int
	maxCount int
}

// NewHeatmap counts locs into the cells of g. Locations outside the grid
// bounds are ignored.
func NewHeatmap(g GridSpec, locs []geo.Location) *Heatmap {
	hm := &Heatmap{
		grid:   g,
		counts: make([]int, g.NumCells()),
	}
	if len(hm.counts) == 0 {
		return hm
	}

	for _, l := range locs {
		latIdx, lonIdx, ok := g.Cell(l)
		if !ok {
			continue
		}
		i := latIdx*g.LonCells + lonIdx
		hm.counts[i]++
		hm.maxCount = max(hm.maxCount, hm.counts[i])
	}
	return hm
}

// Grid returns the grid the heatmap was built on.
func (h *Heatmap) Grid() GridSpec { return h.grid }

// MaxCount returns the largest cell count, or zero if no location was counted.
func (h *Heatmap) MaxCount() int { return h.maxCount }

// Get returns the count of a cell, or zero if the indices are out of range.
func (h *Heatmap) Get(latIdx, lonIdx int) int {
	if latIdx < 0 || lonIdx < 0 || latIdx >= h.grid.LatCells || lonIdx >= h.grid.LonCells {
		return 0
	}
	return h.counts[latIdx*h.grid.LonCells+lonIdx]
}

// GetNormalized returns the count of a cell divided by MaxCount, in [0, 1].
func (h *Heatmap) GetNormalized(latIdx, lonIdx int) float64 {
	if h.maxCount == 0 {
		return 0
	}
	return float64(h.Get(latIdx, lonIdx)) / float64(h.maxCount)
}

// Counts returns a copy of the row-major cell counts.
func (h *Heatmap) Counts() []int {
	return append([]int(nil), h.counts...)
}

// ToGrid returns the counts as LatCells rows of LonCells columns.
func (h *Heatmap) ToGrid() [][]int {
	if len(h.counts) == 0 {
		return nil
	}
	rows := make([][]int, h.grid.LatCells)
	for i := range rows {
		rows[i] = append([]int(nil), h.counts[i*h.grid.LonCells:(i+1)*h.grid.LonCells]...)
	}
	return rows
}

// Total returns the number of counted locations.
func (h *Heatmap) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// cellIndex maps an offset from the grid origin to a cell index in
// [0, cells-1]. A zero cell size maps everything to the first cell.
func cellIndex(offset, size float64, cells int) int {
	f := offset / size
	if !(f > 0) {
		return 0
	}
	if f >= float64(cells) {
		return cells - 1
	}
	return int(f)
}

// floorToInt floors v and caps it at limit, keeping float to int conversion
// in range.
func floorToInt(v float64, limit int) int {
	if !(v < float64(limit)) {
		return limit
	}
	return int(v)
}
