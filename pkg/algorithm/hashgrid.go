package algorithm

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// hashGrid is a spatial index over light vertices used by the photon
// merging strategies. Cells are hashed, not stored densely, so the grid
// costs memory proportional to the number of stored vertices.
type hashGrid struct {
	cellSize float64
	cells    map[uint64][]int
}

func newHashGrid(cellSize float64, capacityHint int) *hashGrid {
	return &hashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int, capacityHint),
	}
}

func (g *hashGrid) cellOf(point core.Vec3) (int64, int64, int64) {
	return int64(math.Floor(point.X / g.cellSize)),
		int64(math.Floor(point.Y / g.cellSize)),
		int64(math.Floor(point.Z / g.cellSize))
}

func hashCell(x, y, z int64) uint64 {
	// Large prime mixing, same scheme most photon mappers use
	return uint64(x*73856093) ^ uint64(y*19349663) ^ uint64(z*83492791)
}

// insert stores a vertex index at the cell containing point
func (g *hashGrid) insert(index int, point core.Vec3) {
	key := hashCell(g.cellOf(point))
	g.cells[key] = append(g.cells[key], index)
}

// forEachNear visits every stored index whose cell intersects the sphere
// around point with the given radius. Callers still need a distance test;
// the grid only prunes.
func (g *hashGrid) forEachNear(point core.Vec3, radius float64, visit func(index int)) {
	cx, cy, cz := g.cellOf(point)
	reach := int64(math.Ceil(radius / g.cellSize))

	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for dz := -reach; dz <= reach; dz++ {
				for _, index := range g.cells[hashCell(cx+dx, cy+dy, cz+dz)] {
					visit(index)
				}
			}
		}
	}
}
