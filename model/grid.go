package model

import (
	"github.com/pkg/errors"
)

// Grid is a bounded, non-wrapping board of cells stored as two flat row-major arrays
type Grid struct {
	width     int
	height    int
	alive     []bool
	neighbors []uint8 // only valid after a counting pass
}

// NewGrid creates a new grid with every cell dead and every neighbor count zero
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] width=%d height=%d", width, height)
	}
	return &Grid{
		width:     width,
		height:    height,
		alive:     make([]bool, width*height),
		neighbors: make([]uint8, width*height),
	}, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(op string, x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, errors.Wrapf(ErrOutOfBounds, "[%s] (%d,%d) outside %dx%d", op, x, y, g.width, g.height)
	}
	return y*g.width + x, nil
}

// IsAlive returns the state of a cell
func (g *Grid) IsAlive(x, y int) (bool, error) {
	i, err := g.index("IsAlive", x, y)
	if err != nil {
		return false, err
	}
	return g.alive[i], nil
}

// SetAlive sets a cell to alive (true) or dead (false). Neighbor counts are not refreshed.
func (g *Grid) SetAlive(x, y int, alive bool) error {
	i, err := g.index("SetAlive", x, y)
	if err != nil {
		return err
	}
	g.alive[i] = alive
	return nil
}

// Toggle flips the state of a cell
func (g *Grid) Toggle(x, y int) error {
	i, err := g.index("Toggle", x, y)
	if err != nil {
		return err
	}
	g.alive[i] = !g.alive[i]
	return nil
}

// NeighborCount returns the count stored by the last counting pass
func (g *Grid) NeighborCount(x, y int) (int, error) {
	i, err := g.index("NeighborCount", x, y)
	if err != nil {
		return 0, err
	}
	return int(g.neighbors[i]), nil
}

// SetNeighborCount stores n as the neighbor count of a cell
func (g *Grid) SetNeighborCount(x, y, n int) error {
	i, err := g.index("SetNeighborCount", x, y)
	if err != nil {
		return err
	}
	if n < 0 || n > 8 {
		return errors.Errorf("[SetNeighborCount] count %d for (%d,%d) outside [0,8]", n, x, y)
	}
	g.neighbors[i] = uint8(n)
	return nil
}

// CountLiveNeighbors counts living cells in the Moore neighborhood of (x, y).
// Neighbors that fall outside the grid are skipped, never wrapped.
func (g *Grid) CountLiveNeighbors(x, y int) (int, error) {
	if _, err := g.index("CountLiveNeighbors", x, y); err != nil {
		return 0, err
	}
	return g.countNeighbors(x, y), nil
}

// countNeighbors assumes (x, y) is in bounds
func (g *Grid) countNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		row := ny * g.width
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.alive[row+nx] {
				count++
			}
		}
	}

	return count
}

// CountRows runs the counting pass for rows [startRow, endRow), storing each result.
// Rows outside the grid are clipped.
func (g *Grid) CountRows(startRow, endRow int) {
	startRow = max(0, startRow)
	endRow = min(g.height, endRow)
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			g.neighbors[y*g.width+x] = uint8(g.countNeighbors(x, y))
		}
	}
}

// Apply replaces every cell's state with next(alive, neighbors) using the stored counts
func (g *Grid) Apply(next func(alive bool, neighbors int) bool) {
	for i := range g.alive {
		g.alive[i] = next(g.alive[i], int(g.neighbors[i]))
	}
}

// Clear kills every cell and zeroes the neighbor counts
func (g *Grid) Clear() {
	clear(g.alive)
	clear(g.neighbors)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, alive := range g.alive {
		if alive {
			count++
		}
	}
	return
}

// LiveCells returns the coordinates of every living cell in row-major order
func (g *Grid) LiveCells() [][2]int {
	var cells [][2]int
	for i, alive := range g.alive {
		if alive {
			cells = append(cells, [2]int{i % g.width, i / g.width})
		}
	}
	return cells
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:     g.width,
		height:    g.height,
		alive:     append([]bool(nil), g.alive...),
		neighbors: append([]uint8(nil), g.neighbors...),
	}
}

// Equal reports whether both grids have the same dimensions and cell states
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.alive {
		if g.alive[i] != other.alive[i] {
			return false
		}
	}
	return true
}
