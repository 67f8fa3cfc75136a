package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

const (
	seedRange     = 100
	seedThreshold = 75 // draws above this start alive, roughly 24% density
)

// NewRand returns a deterministic generator for the given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Populate draws a uniform integer in [0,100) for every cell and marks it alive when the draw exceeds 75.
// Neighbor counts are left untouched.
func (g *Grid) Populate(r *rand.Rand) {
	for i := range g.alive {
		g.alive[i] = r.IntN(seedRange) > seedThreshold
	}
}

// InjectRandomLife sets count random cells alive
func (g *Grid) InjectRandomLife(r *rand.Rand, count int) {
	for range count {
		g.alive[r.IntN(len(g.alive))] = true
	}
}

// stamp writes pattern rows starting at (startX, startY); every cell must fit on the grid
func (g *Grid) stamp(op string, startX, startY int, pattern [][]bool) error {
	for y, row := range pattern {
		for x := range row {
			if !g.InBounds(startX+x, startY+y) {
				return errors.Wrapf(ErrOutOfBounds, "[%s] pattern at (%d,%d) does not fit %dx%d",
					op, startX, startY, g.width, g.height)
			}
		}
	}
	for y, row := range pattern {
		for x, cell := range row {
			g.alive[(startY+y)*g.width+startX+x] = cell
		}
	}
	return nil
}

// AddGlider adds a glider pattern at the specified position
func (g *Grid) AddGlider(startX, startY int) error {
	return g.stamp("AddGlider", startX, startY, [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	})
}

// AddBlinker adds a horizontal blinker oscillator
func (g *Grid) AddBlinker(startX, startY int) error {
	return g.stamp("AddBlinker", startX, startY, [][]bool{
		{true, true, true},
	})
}

// AddBlock adds a 2x2 still life
func (g *Grid) AddBlock(startX, startY int) error {
	return g.stamp("AddBlock", startX, startY, [][]bool{
		{true, true},
		{true, true},
	})
}

// Paste copies every cell of src onto the grid with its top-left corner at (startX, startY)
func (g *Grid) Paste(startX, startY int, src *Grid) error {
	pattern := make([][]bool, src.height)
	for y := range pattern {
		pattern[y] = src.alive[y*src.width : (y+1)*src.width]
	}
	return g.stamp("Paste", startX, startY, pattern)
}
