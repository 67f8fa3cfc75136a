package model

import (
	"crypto/md5"
	"fmt"
)

const historySize = 5

// Hash returns an MD5 digest of the current cell states
func (g *Grid) Hash() string {
	h := md5.New()
	buf := make([]byte, len(g.alive))
	for i, alive := range g.alive {
		if alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// History keeps the hashes of the most recent generations to detect still lifes and short cycles
type History struct {
	hashes []string
}

// Record adds the grid's current state and drops the oldest entry beyond the window
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}

// IsStagnant reports whether the grid repeats one of the last three recorded states
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}
	current := g.Hash()
	for _, prev := range h.hashes[len(h.hashes)-3:] {
		if prev == current {
			return true
		}
	}
	return false
}
