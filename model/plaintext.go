package model

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	plaintextAlive   = 'O'
	plaintextDead    = '.'
	plaintextComment = "!"
)

// ParsePlaintext reads a grid in the plaintext pattern format: one row per line, 'O' for
// a live cell, '.' for a dead one, lines starting with '!' ignored. Short rows are padded
// with dead cells up to the widest row.
func ParsePlaintext(r io.Reader) (*Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.HasPrefix(line, plaintextComment) {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParsePlaintext] failed to read pattern")
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	g, err := NewGrid(width, len(rows))
	if err != nil {
		return nil, errors.Wrap(err, "[ParsePlaintext] empty pattern")
	}

	for y, row := range rows {
		for x, c := range []byte(row) {
			switch c {
			case plaintextAlive:
				g.alive[y*width+x] = true
			case plaintextDead:
			default:
				return nil, errors.Errorf("[ParsePlaintext] unexpected %q at (%d,%d)", c, x, y)
			}
		}
	}
	return g, nil
}

// WritePlaintext writes the grid in the format read by ParsePlaintext
func WritePlaintext(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	for y := range g.height {
		for x := range g.width {
			c := byte(plaintextDead)
			if g.alive[y*g.width+x] {
				c = plaintextAlive
			}
			bw.WriteByte(c)
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "[WritePlaintext] failed to flush")
}

// String returns the plaintext form of the grid
func (g *Grid) String() string {
	var sb strings.Builder
	_ = WritePlaintext(&sb, g)
	return sb.String()
}
