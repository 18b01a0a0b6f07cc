// Package pattern reads and writes the Life 1.05 text subset used to
// seed and snapshot the cell grid. Reading never panics: a malformed
// file surfaces as an *Error the caller can report and recover from.
package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Cell is one live coordinate on the 256x256 torus.
type Cell struct {
	X, Y int
}

// Error reports a failure reading a pattern file, wrapping the
// underlying cause with the line at which it occurred (0 for
// whole-file failures such as a missing path). Save returns the
// writer's errors as they are, without an Error around them.
type Error struct {
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("pattern: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("pattern: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads the Life 1.05 subset from path and returns the live
// cells, offset so that the pattern's own row 0, column 0 lands at
// (x0, y0).
//
// Lines beginning with '#' and blank lines (after trimming CR/LF) are
// ignored. Every other line is one grid row: '*' marks a live cell at
// x0+i for character position i; any other character is dead. The row
// index advances by one per non-ignored line.
func Load(x0, y0 int, path string) ([]Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer f.Close()

	var cells []Cell
	y := y0
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for i, ch := range line {
			if ch == '*' {
				cells = append(cells, Cell{X: x0 + i, Y: y})
			}
		}
		y++
	}

	if err := scanner.Err(); err != nil {
		return nil, &Error{Path: path, Line: lineNo, Err: err}
	}

	return cells, nil
}

// Save writes cells as a Life 1.05 file: a "#Life 1.05" header, a
// "#P x_min y_min" offset line, then one row per y from the minimum to
// the maximum y present, each spanning the minimum to maximum x,
// using '*' for live and '.' for dead. Lines are terminated with
// CRLF. An empty cell set writes just the header and a single-cell
// "#P 0 0" / "." pattern.
func Save(w io.Writer, cells []Cell) error {
	if len(cells) == 0 {
		_, err := io.WriteString(w, "#Life 1.05\r\n#P 0 0\r\n.\r\n")
		return err
	}

	sorted := append([]Cell(nil), cells...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	minX, maxX := sorted[0].X, sorted[0].X
	minY, maxY := sorted[0].Y, sorted[0].Y
	live := make(map[Cell]bool, len(sorted))
	for _, c := range sorted {
		live[c] = true
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#Life 1.05\r\n#P %d %d\r\n", minX, minY)

	for y := minY; y <= maxY; y++ {
		row := make([]byte, 0, maxX-minX+1)
		for x := minX; x <= maxX; x++ {
			if live[Cell{X: x, Y: y}] {
				row = append(row, '*')
			} else {
				row = append(row, '.')
			}
		}
		row = append(row, '\r', '\n')
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}
