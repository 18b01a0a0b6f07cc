// Package router implements the NEWS (North/East/West/South) router:
// the torus-shift and 2D unicast/read operations over the PE array's
// FlagRouteData flag.
package router

import "github.com/sarchlab/mppsim/pe"

// Side identifies one of the four NEWS directions.
type Side int

// The four NEWS directions. Moving N decreases y mod 256, S increases
// y, E increases x, W decreases x.
const (
	North Side = iota
	East
	West
	South
)

var sideNames = [...]string{"North", "East", "West", "South"}

// Name returns the human-readable name of the side.
func (s Side) Name() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "Side(unknown)"
}

// Width and Height are the torus dimensions.
const (
	Width  = 256
	Height = 256
)

// chipsPerRow is the number of 64-PE chips spanning one row of the
// torus (Width / pe.PEsPerChip).
const chipsPerRow = Width / pe.PEsPerChip

// Router operates exclusively on pe.FlagRouteData, treating it as a
// 256x256 bit plane backed by the PE array's chip words.
type Router struct {
	engine *pe.Engine
}

// New wraps a PE engine with NEWS router operations.
func New(engine *pe.Engine) *Router {
	return &Router{engine: engine}
}

func chipOf(x, y int) int {
	return y*chipsPerRow + (x >> 6)
}

func laneOf(x int) uint {
	return uint(x & (pe.PEsPerChip - 1))
}

// Unicast2D sets FlagRouteData of the PE at (x, y) to b.
func (r *Router) Unicast2D(x, y int, b bool) {
	chip := chipOf(x, y)
	lane := laneOf(x)
	word := r.engine.ChipWord(pe.FlagRouteData, chip)

	if b {
		word |= 1 << lane
	} else {
		word &^= 1 << lane
	}

	r.engine.SetChipWord(pe.FlagRouteData, chip, word)
}

// Read64At returns the 64-bit word formed from FlagRouteData of the
// 64 PEs in the chip containing (x, y). x must be chip-aligned
// (a multiple of 64); Read64At panics with an *AlignmentError
// otherwise.
func (r *Router) Read64At(x, y int) uint64 {
	if x%pe.PEsPerChip != 0 {
		panic(&AlignmentError{X: x, Alignment: pe.PEsPerChip})
	}

	return r.engine.ChipWord(pe.FlagRouteData, chipOf(x, y))
}

// RotateE shifts the whole plane by one cell east: the value
// previously at (x, y) is at (x+1 mod 256, y) afterward. Each row's
// new words are fully computed before any of them is committed, and
// no value crosses between rows, so the rotation is atomic.
func (r *Router) RotateE() {
	r.rotateRows(func(words [chipsPerRow]uint64) [chipsPerRow]uint64 {
		var out [chipsPerRow]uint64
		for cc := 0; cc < chipsPerRow; cc++ {
			carry := (words[(cc+chipsPerRow-1)%chipsPerRow] >> 63) & 1
			out[cc] = (words[cc] << 1) | carry
		}
		return out
	})
}

// RotateW shifts the whole plane by one cell west: the value
// previously at (x, y) is at (x-1 mod 256, y) afterward.
func (r *Router) RotateW() {
	r.rotateRows(func(words [chipsPerRow]uint64) [chipsPerRow]uint64 {
		var out [chipsPerRow]uint64
		for cc := 0; cc < chipsPerRow; cc++ {
			carry := (words[(cc+1)%chipsPerRow] & 1) << 63
			out[cc] = (words[cc] >> 1) | carry
		}
		return out
	})
}

// rotateRows applies fn independently to each of the 256 rows, where
// a row is the chipsPerRow chip words spanning that row's x range,
// and writes the results back. Used by RotateE/RotateW, which only
// move values within a row.
func (r *Router) rotateRows(fn func([chipsPerRow]uint64) [chipsPerRow]uint64) {
	for y := 0; y < Height; y++ {
		var row [chipsPerRow]uint64
		base := y * chipsPerRow
		for cc := 0; cc < chipsPerRow; cc++ {
			row[cc] = r.engine.ChipWord(pe.FlagRouteData, base+cc)
		}

		row = fn(row)

		for cc := 0; cc < chipsPerRow; cc++ {
			r.engine.SetChipWord(pe.FlagRouteData, base+cc, row[cc])
		}
	}
}

// RotateN shifts the whole plane by one cell north: the value
// previously at (x, y) is at (x, y-1 mod 256) afterward. Since chips
// are numbered row-major (chip = y*chipsPerRow + x/64), moving one
// row north is a uniform +chipsPerRow shift of the chip index, mod
// the total chip count.
func (r *Router) RotateN() {
	r.rotateChips(chipsPerRow)
}

// RotateS shifts the whole plane by one cell south: the value
// previously at (x, y) is at (x, y+1 mod 256) afterward.
func (r *Router) RotateS() {
	r.rotateChips(-chipsPerRow)
}

func (r *Router) rotateChips(delta int) {
	var next [pe.ChipCount]uint64
	for chip := 0; chip < pe.ChipCount; chip++ {
		src := ((chip+delta)%pe.ChipCount + pe.ChipCount) % pe.ChipCount
		next[chip] = r.engine.ChipWord(pe.FlagRouteData, src)
	}

	for chip := 0; chip < pe.ChipCount; chip++ {
		r.engine.SetChipWord(pe.FlagRouteData, chip, next[chip])
	}
}
