package router_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mppsim/pe"
	"github.com/sarchlab/mppsim/router"
)

func newRouter() (*pe.Engine, *router.Router) {
	e := pe.Builder{}.WithMemorySize(128).Build()
	return e, router.New(e)
}

var _ = Describe("Router", func() {
	It("round-trips a unicast write through a chip-aligned read", func() {
		_, r := newRouter()

		r.Unicast2D(128, 5, true)

		word := r.Read64At(128, 5)
		Expect(word).To(Equal(uint64(1)))
	})

	It("panics on a misaligned chip read", func() {
		_, r := newRouter()
		Expect(func() { r.Read64At(65, 0) }).To(Panic())
	})

	DescribeTable("four rotates in one direction are the identity",
		func(rotate func(*router.Router)) {
			_, r := newRouter()
			r.Unicast2D(10, 10, true)
			r.Unicast2D(200, 3, true)

			before := snapshot(r)

			rotate(r)
			rotate(r)
			rotate(r)
			rotate(r)

			Expect(snapshot(r)).To(Equal(before))
		},
		Entry("north", func(r *router.Router) { r.RotateN() }),
		Entry("south", func(r *router.Router) { r.RotateS() }),
		Entry("east", func(r *router.Router) { r.RotateE() }),
		Entry("west", func(r *router.Router) { r.RotateW() }),
	)

	It("makes N and S inverse of each other", func() {
		_, r := newRouter()
		r.Unicast2D(64, 128, true)
		before := snapshot(r)

		r.RotateN()
		r.RotateS()

		Expect(snapshot(r)).To(Equal(before))
	})

	It("makes E and W inverse of each other", func() {
		_, r := newRouter()
		r.Unicast2D(64, 128, true)
		before := snapshot(r)

		r.RotateE()
		r.RotateW()

		Expect(snapshot(r)).To(Equal(before))
	})

	It("walks each PE through exactly its eight Moore neighbors, once each, via S,E,N,N,W,W,S,S", func() {
		const hx, hy = 128, 128

		type step struct {
			name   string
			rotate func(*router.Router)
		}
		sequence := []step{
			{"S", func(r *router.Router) { r.RotateS() }},
			{"E", func(r *router.Router) { r.RotateE() }},
			{"N", func(r *router.Router) { r.RotateN() }},
			{"N", func(r *router.Router) { r.RotateN() }},
			{"W", func(r *router.Router) { r.RotateW() }},
			{"W", func(r *router.Router) { r.RotateW() }},
			{"S", func(r *router.Router) { r.RotateS() }},
			{"S", func(r *router.Router) { r.RotateS() }},
		}

		// Expected offset (dx, dy), relative to home, observed at home
		// after each prefix of the sequence above.
		expectedOffsets := [][2]int{
			{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
			{0, 1}, {1, 1}, {1, 0}, {1, -1},
		}

		seen := map[[2]int]bool{}
		for _, off := range expectedOffsets {
			_, r := newRouter()
			nx := mod(hx+off[0], router.Width)
			ny := mod(hy+off[1], router.Height)
			r.Unicast2D(nx, ny, true)

			var observedAt = -1
			for i, st := range sequence {
				st.rotate(r)
				if bitAt(r, hx, hy) {
					observedAt = i
				}
			}

			Expect(observedAt).To(Equal(indexOf(expectedOffsets, off)),
				"neighbor offset %v should be observed at home at step %d", off, indexOf(expectedOffsets, off))
			seen[off] = true
		}

		Expect(seen).To(HaveLen(8))
	})
})

func indexOf(offs [][2]int, target [2]int) int {
	for i, o := range offs {
		if o == target {
			return i
		}
	}
	return -1
}

func mod(v, m int) int {
	return ((v % m) + m) % m
}

func bitAt(r *router.Router, x, y int) bool {
	aligned := x - (x % 64)
	word := r.Read64At(aligned, y)
	return word&(1<<uint(x%64)) != 0
}

func snapshot(r *router.Router) []uint64 {
	words := make([]uint64, 0, router.Height*4)
	for y := 0; y < router.Height; y++ {
		for cc := 0; cc < 4; cc++ {
			words = append(words, r.Read64At(cc*64, y))
		}
	}
	return words
}
