package controller_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mppsim/pe"
)

var _ = Describe("bulk primitives", func() {
	It("clears and sets a memory range on every PE", func() {
		e, _, c := newController()

		c.SetMemory(70, 73)
		Expect(e.ChipWord(70, 0)).To(Equal(^uint64(0)))
		Expect(e.ChipWord(71, 500)).To(Equal(^uint64(0)))
		Expect(e.ChipWord(72, 1023)).To(Equal(^uint64(0)))

		c.ClearMemory(70, 73)
		Expect(e.ChipWord(70, 0)).To(Equal(uint64(0)))
		Expect(e.ChipWord(72, 1023)).To(Equal(uint64(0)))
	})

	It("copies a flag from one address to another", func() {
		e, _, c := newController()
		e.SetChipWord(70, 3, 0xf0f0f0f0f0f0f0f0)

		c.CopyFromTo(70, 71)

		Expect(e.ChipWord(71, 3)).To(Equal(uint64(0xf0f0f0f0f0f0f0f0)))
	})

	It("computes AND, OR, and XOR across flags", func() {
		e, _, c := newController()
		e.SetChipWord(70, 0, 0b1100)
		e.SetChipWord(71, 0, 0b1010)

		c.LogAnd(70, 71)
		Expect(e.ChipWord(70, 0)).To(Equal(uint64(0b1000)))

		e.SetChipWord(72, 0, 0b1100)
		e.SetChipWord(73, 0, 0b1010)
		c.LogXor(72, 73)
		Expect(e.ChipWord(72, 0)).To(Equal(uint64(0b0110)))

		e.SetChipWord(74, 0, 0b1100)
		e.SetChipWord(75, 0, 0b1010)
		c.SetIf(74, 75)
		Expect(e.ChipWord(74, 0)).To(Equal(uint64(0b1110)))
	})

	It("copies conditionally, leaving unselected PEs untouched", func() {
		e, _, c := newController()
		e.SetChipWord(70, 0, 0xff)
		e.SetChipWord(71, 0, 0x00)
		e.SetChipWord(72, 0, 0b0101)

		c.CopyIf(71, 70, 72)

		Expect(e.ChipWord(71, 0)).To(Equal(uint64(0x05)))
	})

	It("round-trips FLAG_ROUTE_DATA through send and recv", func() {
		e, _, c := newController()
		e.RECV(7, 0xdeadbeef)

		c.RecvMemory(70)
		c.SendMemory(70)

		Expect(e.SEND(7)).To(Equal(uint64(0xdeadbeef)))
		Expect(e.ChipWord(70, 7)).To(Equal(uint64(0xdeadbeef)))
	})

	It("counts observed 1-bits in unary, per PE", func() {
		e, _, c := newController()
		const cs, ce = 70, 80

		c.ClearMemory(cs, ce)
		c.SetMemory(cs, cs+1)

		e.SetChipWord(pe.FlagRouteData, 0, ^uint64(0))
		c.CountFlag(cs, ce, pe.FlagRouteData)
		c.CountFlag(cs, ce, pe.FlagRouteData)
		c.CountFlag(cs, ce, pe.FlagRouteData)

		for i := cs; i <= cs+3; i++ {
			Expect(e.ChipWord(i, 0)).To(Equal(^uint64(0)), "bit %d should be set", i)
		}
		for i := cs + 4; i < ce; i++ {
			Expect(e.ChipWord(i, 0)).To(Equal(uint64(0)), "bit %d should be clear", i)
		}
	})

	It("panics when the counter range is too small", func() {
		_, _, c := newController()
		Expect(func() { c.CountFlag(70, 71, pe.FlagRouteData) }).To(Panic())
	})

	It("hands out non-overlapping regions and resets on DeallocateAll", func() {
		_, _, c := newController()

		s1, e1 := c.Allocate(4)
		s2, e2 := c.Allocate(4)
		Expect(s1).To(Equal(64))
		Expect(e1).To(Equal(68))
		Expect(s2).To(Equal(68))
		Expect(e2).To(Equal(72))

		c.DeallocateAll()

		s3, _ := c.Allocate(4)
		Expect(s3).To(Equal(64))
	})

	It("panics when allocation exceeds the configured memory size", func() {
		_, _, c := newController()
		Expect(func() { c.Allocate(1 << 20) }).To(Panic())
	})
})
