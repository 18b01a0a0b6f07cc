// Package controller composes the PE array's microinstructions into
// bulk primitives, implements the unary bit counter and heap-style
// flag allocator, and drives one Life generation using only those
// primitives.
package controller

import (
	"github.com/sarchlab/mppsim/pe"
	"github.com/sarchlab/mppsim/router"
)

// Controller issues microinstructions to a PE engine and NEWS router
// to realize the bulk primitives and the Life step. It is
// single-threaded: no suspension points exist inside a
// microinstruction or between the primitive calls it composes.
type Controller struct {
	Engine *pe.Engine
	Router *router.Router

	heap *allocator
}

// New creates a Controller over the given engine and router. The
// engine and router must share the same underlying PE memory.
func New(engine *pe.Engine, r *router.Router) *Controller {
	return &Controller{
		Engine: engine,
		Router: r,
		heap:   newAllocator(engine.MemorySize()),
	}
}

// computeAndStore loads A as opA(mem[addrA], mem[readFlag], 0) and
// commits it unconditionally into mem[writeAddr] on every PE. Every
// unconditional primitive below bottoms out here.
func (c *Controller) computeAndStore(writeAddr, addrA, readFlag int, opA pe.Table) {
	c.Engine.LOADA(addrA, readFlag, opA)
	c.Engine.LOADB(addrA, pe.FlagZero, pe.TableZero)
	c.Engine.STORE(writeAddr, false)
}

// ClearMemory sets mem[a..b) to 0 on all PEs.
func (c *Controller) ClearMemory(a, b int) {
	for addr := a; addr < b; addr++ {
		c.computeAndStore(addr, addr, pe.FlagZero, pe.TableZero)
	}
}

// SetMemory sets mem[a..b) to 1 on all PEs.
func (c *Controller) SetMemory(a, b int) {
	for addr := a; addr < b; addr++ {
		c.computeAndStore(addr, addr, pe.FlagZero, pe.TableOne)
	}
}

// CopyFromTo sets mem[dst] = mem[src] on all PEs.
func (c *Controller) CopyFromTo(src, dst int) {
	c.computeAndStore(dst, src, pe.FlagZero, pe.TableIdentityA)
}

// LogAnd sets mem[a] = mem[a] AND mem[a2] on all PEs.
func (c *Controller) LogAnd(a, a2 int) {
	c.computeAndStore(a, a, a2, pe.TableAnd)
}

// LogXor sets mem[a] = mem[a] XOR mem[a2] on all PEs.
func (c *Controller) LogXor(a, a2 int) {
	c.computeAndStore(a, a, a2, pe.TableXor)
}

// SetIf sets mem[a] = mem[a] OR mem[chk] on all PEs.
func (c *Controller) SetIf(a, chk int) {
	c.computeAndStore(a, a, chk, pe.TableOr)
}

// CopyIf sets mem[dst] = mem[src] on every PE where mem[flag] == 1,
// leaving the others unchanged.
func (c *Controller) CopyIf(dst, src, flag int) {
	c.Engine.LOADA(src, pe.FlagZero, pe.TableIdentityA)
	c.Engine.LOADB(flag, flag, pe.TableZero)
	c.Engine.STORE(dst, true)
}

// SendMemory writes mem[addr] into FlagRouteData on all PEs.
func (c *Controller) SendMemory(addr int) {
	c.computeAndStore(pe.FlagRouteData, addr, pe.FlagZero, pe.TableIdentityA)
}

// RecvMemory writes FlagRouteData into mem[addr] on all PEs.
func (c *Controller) RecvMemory(addr int) {
	c.computeAndStore(addr, pe.FlagRouteData, pe.FlagZero, pe.TableIdentityA)
}

// CountFlag advances the unary thermometer counter stored across
// [cs, ce) by one observation of flag: every counter bit whose
// successor is still clear, and whose own bit and flag are both set,
// propagates forward. It is implemented as a single downward sweep of
// CopyIf calls: iterate i from ce-2 down to cs, CopyIf(i+1, i, flag).
//
// Before the first call mem[cs] must be 1 and mem[cs+1..ce) must be 0
// (the zero count). The maximum representable count is ce-cs-1.
func (c *Controller) CountFlag(cs, ce, flag int) {
	if ce-cs < 2 {
		panic(&pe.AddressError{Op: "CountFlag", Address: ce, Limit: cs + 2})
	}

	for i := ce - 2; i >= cs; i-- {
		c.CopyIf(i+1, i, flag)
	}
}

// Allocate returns a fresh [start, start+size) region above the
// reserved flags and bumps the heap pointer.
func (c *Controller) Allocate(size int) (start, end int) {
	return c.heap.allocate(size)
}

// DeallocateAll resets the heap pointer, freeing every region
// allocated since the last reset. There is no per-region free.
func (c *Controller) DeallocateAll() {
	c.heap.deallocateAll()
}
