package controller

import "github.com/sarchlab/mppsim/pe"

// heapBase is the first flag address the allocator may hand out.
// Starting the heap at 0 would collide with FlagZero, and starting it
// anywhere at or below 63 would collide with FlagRouteData once the
// heap grew past that point, so the heap begins above every reserved
// flag.
const heapBase = pe.FlagRouteData + 1

// allocator is a heap-style, bump-pointer flag allocator. There is no
// per-allocation free; deallocateAll resets the bump pointer, which is
// all a generation microprogram needs since it re-allocates its
// scratch region fresh every call.
type allocator struct {
	htop int
	size int
}

func newAllocator(memorySize int) *allocator {
	return &allocator{htop: heapBase, size: memorySize}
}

// allocate returns [start, start+size) and bumps htop. It panics with
// a *pe.AddressError if the region would not fit.
func (a *allocator) allocate(size int) (start, end int) {
	start = a.htop
	end = start + size
	if end > a.size {
		panic(&pe.AddressError{Op: "allocate", Address: end, Limit: a.size})
	}

	a.htop = end
	return start, end
}

// deallocateAll resets the bump pointer to heapBase.
func (a *allocator) deallocateAll() {
	a.htop = heapBase
}
