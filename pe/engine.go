// Package pe implements the Processing Element array: 65,536 single-bit
// lockstep compute units arranged as 1,024 chips of 64 PEs each, driven
// by a microinstruction engine (LOADA/LOADB/STORE/RECV/SEND) over a
// truth-table ALU.
package pe

// FlagZero is the reserved flag index that always reads 0; writes to
// it are silently discarded.
const FlagZero = 0

// FlagRouteData is the reserved flag index that is the sole channel
// visible to the NEWS router.
const FlagRouteData = 63

// ChipCount is the number of 64-PE chips in the array.
const ChipCount = 1024

// PEsPerChip is the number of PEs sharing one 64-bit chip word.
const PEsPerChip = 64

// PECount is the total number of PEs in the array (ChipCount * PEsPerChip).
const PECount = ChipCount * PEsPerChip

// Engine holds the per-PE flag memory and the hidden A/B registers
// that LOADA/LOADB/STORE operate on. Storage is chip-major: mem[addr]
// is one 64-bit word per chip, so a single LOADA/LOADB/STORE call
// touches all 65,536 PEs in ChipCount word operations rather than
// PECount bit operations.
type Engine struct {
	mem [][ChipCount]uint64

	regA [ChipCount]uint64
	regB [ChipCount]uint64

	lastContextFlag int
}

// Builder constructs an Engine with a fluent WithX().Build() interface.
type Builder struct {
	memorySize int
}

// WithMemorySize sets the number of addressable flags per PE. It must
// be large enough to hold FlagRouteData (63) plus whatever the
// controller allocates above it.
func (b Builder) WithMemorySize(memorySize int) Builder {
	b.memorySize = memorySize
	return b
}

// Build creates the Engine.
func (b Builder) Build() *Engine {
	if b.memorySize <= FlagRouteData {
		panic(&AddressError{Op: "Build", Address: b.memorySize, Limit: FlagRouteData + 1})
	}

	e := &Engine{
		mem: make([][ChipCount]uint64, b.memorySize),
	}

	return e
}

// MemorySize returns the number of addressable flags per PE.
func (e *Engine) MemorySize() int {
	return len(e.mem)
}

func (e *Engine) checkAddr(op string, addr int) {
	if addr < 0 || addr >= len(e.mem) {
		panic(&AddressError{Op: op, Address: addr, Limit: len(e.mem)})
	}
}

func (e *Engine) checkChip(op string, chip int) {
	if chip < 0 || chip >= ChipCount {
		panic(&AddressError{Op: op, Address: chip, Limit: ChipCount})
	}
}

// Reset clears every flag of every PE to 0.
func (e *Engine) Reset() {
	for i := range e.mem {
		e.mem[i] = [ChipCount]uint64{}
	}
	e.regA = [ChipCount]uint64{}
	e.regB = [ChipCount]uint64{}
	e.lastContextFlag = FlagZero
}

func (e *Engine) read(addr int) [ChipCount]uint64 {
	if addr == FlagZero {
		return [ChipCount]uint64{}
	}

	return e.mem[addr]
}

// LOADA reads mem[addrA] and mem[readFlag] for every PE and updates
// the hidden A register to opS(a, s, 0).
func (e *Engine) LOADA(addrA, readFlag int, opS Table) {
	e.checkAddr("LOADA addrA", addrA)
	e.checkAddr("LOADA readFlag", readFlag)

	a := e.read(addrA)
	s := e.read(readFlag)

	for c := 0; c < ChipCount; c++ {
		e.regA[c] = opS.Apply(a[c], s[c], 0)
	}
}

// LOADB reads mem[addrB] and mem[contextFlag] for every PE, updates
// the hidden B register to opC(b, c, 0), and remembers contextFlag as
// the predicate source for the following STORE.
func (e *Engine) LOADB(addrB, contextFlag int, opC Table) {
	e.checkAddr("LOADB addrB", addrB)
	e.checkAddr("LOADB contextFlag", contextFlag)

	b := e.read(addrB)
	c := e.read(contextFlag)

	for chip := 0; chip < ChipCount; chip++ {
		e.regB[chip] = opC.Apply(b[chip], c[chip], 0)
	}

	e.lastContextFlag = contextFlag
}

// STORE commits the A register into mem[writeFlag] for every PE whose
// mem[contextFlag] (from the preceding LOADB) equals contextValue,
// leaving the others unchanged. Writes to FlagZero are discarded.
//
// The predicated write is computed with the tableSelect truth table
// (0xd8, "select B when ctx=1 else A") rather than a branch, so the
// whole chip word commits in one ALU evaluation: old and new values
// are fed to the mux in the order that makes ctx=1 choose the value
// belonging to contextValue.
func (e *Engine) STORE(writeFlag int, contextValue bool) {
	e.checkAddr("STORE writeFlag", writeFlag)

	if writeFlag == FlagZero {
		return
	}

	c := e.read(e.lastContextFlag)
	old := e.mem[writeFlag]

	for chip := 0; chip < ChipCount; chip++ {
		newVal, oldVal := e.regA[chip], old[chip]
		if !contextValue {
			newVal, oldVal = oldVal, newVal
		}
		old[chip] = tableSelect.Apply(oldVal, newVal, c[chip])
	}

	e.mem[writeFlag] = old
}

// RECV deposits the 64-bit value into the 64 PEs of chip chipNo, one
// bit per PE, into FlagRouteData. Bit i lands on chip-local index i.
func (e *Engine) RECV(chipNo int, value uint64) {
	e.checkChip("RECV", chipNo)
	e.mem[FlagRouteData][chipNo] = value
}

// SEND returns the 64-bit word formed from FlagRouteData of the 64
// PEs of chip chipNo, in the bit order RECV uses.
func (e *Engine) SEND(chipNo int) uint64 {
	e.checkChip("SEND", chipNo)
	return e.mem[FlagRouteData][chipNo]
}

// ChipWord returns the raw 64-bit word for (addr, chip) without going
// through the microinstruction contract. Used by the router, which
// operates directly on FlagRouteData's bit plane.
func (e *Engine) ChipWord(addr, chip int) uint64 {
	e.checkAddr("ChipWord", addr)
	e.checkChip("ChipWord", chip)
	return e.mem[addr][chip]
}

// SetChipWord writes the raw 64-bit word for (addr, chip). Writes to
// FlagZero are discarded, matching the STORE contract.
func (e *Engine) SetChipWord(addr, chip int, word uint64) {
	e.checkAddr("SetChipWord", addr)
	e.checkChip("SetChipWord", chip)

	if addr == FlagZero {
		return
	}

	e.mem[addr][chip] = word
}
