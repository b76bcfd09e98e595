package vm

// Memory is a sparse 32-bit address space of 32-bit values.
// Unwritten addresses read as zero.
type Memory struct {
	cells map[uint32]uint32
}

// Load returns the value at addr.
func (mem *Memory) Load(addr uint32) uint32 {
	return mem.cells[addr]
}

// Store writes value to addr.
func (mem *Memory) Store(addr uint32, value uint32) {
	if mem.cells == nil {
		mem.cells = make(map[uint32]uint32)
	}
	mem.cells[addr] = value
}

// Len returns the number of addresses written.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Reset forgets every stored value.
func (mem *Memory) Reset() {
	clear(mem.cells)
}
