package cpu

const (
	MEMORY_SIZE  = 2048 // Number of memory cells.
	REFLECT_MASK = 0xff // Value XORed into the accumulator by REFLECT.
)

// Memory access operations, as reported by ErrAddress.
const (
	ACCESS_READ_SOURCE   = "Read source"
	ACCESS_READ_COMPUTED = "Read computed"
	ACCESS_WRITE         = "Write destination"
	ACCESS_REFLECT       = "Reflect destination"
	ACCESS_SNAPSHOT      = "Snapshot range"
)

// Memory is the machine's data memory.
type Memory [MEMORY_SIZE]uint32

// Snapshot maps memory addresses to the values held there.
type Snapshot map[int]uint32

// Check returns an ErrAddress if addr is not a valid memory address.
func (mem *Memory) Check(addr int64, operation string) (err error) {
	if addr < 0 || addr >= int64(len(mem)) {
		err = &ErrAddress{Operation: operation, Address: addr}
	}
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}

// Snapshot copies the inclusive address range [start, end] out of memory.
// An empty range (start > end) yields an empty snapshot.
func (mem *Memory) Snapshot(start, end int) (snap Snapshot, err error) {
	if start > end {
		snap = Snapshot{}
		return
	}

	for _, addr := range []int{start, end} {
		err = mem.Check(int64(addr), ACCESS_SNAPSHOT)
		if err != nil {
			return
		}
	}

	snap = make(Snapshot, end-start+1)
	for addr := start; addr <= end; addr++ {
		snap[addr] = mem[addr]
	}

	return
}
