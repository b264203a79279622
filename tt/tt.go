// Package tt implements the engine's transposition table: a fixed-size,
// power-of-two-addressed hashtable of search results keyed by the
// position's Zobrist hash.
package tt

import (
	"github.com/chrisflorin/knightwatch/board"
)

// EntryType classifies how a stored score relates to the search window
// that produced it.
type EntryType uint8

const (
	NONE EntryType = iota
	EXACT
	LOWER
	UPPER
)

// DefaultSizeMB is the table size New uses when given a non-positive
// sizeMB.
const DefaultSizeMB = 64

// Entry is a single transposition slot. Custom carries the best/refutation
// move found for this position so move ordering can try it first even
// when the stored bound doesn't satisfy the current alpha-beta window.
type Entry struct {
	Hash      uint64
	Score     int32
	DepthLeft int8
	EntryType EntryType
	Age       uint8
	Custom    board.Move
}

// Table is an open-addressed array of Entry slots, one per index; a
// single slot per index (rather than the teacher's clustered buckets)
// keeps Probe/Store O(1) with no cluster scan, at the cost of more
// frequent same-index collisions - acceptable since full hashes are
// always verified before use.
type Table struct {
	slots []Entry
	mask  uint64
	age   uint8
}

// New builds a table sized to the nearest power of two not exceeding
// sizeMB megabytes.
func New(sizeMB int) *Table {
	if sizeMB <= 0 {
		sizeMB = DefaultSizeMB
	}
	entrySize := uint64(24) // Hash(8) + Score(4) + DepthLeft(1) + EntryType(1) + Age(1) + Custom(4), rounded up
	count := uint64(sizeMB) * 1024 * 1024 / entrySize
	count = nextPowerOfTwoFloor(count)
	if count == 0 {
		count = 1
	}
	return &Table{
		slots: make([]Entry, count),
		mask:  count - 1,
	}
}

func nextPowerOfTwoFloor(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p<<1 <= n {
		p <<= 1
	}
	return p
}

func (t *Table) index(hash uint64) uint64 {
	return hash & t.mask
}

// Clear resets every slot and the age counter, discarding all entries.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = Entry{}
	}
	t.age = 0
}

// IncrementAge marks all existing entries as one generation staler.
// Called at the start of each iterative-deepening root search so stale
// entries from a previous position become preferentially replaceable
// without needing to be cleared outright.
func (t *Table) IncrementAge() {
	t.age++
}

// Probe looks up hash and reports the stored entry type, score and
// depth. It returns (NONE, 0, 0, Move(0), false) on a miss, including a
// same-index collision with a different full hash.
func (t *Table) Probe(hash uint64) (entryType EntryType, score int32, depthLeft int8, custom board.Move, ok bool) {
	e := &t.slots[t.index(hash)]
	if e.EntryType == NONE || e.Hash != hash {
		return NONE, 0, 0, 0, false
	}
	return e.EntryType, e.Score, e.DepthLeft, e.Custom, true
}

// Store inserts or overwrites the slot for hash. The incoming entry
// replaces the resident one if the slot is empty, the resident entry is
// from an older search generation, or the new depth is at least as deep
// as the one already stored.
func (t *Table) Store(hash uint64, score int32, depthLeft int8, entryType EntryType, custom board.Move) {
	e := &t.slots[t.index(hash)]
	stale := e.EntryType == NONE || e.Age != t.age
	notDeeper := e.DepthLeft <= depthLeft
	if !stale && !notDeeper {
		return
	}
	// A hash-move found at shallower depth is still useful for move
	// ordering; keep it if the new store doesn't supply one of its own.
	if custom == 0 && e.Hash == hash {
		custom = e.Custom
	}
	e.Hash = hash
	e.Score = score
	e.DepthLeft = depthLeft
	e.EntryType = entryType
	e.Age = t.age
	e.Custom = custom
}

// Len reports the number of addressable slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// HashFull estimates per-mille occupancy of the current search
// generation, the way the "info hashfull" UCI field is computed.
func (t *Table) HashFull() int {
	if len(t.slots) == 0 {
		return 0
	}
	sampleSize := 1000
	if sampleSize > len(t.slots) {
		sampleSize = len(t.slots)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if t.slots[i].EntryType != NONE && t.slots[i].Age == t.age {
			used++
		}
	}
	return used * 1000 / sampleSize
}
