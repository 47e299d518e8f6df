package engine

import "github.com/chesscore/enginecore/internal/board"

// TTEntry is the transposition node: a principal-variation move, a
// score, and the depth that score is known to.
type TTEntry struct {
	Key   uint64
	Move  board.Move
	Score int
	Depth int
	Valid bool
}

// TranspositionTable is an open-addressed, single-slot-per-bucket
// cache keyed by Zobrist hash. Entries are replaced on deeper-or-
// equal analysis of the same key — the simplest correct replacement
// policy. Cleared at the start of every root search.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
}

const ttEntrySize = 32 // approximate bytes per entry, for sizing

// NewTranspositionTable allocates a table sized to sizeMB megabytes,
// rounded down to a power of two slot count.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	wanted := sizeMB * 1024 * 1024 / ttEntrySize
	count := 1
	for count*2 <= wanted {
		count *= 2
	}
	if count < 1024 {
		count = 1024
	}
	return &TranspositionTable{
		entries: make([]TTEntry, count),
		mask:    uint64(count - 1),
	}
}

func (t *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	e := &t.entries[hash&t.mask]
	if e.Valid && e.Key == hash {
		return *e, true
	}
	return TTEntry{}, false
}

func (t *TranspositionTable) Store(hash uint64, depth int, score int, move board.Move) {
	e := &t.entries[hash&t.mask]
	if !e.Valid || e.Key != hash || depth >= e.Depth {
		e.Key = hash
		e.Move = move
		e.Score = score
		e.Depth = depth
		e.Valid = true
	}
}

func (t *TranspositionTable) Clear() {
	for i := range t.entries {
		t.entries[i] = TTEntry{}
	}
}

// HashFull samples the table and reports per-mille occupancy, as
// reported in the UCI "info hashfull" field.
func (t *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if sampleSize > len(t.entries) {
		sampleSize = len(t.entries)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if t.entries[i].Valid {
			used++
		}
	}
	return used * 1000 / sampleSize
}
