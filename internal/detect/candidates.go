package detect

import (
	"fmt"

	"github.com/ja-he/touchkey/internal/keyboard"
)

// MaxCapacity is the largest capacity a CandidateBuffer can have.
const MaxCapacity = 12

// Candidate is a key that qualified for a touch point.
type Candidate struct {
	Key keyboard.KeyIndex
	// Distance is the squared distance from the touch point to the key's
	// nearest edge.
	Distance int
	// Inside is whether the touch point is on the key.
	Inside bool
}

// CandidateBuffer ranks candidates ascending by distance, keeping only the
// closest ones up to its capacity.
//
// Of two candidates at equal distance, one the touch point is inside of ranks
// ahead of one it is outside of; otherwise the earlier insertion wins.
//
// A CandidateBuffer is a plain value; copying it copies its contents.
type CandidateBuffer struct {
	entries  [MaxCapacity]Candidate
	length   int
	capacity int
}

// NewCandidateBuffer returns an empty buffer of the given capacity.
// It panics if the capacity is not within 1..MaxCapacity.
func NewCandidateBuffer(capacity int) CandidateBuffer {
	if capacity < 1 || capacity > MaxCapacity {
		panic(fmt.Sprintf("candidate buffer capacity %d not within 1..%d", capacity, MaxCapacity))
	}
	return CandidateBuffer{capacity: capacity}
}

// Insert ranks the candidate into the buffer, shifting all lower-ranked
// entries down by one and dropping any entry beyond the capacity.
// It returns the position the candidate was inserted at, or the capacity if
// it ranked too low to be kept.
func (b *CandidateBuffer) Insert(c Candidate) int {
	pos := 0
	for ; pos < b.length; pos++ {
		e := b.entries[pos]
		if c.Distance < e.Distance || (c.Distance == e.Distance && c.Inside && !e.Inside) {
			break
		}
	}
	if pos >= b.capacity {
		return b.capacity
	}
	if b.length < b.capacity {
		b.length++
	}
	copy(b.entries[pos+1:b.length], b.entries[pos:b.length-1])
	b.entries[pos] = c
	return pos
}

// Len returns the number of candidates held.
func (b *CandidateBuffer) Len() int { return b.length }

// Capacity returns the capacity of the buffer.
func (b *CandidateBuffer) Capacity() int { return b.capacity }

// At returns the candidate at the given rank, if there is one.
func (b *CandidateBuffer) At(pos int) (Candidate, bool) {
	if pos < 0 || pos >= b.length {
		return Candidate{}, false
	}
	return b.entries[pos], true
}

// KeyAt returns the key at the given rank, or NoKey for unused slots.
func (b *CandidateBuffer) KeyAt(pos int) keyboard.MaybeKey {
	c, ok := b.At(pos)
	if !ok {
		return keyboard.NoKey
	}
	return keyboard.SomeKey(c.Key)
}

// Candidates returns the held candidates in rank order.
func (b *CandidateBuffer) Candidates() []Candidate {
	return append([]Candidate(nil), b.entries[:b.length]...)
}

// Reset empties the buffer, keeping its capacity.
func (b *CandidateBuffer) Reset() {
	b.length = 0
}
