package latch

import "sync/atomic"

// Latch is a one-way switch. Good for structures that are initially mutable,
// but thereafter read-only. A zero Latch is open
type Latch struct {
	state atomic.Int32
}

// Status constants
const (
	Open int32 = iota
	Sealed
)

// Seal closes the Latch. It returns true only for the call that performed
// the transition
func (l *Latch) Seal() bool {
	return l.state.CompareAndSwap(Open, Sealed)
}

// IsSealed returns whether the Latch has been sealed
func (l *Latch) IsSealed() bool {
	return l.state.Load() == Sealed
}
