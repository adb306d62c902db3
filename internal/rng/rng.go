package rng

import "sync"

// #region constants
// DefaultSeed is the process-wide seed used for every reference panel.
const DefaultSeed uint32 = 123456789

const (
	mulberryIncrement = 0x6D2B79F5
	twoPow32          = 4294967296.0
)
// #endregion constants

// #region source
// Source yields a reproducible stream of uniform draws in [0, 1).
type Source interface {
	Next() float64
}
// #endregion source

// #region mulberry32
// Mulberry32 is a 32-bit state generator. Two instances built from the same
// seed produce bit-identical streams.
type Mulberry32 struct {
	state uint32
}

// New creates a generator seeded with seed.
func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the stream and returns the next raw 32-bit output.
func (m *Mulberry32) Uint32() uint32 {
	m.state += mulberryIncrement
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Next returns the next uniform draw in [0, 1).
func (m *Mulberry32) Next() float64 {
	return float64(m.Uint32()) / twoPow32
}
// #endregion mulberry32

// #region locked
// Locked serializes access to a Source shared between goroutines.
// Prefer one generator per panel build; this exists for callers that cannot.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Next returns the next draw from the wrapped source.
func (l *Locked) Next() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Next()
}
// #endregion locked
