// Package state holds the ticker's single in-memory snapshot.
package state

import (
	"sync"
	"time"

	"github.com/usa-trezo/en-us/internal/app/models"
)

// View is a copy of the ticker state safe to hand to renderers.
type View struct {
	Entries   []models.MarketEntry
	Loading   bool
	Version   uint64
	UpdatedAt time.Time
}

type ApplyResult int

const (
	Applied ApplyResult = iota
	// Stale means strict ordering rejected a snapshot issued before the current one.
	Stale
	// Closed means the ticker was unmounted and the snapshot arrived late.
	Closed
)

func (r ApplyResult) String() string {
	switch r {
	case Applied:
		return "applied"
	case Stale:
		return "stale"
	case Closed:
		return "closed"
	}
	return "unknown"
}

type TickerState struct {
	mu        sync.RWMutex
	entries   []models.MarketEntry
	loaded    bool
	closed    bool
	version   uint64
	seq       uint64
	updatedAt time.Time
	strict    bool
}

// New returns an empty, loading state. With strict set, snapshots whose Seq
// is lower than the applied one are dropped instead of overwriting it.
func New(strict bool) *TickerState {
	return &TickerState{strict: strict}
}

// Apply replaces the entries with snap's in one step.
func (s *TickerState) Apply(snap models.Snapshot) ApplyResult {
	entries := make([]models.MarketEntry, len(snap.Entries))
	copy(entries, snap.Entries)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Closed
	}
	if s.strict && s.loaded && snap.Seq < s.seq {
		return Stale
	}
	s.entries = entries
	s.loaded = true
	s.seq = snap.Seq
	s.updatedAt = snap.FetchedAt
	s.version++
	return Applied
}

func (s *TickerState) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.MarketEntry, len(s.entries))
	copy(entries, s.entries)
	return View{
		Entries:   entries,
		Loading:   !s.loaded,
		Version:   s.version,
		UpdatedAt: s.updatedAt,
	}
}

// Version is the number of snapshots applied so far.
func (s *TickerState) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Seq returns the issue sequence of the applied snapshot.
func (s *TickerState) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Close makes every later Apply a no-op. The last snapshot stays readable.
func (s *TickerState) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
