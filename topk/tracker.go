// Package topk tracks the most requested libraries over a sliding window of
// request ticks.
package topk

import (
	"sync"

	"github.com/keilerkonzept/topk/sliding"
)

type Params struct {
	K          int // Entries reported by Top.
	WindowSize int // Ticks kept in the window.
	Width      int // Sketch width, 1024 if zero.
	Depth      int // Sketch depth, 3 if zero.
	// TickSize is the number of recorded requests per tick, 1000 if zero.
	TickSize uint64
}

type Entry struct {
	Namespace string `json:"namespace"`
	Count     uint32 `json:"count"`
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	sketch   *sliding.Sketch
	tickSize uint64
	tickReq  uint64
	ticks    uint64
}

// New panics if K or WindowSize is not positive.
func New(p Params) *Tracker {
	if p.K <= 0 || p.WindowSize <= 0 {
		panic("topk: K and WindowSize must be positive")
	}
	if p.Width == 0 {
		p.Width = 1024
	}
	if p.Depth == 0 {
		p.Depth = 3
	}
	if p.TickSize == 0 {
		p.TickSize = 1000
	}
	return &Tracker{
		sketch:   sliding.New(p.K, p.WindowSize, sliding.WithWidth(p.Width), sliding.WithDepth(p.Depth)),
		tickSize: p.TickSize,
	}
}

// Record counts one request for namespace and advances the window every
// TickSize requests.
func (t *Tracker) Record(namespace string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sketch.Incr(namespace)
	t.tickReq++
	if t.tickReq >= t.tickSize {
		t.sketch.Tick()
		t.ticks++
		t.tickReq = 0
	}
}

// Top returns the heaviest namespaces in the window, highest count first.
func (t *Tracker) Top() []Entry {
	t.mu.Lock()
	items := t.sketch.SortedSlice()
	t.mu.Unlock()

	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if it.Count == 0 {
			continue
		}
		out = append(out, Entry{Namespace: it.Item, Count: it.Count})
	}
	return out
}

// Ticks reports how many times the window advanced.
func (t *Tracker) Ticks() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}
