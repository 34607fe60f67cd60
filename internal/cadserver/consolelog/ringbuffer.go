// Package consolelog implements the bounded console-log ring buffer backing
// get_console_output (spec §4.4). It is a supplemented feature recovered
// from the FreeCAD addon this system is grounded on: get_console_output
// returns history accumulated across calls, not just the last script's
// stdout.
package consolelog

import "sync"

// DefaultCapacity is the number of lines retained.
const DefaultCapacity = 1000

// RingBuffer is a fixed-capacity, thread-safe line buffer shared by both
// transport servers (spec §4.4: "both peer servers... backed by the same C3
// instance").
type RingBuffer struct {
	mu       sync.Mutex
	lines    []string
	capacity int
	next     int
	filled   bool
}

// New creates a ring buffer with the given capacity. capacity <= 0 uses
// DefaultCapacity.
func New(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &RingBuffer{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// Append records one line, evicting the oldest line once full.
func (r *RingBuffer) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.next] = line
	r.next = (r.next + 1) % r.capacity

	if r.next == 0 {
		r.filled = true
	}
}

// AppendLines splits s on newlines and appends each non-empty line.
func (r *RingBuffer) AppendLines(s string) {
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				r.Append(s[start:i])
			}

			start = i + 1
		}
	}

	if start < len(s) {
		r.Append(s[start:])
	}
}

// Last returns up to n most recent lines, oldest first. n <= 0 returns
// everything retained.
func (r *RingBuffer) Last(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ordered []string
	if r.filled {
		ordered = append(ordered, r.lines[r.next:]...)
		ordered = append(ordered, r.lines[:r.next]...)
	} else {
		ordered = append(ordered, r.lines[:r.next]...)
	}

	if n <= 0 || n >= len(ordered) {
		return ordered
	}

	return ordered[len(ordered)-n:]
}
