// README: Common record ID helpers shared across modules.
package types

import (
	"math/rand"
	"sync/atomic"
	"time"
)

var lastID int64

// NewID returns a time-derived record id (unix milliseconds), bumped past the
// previously issued id so two calls in the same millisecond stay unique.
func NewID() int64 {
	now := time.Now().UnixMilli()
	for {
		prev := atomic.LoadInt64(&lastID)
		if now <= prev {
			now = prev + 1
		}
		if atomic.CompareAndSwapInt64(&lastID, prev, now) {
			return now
		}
	}
}

// NewScatteredID adds a small random component on top of the millisecond
// timestamp. Used by the settlement ledger, which may receive ids minted by
// multiple processes.
func NewScatteredID() int64 {
	return time.Now().UnixMilli() + rand.Int63n(1000)
}
