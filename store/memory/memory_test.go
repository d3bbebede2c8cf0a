package memory

import (
	"sync/atomic"
	"testing"
	"time"

	"Roomio/store"
	"Roomio/store/storetest"
)

// tickingClock advances a millisecond per call so rows created back to back
// never share a timestamp.
func tickingClock() func() time.Time {
	start := time.Now().Add(-time.Hour)
	var ticks int64
	return func() time.Time {
		return start.Add(time.Duration(atomic.AddInt64(&ticks, 1)) * time.Millisecond)
	}
}

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s := New()
		s.SetClock(tickingClock())
		return s
	})
}
