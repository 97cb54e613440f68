package services

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

var tempSeq atomic.Uint64

// tempID builds a provisional id for an optimistic create. The sequence
// suffix keeps ids unique within one clock tick.
func tempID(kind string, now time.Time) string {
	return fmt.Sprintf("temp-%s-%d-%d", kind, now.UnixNano(), tempSeq.Add(1))
}
