package memory

import "sync/atomic"

var lastID int64

// newID hands out process-local sequential IDs, mirroring the database's
// AUTO_INCREMENT keys.
func newID() int64 {
	return atomic.AddInt64(&lastID, 1)
}
