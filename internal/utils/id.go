package utils

import "sync/atomic"

var clientCounter atomic.Uint64

// NextClientID returns a process-unique, monotonically increasing
// client id. Ids are never reused for the lifetime of the process.
func NextClientID() uint64 {
	return clientCounter.Add(1)
}
