// Package monitor runs the background sweeps that keep batches
// converging: force-failing tasks stuck in PROCESSING and re-triggering
// batches whose run died mid-flight.
package monitor

import "time"

// Clock abstracts time so the sweeps can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
