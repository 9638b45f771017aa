package models

import "time"

// BusyInterval is a half-open [Start, End) window during which a host's
// calendar is occupied. Both instants are UTC. Intervals are fetched fresh
// per query and never cached across requests.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Slot is a candidate bookable window. Only the start instant is carried;
// the duration is uniform and comes from configuration.
type Slot struct {
	StartTime time.Time `json:"startTime"`
}
