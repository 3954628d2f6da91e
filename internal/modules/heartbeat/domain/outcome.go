package domain

import (
	"fmt"
	"time"
)

// StatusError reports a non-success HTTP status from the tracking API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api responded with status %d", e.Code)
}

// Outcome is one dispatch result kept for diagnostics. Outcomes are never
// replayed; a failed heartbeat is dropped.
type Outcome struct {
	ID         string
	At         time.Time
	Entity     string
	Project    string
	StatusCode int
	Err        string
}

func (o Outcome) OK() bool {
	return o.Err == "" && o.StatusCode >= 200 && o.StatusCode < 300
}
