package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	Message   string
	Latency   time.Duration
	Timestamp time.Time
}

// NewPingResult creates a PingResult for an interaction created at sentAt
// and handled at now.
func NewPingResult(sentAt, now time.Time) *PingResult {
	latency := max(now.Sub(sentAt), 0)

	return &PingResult{
		Message:   fmt.Sprintf("Pong! (%dms)", latency.Milliseconds()),
		Latency:   latency,
		Timestamp: now,
	}
}
