package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCount is returned when a rally count is not a positive integer.
var ErrInvalidCount = errors.New("invalid rally count")

// PongResult represents one return of the ball in a ping-pong rally.
type PongResult struct {
	Count    int
	Response string
	Next     int
}

// NewPongResult returns the rally state after count returns.
func NewPongResult(count int) *PongResult {
	response := "Pong 🏓"
	if count > 1 {
		response = fmt.Sprintf("Pong 🏓 ×%d", count)
	}

	return &PongResult{
		Count:    count,
		Response: response,
		Next:     count + 1,
	}
}

// ParseCount parses a rally count captured from a button's custom ID.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, s)
	}
	return n, nil
}
