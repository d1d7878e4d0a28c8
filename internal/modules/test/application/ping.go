package application

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrhook/internal/modules/test/domain"
)

// PingInteractor handles the ping use case.
type PingInteractor struct {
	now func() time.Time
}

// NewPingInteractor creates a new PingInteractor.
func NewPingInteractor() *PingInteractor {
	return &PingInteractor{now: time.Now}
}

// Execute measures the latency of the interaction with the given ID.
func (p *PingInteractor) Execute(interactionID string) (*domain.PingResult, error) {
	id, err := snowflake.Parse(interactionID)
	if err != nil {
		return nil, fmt.Errorf("invalid interaction ID %q: %w", interactionID, err)
	}
	return domain.NewPingResult(id.Time(), p.now()), nil
}
