package application

import "github.com/sglre6355/sgrhook/internal/modules/test/domain"

// PongInteractor handles the pong use case.
type PongInteractor struct{}

// NewPongInteractor creates a new PongInteractor.
func NewPongInteractor() *PongInteractor {
	return &PongInteractor{}
}

// Execute parses the rally count and returns the pong result.
func (p *PongInteractor) Execute(count string) (*domain.PongResult, error) {
	n, err := domain.ParseCount(count)
	if err != nil {
		return nil, err
	}
	return domain.NewPongResult(n), nil
}
