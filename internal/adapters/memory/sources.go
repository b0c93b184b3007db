package memory

import (
	"context"
	"sync"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/upstream"
)

// Sources serves fixed upstream records. It stands in for the business modules when
// no UPSTREAM_BASE_URL is configured and in tests.
type Sources struct {
	mu        sync.Mutex
	fees      []domain.PendingFee
	rentals   []domain.PendingRental
	profits   []domain.PendingProfit
	feeErr    error
	rentalErr error
	profitErr error
}

var _ upstream.Sources = (*Sources)(nil)

// NewSources returns an empty source set.
func NewSources() *Sources {
	return &Sources{}
}

func (s *Sources) SetFees(fees ...domain.PendingFee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fees = fees
}

func (s *Sources) SetRentals(rentals ...domain.PendingRental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals = rentals
}

func (s *Sources) SetProfits(profits ...domain.PendingProfit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profits = profits
}

// FailWith makes the listed domains return err on the next fetches. A nil err clears the failure.
func (s *Sources) FailWith(err error, domains ...domain.SourceDomain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range domains {
		switch d {
		case domain.SourceFee:
			s.feeErr = err
		case domain.SourceRental:
			s.rentalErr = err
		case domain.SourceMemberProfit:
			s.profitErr = err
		}
	}
}

func (s *Sources) ListPendingFees(context.Context) ([]domain.PendingFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feeErr != nil {
		return nil, s.feeErr
	}
	return append([]domain.PendingFee(nil), s.fees...), nil
}

func (s *Sources) ListPendingRentals(context.Context) ([]domain.PendingRental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rentalErr != nil {
		return nil, s.rentalErr
	}
	return append([]domain.PendingRental(nil), s.rentals...), nil
}

func (s *Sources) ListPendingProfits(context.Context) ([]domain.PendingProfit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profitErr != nil {
		return nil, s.profitErr
	}
	return append([]domain.PendingProfit(nil), s.profits...), nil
}
