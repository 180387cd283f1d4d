package service

import (
	"context"
	"time"

	"github.com/spec-kit/service-desk/internal/aggregate"
	"github.com/spec-kit/service-desk/internal/domain"
	"github.com/spec-kit/service-desk/internal/repository"
)

// statisticsWindowMonths is the trailing window for the monthly rollup.
const statisticsWindowMonths = 12

// StatsService computes the leadership statistics bundle. Everything is
// recomputed from the current row set on each call.
type StatsService struct {
	requests repository.RequestRepository
	now      func() time.Time
}

// NewStatsService constructs the service.
func NewStatsService(requests repository.RequestRepository) *StatsService {
	return &StatsService{requests: requests, now: time.Now}
}

// StatisticsBundle is the full leadership view.
type StatisticsBundle struct {
	Totals      aggregate.Totals
	ProfitTotal float64
	Monthly     []aggregate.MonthlyBucket
	ByStatus    map[domain.RequestStatus]int
	Details     []domain.RequestDetail
}

// Statistics assembles counts, profit, rollups, and the joined detail list.
func (s *StatsService) Statistics(ctx context.Context) (*StatisticsBundle, error) {
	all, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	details, err := s.requests.ListDetails(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsBundle{
		Totals:      aggregate.CountByStatus(all),
		ProfitTotal: aggregate.ProfitTotal(all),
		Monthly:     aggregate.MonthlyRollup(all, s.now(), statisticsWindowMonths),
		ByStatus:    aggregate.StatusRollup(all),
		Details:     details,
	}, nil
}
