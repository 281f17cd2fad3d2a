package service

import (
	"context"
	"fmt"

	"backend/internal/profit"
	"backend/internal/repository"
)

// DashboardResponse wraps the aggregated year summary with its parameters.
type DashboardResponse struct {
	Year        int                `json:"year"`
	Granularity profit.Granularity `json:"granularity"`
	profit.Summary
}

type StatisticsService interface {
	GetDashboard(ctx context.Context, year int, granularity profit.Granularity) (*DashboardResponse, error)
}

type statisticsService struct {
	shipmentRepo repository.ShipmentRepository
}

func NewStatisticsService(shipmentRepo repository.ShipmentRepository) StatisticsService {
	return &statisticsService{shipmentRepo: shipmentRepo}
}

// GetDashboard loads the reporting-year snapshot and rolls it up with the
// profit aggregator. Profits are rounded here, after aggregation.
func (s *statisticsService) GetDashboard(ctx context.Context, year int, granularity profit.Granularity) (*DashboardResponse, error) {
	if !granularity.Valid() {
		return nil, fmt.Errorf("invalid granularity %q: expected day, week or month", granularity)
	}

	records, err := s.shipmentRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shipments for %d: %w", year, err)
	}

	summary := profit.Aggregate(records, granularity)
	summary.Profit = roundMoney(summary.Profit)
	summary.Growth = roundMoney(summary.Growth)
	for i := range summary.Buckets {
		summary.Buckets[i].Profit = roundMoney(summary.Buckets[i].Profit)
	}

	return &DashboardResponse{
		Year:        year,
		Granularity: granularity,
		Summary:     summary,
	}, nil
}
