package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/profit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadingDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGetDashboard(t *testing.T) {
	repo := &mockShipmentRepo{records: []model.ShipmentRecord{
		{LoadingDate: loadingDate(2025, time.May, 1), TruckingPrice: 100.005, Client: "Acme"},
		{LoadingDate: loadingDate(2025, time.June, 1), TruckingPrice: 150, Client: "Acme"},
		{LoadingDate: loadingDate(2024, time.June, 1), TruckingPrice: 999, Client: "Old"}, // other year
	}}
	svc := NewStatisticsService(repo)

	dashboard, err := svc.GetDashboard(context.Background(), 2025, profit.GranularityMonth)
	require.NoError(t, err)

	assert.Equal(t, 2025, dashboard.Year)
	assert.Equal(t, 2, dashboard.Volume)
	// rounded for display
	assert.Equal(t, 250.01, dashboard.Profit)
	require.Len(t, dashboard.Buckets, 2)
	assert.Equal(t, 100.01, dashboard.Buckets[0].Profit)
	assert.InDelta(t, 49.99, dashboard.Growth, 0.02)
	require.Len(t, dashboard.TopClients, 1)
	assert.Equal(t, 2, dashboard.TopClients[0].Count)
}

func TestGetDashboardInvalidGranularity(t *testing.T) {
	svc := NewStatisticsService(&mockShipmentRepo{})

	_, err := svc.GetDashboard(context.Background(), 2025, profit.Granularity("year"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "granularity")
}

func TestGetDashboardEmptyYear(t *testing.T) {
	svc := NewStatisticsService(&mockShipmentRepo{})

	dashboard, err := svc.GetDashboard(context.Background(), 2025, profit.GranularityDay)
	require.NoError(t, err)
	assert.Equal(t, 0, dashboard.Volume)
	assert.Equal(t, 0.0, dashboard.Profit)
	assert.Empty(t, dashboard.Buckets)
}
