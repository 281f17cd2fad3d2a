package profit

import (
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// recordWithProfit builds a record whose net profit equals p, anchored at
// the given loading date.
func recordWithProfit(loading *time.Time, p float64) model.ShipmentRecord {
	return model.ShipmentRecord{LoadingDate: loading, TruckingPrice: p}
}

func TestAggregateEmptyCollection(t *testing.T) {
	s := Aggregate(nil, GranularityMonth)

	assert.Equal(t, 0, s.Volume)
	assert.Equal(t, 0.0, s.Profit)
	assert.Equal(t, 0.0, s.Growth)
	assert.Empty(t, s.Buckets)
	assert.Empty(t, s.TopClients)
	assert.Empty(t, s.TopRoutes)
	assert.Empty(t, s.ContainerTypes)
}

func TestAggregateAnnualTotals(t *testing.T) {
	records := []model.ShipmentRecord{
		recordWithProfit(date(2025, time.March, 10), 100),
		recordWithProfit(date(2025, time.March, 12), 200),
		recordWithProfit(date(2025, time.April, 1), 50),
	}

	s := Aggregate(records, GranularityMonth)
	assert.Equal(t, 3, s.Volume)
	assert.InDelta(t, 350.0, s.Profit, 1e-9)

	require.Len(t, s.Buckets, 2)
	assert.Equal(t, "2025-03", s.Buckets[0].Label)
	assert.Equal(t, 2, s.Buckets[0].Volume)
	assert.InDelta(t, 300.0, s.Buckets[0].Profit, 1e-9)
	assert.Equal(t, "2025-04", s.Buckets[1].Label)
}

func TestAggregateWeekBucketsStartMonday(t *testing.T) {
	// 2025-06-04 is a Wednesday, its week starts Monday 2025-06-02.
	// 2025-06-08 is the Sunday of that same week.
	records := []model.ShipmentRecord{
		recordWithProfit(date(2025, time.June, 4), 10),
		recordWithProfit(date(2025, time.June, 8), 20),
		recordWithProfit(date(2025, time.June, 9), 5), // next Monday
	}

	s := Aggregate(records, GranularityWeek)
	require.Len(t, s.Buckets, 2)
	assert.Equal(t, "2025-06-02", s.Buckets[0].Label)
	assert.Equal(t, 2, s.Buckets[0].Volume)
	assert.Equal(t, "2025-06-09", s.Buckets[1].Label)
}

func TestAggregateAnchorFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2025, time.July, 15, 9, 30, 0, 0, time.UTC)
	records := []model.ShipmentRecord{
		{CreatedAt: created, TruckingPrice: 40},
	}

	s := Aggregate(records, GranularityDay)
	require.Len(t, s.Buckets, 1)
	assert.Equal(t, "2025-07-15", s.Buckets[0].Label)
}

func TestAggregateGrowthMonthOverMonth(t *testing.T) {
	records := []model.ShipmentRecord{
		recordWithProfit(date(2025, time.May, 1), 100),
		recordWithProfit(date(2025, time.June, 1), 150),
	}

	s := Aggregate(records, GranularityMonth)
	assert.InDelta(t, 50.0, s.Growth, 1e-9)
}

func TestAggregateGrowthIgnoresDisplayGranularity(t *testing.T) {
	records := []model.ShipmentRecord{
		recordWithProfit(date(2025, time.May, 1), 100),
		recordWithProfit(date(2025, time.June, 1), 150),
	}

	// Growth stays month-over-month even on a daily chart.
	s := Aggregate(records, GranularityDay)
	assert.InDelta(t, 50.0, s.Growth, 1e-9)
}

func TestAggregateGrowthSaturatesOnZeroPrevious(t *testing.T) {
	records := []model.ShipmentRecord{
		recordWithProfit(date(2025, time.May, 1), 0),
		recordWithProfit(date(2025, time.June, 1), 50),
	}

	s := Aggregate(records, GranularityMonth)
	assert.Equal(t, 100.0, s.Growth)
}

func TestAggregateGrowthNeedsTwoMonths(t *testing.T) {
	records := []model.ShipmentRecord{
		recordWithProfit(date(2025, time.May, 1), 100),
	}

	s := Aggregate(records, GranularityMonth)
	assert.Equal(t, 0.0, s.Growth)
}

func TestAggregateTopClients(t *testing.T) {
	records := []model.ShipmentRecord{
		{Client: "Acme", LoadingDate: date(2025, time.May, 1)},
		{Client: "Acme", LoadingDate: date(2025, time.May, 2)},
		{Client: "Beta", LoadingDate: date(2025, time.May, 3)},
	}

	s := Aggregate(records, GranularityMonth)
	require.Len(t, s.TopClients, 2)
	assert.Equal(t, GroupCount{Name: "Acme", Count: 2}, s.TopClients[0])
	assert.Equal(t, GroupCount{Name: "Beta", Count: 1}, s.TopClients[1])
}

func TestAggregateTopClientsPlaceholderAndLimit(t *testing.T) {
	records := []model.ShipmentRecord{
		{Client: ""},
		{Client: "A"}, {Client: "B"}, {Client: "C"}, {Client: "D"}, {Client: "E"},
	}

	s := Aggregate(records, GranularityMonth)
	assert.Len(t, s.TopClients, 5)
	assert.Equal(t, UnknownClient, s.TopClients[0].Name) // ties keep first-seen order
}

func TestAggregateTopRoutes(t *testing.T) {
	records := []model.ShipmentRecord{
		{PortOfLoading: "Shanghai", PortOfDischarge: "Rotterdam"},
		{PortOfLoading: "Shanghai", PortOfDischarge: "Rotterdam"},
		{PortOfLoading: "Ningbo", PortOfDischarge: "Hamburg"},
	}

	s := Aggregate(records, GranularityMonth)
	require.Len(t, s.TopRoutes, 2)
	assert.Equal(t, "Shanghai - Rotterdam", s.TopRoutes[0].Name)
	assert.Equal(t, 2, s.TopRoutes[0].Count)
}

func TestAggregateContainerDistribution(t *testing.T) {
	records := []model.ShipmentRecord{
		{ContainerType: model.Container40HQ},
		{ContainerType: model.Container40HQ},
		{ContainerType: ""},
	}

	s := Aggregate(records, GranularityMonth)
	assert.ElementsMatch(t, []GroupCount{
		{Name: model.Container40HQ, Count: 2},
		{Name: OtherContainerType, Count: 1},
	}, s.ContainerTypes)
}

func TestGranularityValid(t *testing.T) {
	assert.True(t, GranularityDay.Valid())
	assert.True(t, GranularityWeek.Valid())
	assert.True(t, GranularityMonth.Valid())
	assert.False(t, Granularity("year").Valid())
	assert.False(t, Granularity("").Valid())
}
