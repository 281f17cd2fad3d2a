package profit

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNetProfitZeroRecord(t *testing.T) {
	r := &model.ShipmentRecord{}
	assert.Equal(t, 0.0, NetProfit(r))
}

func TestNetProfitConvertsOceanFreight(t *testing.T) {
	r := &model.ShipmentRecord{
		OceanFreightCost:  1000,
		OceanFreightPrice: 1200,
		ExchangeRate:      7.0,
		TruckingCost:      500,
		TruckingPrice:     600,
		CustomsCost:       200,
		CustomsPrice:      250,
	}
	// (1200-1000)*7.0 + (600-500) + (250-200)
	assert.InDelta(t, 1550.0, NetProfit(r), 1e-9)
}

func TestNetProfitDefaultExchangeRate(t *testing.T) {
	r := &model.ShipmentRecord{
		OceanFreightCost:  100,
		OceanFreightPrice: 200,
		// ExchangeRate left unset
	}
	assert.InDelta(t, 100*DefaultExchangeRate, NetProfit(r), 1e-9)
}

func TestNetProfitNegativeValuesTolerated(t *testing.T) {
	r := &model.ShipmentRecord{
		TruckingCost:  800,
		TruckingPrice: 300,
		SealCost:      -50, // bad persisted data must not break the sum
	}
	assert.InDelta(t, -450.0, NetProfit(r), 1e-9)
}

func TestNetProfitSumsEveryCategory(t *testing.T) {
	// Each local category contributes its own margin; ocean converts.
	r := &model.ShipmentRecord{ExchangeRate: 2}
	r.OceanFreightPrice = 10
	r.TruckingPrice = 1
	r.CustomsPrice = 1
	r.THCPrice = 1
	r.PrintingPrice = 1
	r.SealPrice = 1
	r.DocPrice = 1
	r.TelexPrice = 1
	r.BillOfLadingPrice = 1
	r.PickupPrice = 1
	r.WeighingPrice = 1
	r.VGMPrice = 1
	r.AmendmentPrice = 1
	r.DetentionPrice = 1
	r.DemurragePrice = 1
	r.HandlingPrice = 1
	r.InsurancePrice = 1

	// 10*2 ocean + 16 local categories at 1 each
	assert.InDelta(t, 36.0, NetProfit(r), 1e-9)
}

func TestBreakdownKeepsQuotedCurrency(t *testing.T) {
	r := &model.ShipmentRecord{
		OceanFreightCost:  1000,
		OceanFreightPrice: 1200,
		ExchangeRate:      7.0,
		TruckingCost:      500,
		TruckingPrice:     600,
	}

	lines := Breakdown(r)
	assert.Len(t, lines, len(Categories()))

	ocean := lines[0]
	assert.Equal(t, "ocean_freight", ocean.Key)
	assert.Equal(t, SymbolForeign, ocean.Symbol)
	// Breakdown stays in USD, no conversion
	assert.InDelta(t, 200.0, ocean.Profit, 1e-9)

	trucking := lines[1]
	assert.Equal(t, "trucking", trucking.Key)
	assert.Equal(t, SymbolLocal, trucking.Symbol)
	assert.InDelta(t, 100.0, trucking.Profit, 1e-9)
}
