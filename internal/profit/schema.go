// Package profit holds the pure bookkeeping core: the fee schema, the
// per-shipment net profit calculation, predicate filtering and the
// dashboard aggregation. Everything here is a total function over an
// in-memory snapshot of shipment records: no I/O, no locking, no errors.
package profit

import "backend/internal/model"

// CurrencyClass tells whether a fee category needs exchange-rate conversion.
type CurrencyClass string

const (
	// CurrencyForeign fees are quoted in USD and converted to CNY with the
	// record's exchange rate.
	CurrencyForeign CurrencyClass = "foreign"
	// CurrencyLocal fees are already in CNY.
	CurrencyLocal CurrencyClass = "local"
)

// DefaultExchangeRate is the USD -> CNY rate applied when a record has no
// exchange rate set.
const DefaultExchangeRate = 7.2

// Currency symbols used when rendering per-category amounts.
const (
	SymbolForeign = "$"
	SymbolLocal   = "¥"
)

// FeeCategory describes one cost/price pair on a shipment record and how to
// read it. The accessor funcs keep the category table the single place that
// knows which struct fields belong to which fee.
type FeeCategory struct {
	Key      string
	Label    string
	Currency CurrencyClass
	Cost     func(r *model.ShipmentRecord) float64
	Price    func(r *model.ShipmentRecord) float64
}

// Symbol returns the currency symbol for this category's amounts.
func (c FeeCategory) Symbol() string {
	if c.Currency == CurrencyForeign {
		return SymbolForeign
	}
	return SymbolLocal
}

// categories is the closed, ordered fee schema. The first three are the
// mandatory form fields, the rest are optional and default to 0. Adding a
// fee category means adding the struct fields and one entry here; the
// calculator, breakdown and export all follow automatically.
var categories = []FeeCategory{
	{
		Key: "ocean_freight", Label: "Ocean Freight", Currency: CurrencyForeign,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.OceanFreightCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.OceanFreightPrice },
	},
	{
		Key: "trucking", Label: "Trucking", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.TruckingCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.TruckingPrice },
	},
	{
		Key: "customs", Label: "Customs Declaration", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.CustomsCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.CustomsPrice },
	},
	{
		Key: "thc", Label: "THC", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.THCCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.THCPrice },
	},
	{
		Key: "printing", Label: "Printing", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.PrintingCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.PrintingPrice },
	},
	{
		Key: "seal", Label: "Seal", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.SealCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.SealPrice },
	},
	{
		Key: "doc", Label: "Documentation", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.DocCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.DocPrice },
	},
	{
		Key: "telex", Label: "Telex Release", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.TelexCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.TelexPrice },
	},
	{
		Key: "bill_of_lading", Label: "Bill of Lading", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.BillOfLadingCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.BillOfLadingPrice },
	},
	{
		Key: "pickup", Label: "Differential Pickup", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.PickupCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.PickupPrice },
	},
	{
		Key: "weighing", Label: "Weighing", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.WeighingCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.WeighingPrice },
	},
	{
		Key: "vgm", Label: "VGM", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.VGMCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.VGMPrice },
	},
	{
		Key: "amendment", Label: "Amendment", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.AmendmentCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.AmendmentPrice },
	},
	{
		Key: "detention", Label: "Detention", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.DetentionCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.DetentionPrice },
	},
	{
		Key: "demurrage", Label: "Demurrage", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.DemurrageCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.DemurragePrice },
	},
	{
		Key: "handling", Label: "Handling", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.HandlingCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.HandlingPrice },
	},
	{
		Key: "insurance", Label: "Insurance", Currency: CurrencyLocal,
		Cost:  func(r *model.ShipmentRecord) float64 { return r.InsuranceCost },
		Price: func(r *model.ShipmentRecord) float64 { return r.InsurancePrice },
	},
}

// Categories returns the ordered fee schema.
func Categories() []FeeCategory {
	return categories
}
