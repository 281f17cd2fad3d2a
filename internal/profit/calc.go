package profit

import "backend/internal/model"

// NetProfit returns the record's net margin in CNY: the sum of price minus
// cost over every fee category, with the USD ocean freight pair converted
// using the record's exchange rate (falling back to DefaultExchangeRate
// when the rate is unset). The result is a plain signed float; rounding is
// a presentation concern and happens at render/export time.
func NetProfit(r *model.ShipmentRecord) float64 {
	var total float64
	for _, cat := range categories {
		p := cat.Price(r) - cat.Cost(r)
		if cat.Currency == CurrencyForeign {
			p *= effectiveRate(r)
		}
		total += p
	}
	return total
}

// FeeLine is one category's cost/price/profit triple in the category's own
// currency, ready for document export.
type FeeLine struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Symbol string  `json:"symbol"`
	Cost   float64 `json:"cost"`
	Price  float64 `json:"price"`
	Profit float64 `json:"profit"`
}

// Breakdown returns the per-category fee lines in schema order. Amounts stay
// in the category's quoted currency (the symbol says which); only NetProfit
// converts to CNY.
func Breakdown(r *model.ShipmentRecord) []FeeLine {
	lines := make([]FeeLine, 0, len(categories))
	for _, cat := range categories {
		cost, price := cat.Cost(r), cat.Price(r)
		lines = append(lines, FeeLine{
			Key:    cat.Key,
			Label:  cat.Label,
			Symbol: cat.Symbol(),
			Cost:   cost,
			Price:  price,
			Profit: price - cost,
		})
	}
	return lines
}

// effectiveRate returns the USD conversion rate to apply, substituting the
// default when the stored rate is 0 (unset).
func effectiveRate(r *model.ShipmentRecord) float64 {
	if r.ExchangeRate == 0 {
		return DefaultExchangeRate
	}
	return r.ExchangeRate
}
