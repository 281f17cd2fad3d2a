package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/profit"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

// FeeLineExport is one schema-ordered fee row with amounts preformatted in
// the category's own currency ("$" for ocean freight, "¥" for the rest).
type FeeLineExport struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
	Cost   string `json:"cost"`
	Price  string `json:"price"`
	Profit string `json:"profit"`
}

// ShipmentExport is the data contract consumed by the document renderer:
// identifying fields, the full fee breakdown and the converted net profit.
type ShipmentExport struct {
	ID              string          `json:"id"`
	BookingNo       string          `json:"booking_no"`
	BusinessNo      string          `json:"business_no"`
	Client          string          `json:"client"`
	Shipper         string          `json:"shipper"`
	PortOfLoading   string          `json:"port_of_loading"`
	PortOfDischarge string          `json:"port_of_discharge"`
	Vessel          string          `json:"vessel"`
	ContainerNo     string          `json:"container_no"`
	ContainerType   string          `json:"container_type"`
	LoadingDate     string          `json:"loading_date,omitempty"`
	ExchangeRate    string          `json:"exchange_rate"`
	Fees            []FeeLineExport `json:"fees"`
	NetProfit       string          `json:"net_profit"` // CNY
}

type ExportService interface {
	ShipmentBreakdown(ctx context.Context, id string) (*ShipmentExport, error)
}

type exportService struct {
	shipmentRepo repository.ShipmentRepository
}

func NewExportService(shipmentRepo repository.ShipmentRepository) ExportService {
	return &exportService{shipmentRepo: shipmentRepo}
}

// ShipmentBreakdown builds the export payload for one record. Category rows
// keep their quoted currency; only the net total is converted.
func (s *exportService) ShipmentBreakdown(ctx context.Context, id string) (*ShipmentExport, error) {
	record, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("shipment not found")
	}

	rate := record.ExchangeRate
	if rate == 0 {
		rate = profit.DefaultExchangeRate
	}

	export := &ShipmentExport{
		ID:              record.ID.String(),
		BookingNo:       record.BookingNo,
		BusinessNo:      record.BusinessNo,
		Client:          record.Client,
		Shipper:         record.Shipper,
		PortOfLoading:   record.PortOfLoading,
		PortOfDischarge: record.PortOfDischarge,
		Vessel:          record.Vessel,
		ContainerNo:     record.ContainerNo,
		ContainerType:   record.ContainerType,
		ExchangeRate:    decimal.NewFromFloat(rate).StringFixed(4),
		NetProfit:       decimal.NewFromFloat(profit.NetProfit(record)).StringFixed(2),
	}
	if record.LoadingDate != nil {
		export.LoadingDate = record.LoadingDate.Format(time.DateOnly)
	}

	lines := profit.Breakdown(record)
	export.Fees = make([]FeeLineExport, 0, len(lines))
	for _, line := range lines {
		export.Fees = append(export.Fees, FeeLineExport{
			Key:    line.Key,
			Label:  line.Label,
			Symbol: line.Symbol,
			Cost:   decimal.NewFromFloat(line.Cost).StringFixed(2),
			Price:  decimal.NewFromFloat(line.Price).StringFixed(2),
			Profit: decimal.NewFromFloat(line.Profit).StringFixed(2),
		})
	}

	return export, nil
}
