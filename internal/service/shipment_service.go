package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/profit"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// CreateShipmentRequest carries the bookkeeping form. Booking number, ports
// and container number are the required identity of an entry; ocean freight,
// trucking and customs are the mandatory fee pairs and may not be negative.
type CreateShipmentRequest struct {
	BookingNo  string `json:"booking_no" binding:"required"`
	BusinessNo string `json:"business_no"`
	Shipper    string `json:"shipper"`
	Client     string `json:"client" binding:"required"`
	Fleet      string `json:"fleet"`

	LoadingDate     string `json:"loading_date"` // YYYY-MM-DD
	SailingDate     string `json:"sailing_date"`
	ArrivalDate     string `json:"arrival_date"`
	PortOfLoading   string `json:"port_of_loading" binding:"required"`
	PortOfDischarge string `json:"port_of_discharge" binding:"required"`
	Vessel          string `json:"vessel"`
	ContainerNo     string `json:"container_no" binding:"required"`
	ContainerType   string `json:"container_type" binding:"required"`

	OceanFreightCost  float64 `json:"ocean_freight_cost" binding:"gte=0"`
	OceanFreightPrice float64 `json:"ocean_freight_price" binding:"gte=0"`
	TruckingCost      float64 `json:"trucking_cost" binding:"gte=0"`
	TruckingPrice     float64 `json:"trucking_price" binding:"gte=0"`
	CustomsCost       float64 `json:"customs_cost" binding:"gte=0"`
	CustomsPrice      float64 `json:"customs_price" binding:"gte=0"`

	OptionalFees

	ExchangeRate         float64 `json:"exchange_rate" binding:"gte=0"`
	IsSpecialDeclaration bool    `json:"is_special_declaration"`
}

// OptionalFees groups the fourteen fee pairs that default to 0 when the
// form leaves them blank.
type OptionalFees struct {
	THCCost           float64 `json:"thc_cost" binding:"gte=0"`
	THCPrice          float64 `json:"thc_price" binding:"gte=0"`
	PrintingCost      float64 `json:"printing_cost" binding:"gte=0"`
	PrintingPrice     float64 `json:"printing_price" binding:"gte=0"`
	SealCost          float64 `json:"seal_cost" binding:"gte=0"`
	SealPrice         float64 `json:"seal_price" binding:"gte=0"`
	DocCost           float64 `json:"doc_cost" binding:"gte=0"`
	DocPrice          float64 `json:"doc_price" binding:"gte=0"`
	TelexCost         float64 `json:"telex_cost" binding:"gte=0"`
	TelexPrice        float64 `json:"telex_price" binding:"gte=0"`
	BillOfLadingCost  float64 `json:"bill_of_lading_cost" binding:"gte=0"`
	BillOfLadingPrice float64 `json:"bill_of_lading_price" binding:"gte=0"`
	PickupCost        float64 `json:"pickup_cost" binding:"gte=0"`
	PickupPrice       float64 `json:"pickup_price" binding:"gte=0"`
	WeighingCost      float64 `json:"weighing_cost" binding:"gte=0"`
	WeighingPrice     float64 `json:"weighing_price" binding:"gte=0"`
	VGMCost           float64 `json:"vgm_cost" binding:"gte=0"`
	VGMPrice          float64 `json:"vgm_price" binding:"gte=0"`
	AmendmentCost     float64 `json:"amendment_cost" binding:"gte=0"`
	AmendmentPrice    float64 `json:"amendment_price" binding:"gte=0"`
	DetentionCost     float64 `json:"detention_cost" binding:"gte=0"`
	DetentionPrice    float64 `json:"detention_price" binding:"gte=0"`
	DemurrageCost     float64 `json:"demurrage_cost" binding:"gte=0"`
	DemurragePrice    float64 `json:"demurrage_price" binding:"gte=0"`
	HandlingCost      float64 `json:"handling_cost" binding:"gte=0"`
	HandlingPrice     float64 `json:"handling_price" binding:"gte=0"`
	InsuranceCost     float64 `json:"insurance_cost" binding:"gte=0"`
	InsurancePrice    float64 `json:"insurance_price" binding:"gte=0"`
}

// UpdateShipmentRequest is a partial update: nil fields are left untouched,
// so a client can patch a single fee without resending the whole record.
type UpdateShipmentRequest struct {
	BookingNo  *string `json:"booking_no"`
	BusinessNo *string `json:"business_no"`
	Shipper    *string `json:"shipper"`
	Client     *string `json:"client"`
	Fleet      *string `json:"fleet"`

	LoadingDate     *string `json:"loading_date"` // YYYY-MM-DD, empty string clears
	SailingDate     *string `json:"sailing_date"`
	ArrivalDate     *string `json:"arrival_date"`
	PortOfLoading   *string `json:"port_of_loading"`
	PortOfDischarge *string `json:"port_of_discharge"`
	Vessel          *string `json:"vessel"`
	ContainerNo     *string `json:"container_no"`
	ContainerType   *string `json:"container_type"`

	Fees map[string]FeePatch `json:"fees"` // keyed by fee schema key

	ExchangeRate         *float64 `json:"exchange_rate"`
	IsSpecialDeclaration *bool    `json:"is_special_declaration"`
}

// FeePatch updates one fee category's pair; nil leaves the side untouched.
type FeePatch struct {
	Cost  *float64 `json:"cost"`
	Price *float64 `json:"price"`
}

// ShipmentResponse is the persisted record plus its derived net profit,
// rounded to 2 decimals for display.
type ShipmentResponse struct {
	model.ShipmentRecord
	NetProfit float64 `json:"net_profit"`
}

// --- Interface ---

type ShipmentService interface {
	ListShipments(ctx context.Context, filter profit.Filter, page, limit int) ([]ShipmentResponse, int64, error)
	GetShipment(ctx context.Context, id string) (*ShipmentResponse, error)
	CreateShipment(ctx context.Context, userID string, req CreateShipmentRequest) (*ShipmentResponse, error)
	UpdateShipment(ctx context.Context, userID, id string, req UpdateShipmentRequest) (*ShipmentResponse, error)
	DeleteShipment(ctx context.Context, userID, id string) error
	DeleteShipments(ctx context.Context, userID string, ids []string) error
	ListClients(ctx context.Context) ([]string, error)
}

type shipmentService struct {
	shipmentRepo repository.ShipmentRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewShipmentService(
	shipmentRepo repository.ShipmentRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) ShipmentService {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

func (s *shipmentService) ListShipments(ctx context.Context, filter profit.Filter, page, limit int) ([]ShipmentResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	records, err := s.shipmentRepo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch shipments: %w", err)
	}

	matched := profit.Apply(records, filter)
	total := int64(len(matched))

	window := pagination.Slice(matched, pagination.Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})

	result := make([]ShipmentResponse, 0, len(window))
	for _, r := range window {
		result = append(result, toShipmentResponse(r))
	}
	return result, total, nil
}

func (s *shipmentService) GetShipment(ctx context.Context, id string) (*ShipmentResponse, error) {
	record, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("shipment not found")
	}
	resp := toShipmentResponse(*record)
	return &resp, nil
}

func (s *shipmentService) CreateShipment(ctx context.Context, userID string, req CreateShipmentRequest) (*ShipmentResponse, error) {
	record := model.ShipmentRecord{
		BookingNo:  req.BookingNo,
		BusinessNo: req.BusinessNo,
		Shipper:    req.Shipper,
		Client:     req.Client,
		Fleet:      req.Fleet,

		PortOfLoading:   req.PortOfLoading,
		PortOfDischarge: req.PortOfDischarge,
		Vessel:          req.Vessel,
		ContainerNo:     req.ContainerNo,
		ContainerType:   req.ContainerType,

		OceanFreightCost:  req.OceanFreightCost,
		OceanFreightPrice: req.OceanFreightPrice,
		TruckingCost:      req.TruckingCost,
		TruckingPrice:     req.TruckingPrice,
		CustomsCost:       req.CustomsCost,
		CustomsPrice:      req.CustomsPrice,

		THCCost:           req.THCCost,
		THCPrice:          req.THCPrice,
		PrintingCost:      req.PrintingCost,
		PrintingPrice:     req.PrintingPrice,
		SealCost:          req.SealCost,
		SealPrice:         req.SealPrice,
		DocCost:           req.DocCost,
		DocPrice:          req.DocPrice,
		TelexCost:         req.TelexCost,
		TelexPrice:        req.TelexPrice,
		BillOfLadingCost:  req.BillOfLadingCost,
		BillOfLadingPrice: req.BillOfLadingPrice,
		PickupCost:        req.PickupCost,
		PickupPrice:       req.PickupPrice,
		WeighingCost:      req.WeighingCost,
		WeighingPrice:     req.WeighingPrice,
		VGMCost:           req.VGMCost,
		VGMPrice:          req.VGMPrice,
		AmendmentCost:     req.AmendmentCost,
		AmendmentPrice:    req.AmendmentPrice,
		DetentionCost:     req.DetentionCost,
		DetentionPrice:    req.DetentionPrice,
		DemurrageCost:     req.DemurrageCost,
		DemurragePrice:    req.DemurragePrice,
		HandlingCost:      req.HandlingCost,
		HandlingPrice:     req.HandlingPrice,
		InsuranceCost:     req.InsuranceCost,
		InsurancePrice:    req.InsurancePrice,

		ExchangeRate:         req.ExchangeRate,
		IsSpecialDeclaration: req.IsSpecialDeclaration,
	}

	var err error
	if record.LoadingDate, err = parseDate(req.LoadingDate); err != nil {
		return nil, fmt.Errorf("invalid loading_date: %w", err)
	}
	if record.SailingDate, err = parseDate(req.SailingDate); err != nil {
		return nil, fmt.Errorf("invalid sailing_date: %w", err)
	}
	if record.ArrivalDate, err = parseDate(req.ArrivalDate); err != nil {
		return nil, fmt.Errorf("invalid arrival_date: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.shipmentRepo.Create(txCtx, &record); createErr != nil {
			return fmt.Errorf("failed to create shipment: %w", createErr)
		}
		return s.writeAudit(txCtx, userID, model.ActionCreateShipment, record.ID.String(), record.BookingNo, map[string]interface{}{
			"booking_no":     record.BookingNo,
			"client":         record.Client,
			"container_no":   record.ContainerNo,
			"container_type": record.ContainerType,
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent("shipments.changed", map[string]string{"action": "create", "id": record.ID.String()})

	resp := toShipmentResponse(record)
	return &resp, nil
}

func (s *shipmentService) UpdateShipment(ctx context.Context, userID, id string, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	record, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("shipment not found")
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&record.BookingNo, req.BookingNo)
	applyString(&record.BusinessNo, req.BusinessNo)
	applyString(&record.Shipper, req.Shipper)
	applyString(&record.Client, req.Client)
	applyString(&record.Fleet, req.Fleet)
	applyString(&record.PortOfLoading, req.PortOfLoading)
	applyString(&record.PortOfDischarge, req.PortOfDischarge)
	applyString(&record.Vessel, req.Vessel)
	applyString(&record.ContainerNo, req.ContainerNo)
	applyString(&record.ContainerType, req.ContainerType)

	if req.LoadingDate != nil {
		if record.LoadingDate, err = parseDate(*req.LoadingDate); err != nil {
			return nil, fmt.Errorf("invalid loading_date: %w", err)
		}
	}
	if req.SailingDate != nil {
		if record.SailingDate, err = parseDate(*req.SailingDate); err != nil {
			return nil, fmt.Errorf("invalid sailing_date: %w", err)
		}
	}
	if req.ArrivalDate != nil {
		if record.ArrivalDate, err = parseDate(*req.ArrivalDate); err != nil {
			return nil, fmt.Errorf("invalid arrival_date: %w", err)
		}
	}

	if err := applyFeePatches(record, req.Fees); err != nil {
		return nil, err
	}

	if req.ExchangeRate != nil {
		if *req.ExchangeRate < 0 {
			return nil, errors.New("exchange_rate must not be negative")
		}
		record.ExchangeRate = *req.ExchangeRate
	}
	if req.IsSpecialDeclaration != nil {
		record.IsSpecialDeclaration = *req.IsSpecialDeclaration
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.shipmentRepo.Update(txCtx, record); updateErr != nil {
			return fmt.Errorf("failed to update shipment: %w", updateErr)
		}
		return s.writeAudit(txCtx, userID, model.ActionUpdateShipment, record.ID.String(), record.BookingNo, map[string]interface{}{
			"booking_no": record.BookingNo,
			"client":     record.Client,
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent("shipments.changed", map[string]string{"action": "update", "id": record.ID.String()})

	resp := toShipmentResponse(*record)
	return &resp, nil
}

func (s *shipmentService) DeleteShipment(ctx context.Context, userID, id string) error {
	record, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return errors.New("shipment not found")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.shipmentRepo.Delete(txCtx, id); delErr != nil {
			return fmt.Errorf("failed to delete shipment: %w", delErr)
		}
		return s.writeAudit(txCtx, userID, model.ActionDeleteShipment, id, record.BookingNo, map[string]interface{}{
			"booking_no": record.BookingNo,
		})
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastEvent("shipments.changed", map[string]string{"action": "delete", "id": id})
	return nil
}

func (s *shipmentService) DeleteShipments(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return errors.New("no shipment ids provided")
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.shipmentRepo.DeleteMany(txCtx, ids); delErr != nil {
			return fmt.Errorf("failed to delete shipments: %w", delErr)
		}
		return s.writeAudit(txCtx, userID, model.ActionBulkDeleteShipments, fmt.Sprintf("%d records", len(ids)), "", map[string]interface{}{
			"ids": ids,
		})
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastEvent("shipments.changed", map[string]string{"action": "bulk-delete"})
	return nil
}

func (s *shipmentService) ListClients(ctx context.Context) ([]string, error) {
	clients, err := s.shipmentRepo.DistinctClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, nil
}

// --- Helpers ---

func (s *shipmentService) writeAudit(ctx context.Context, userID, action, entityID, entityName string, details map[string]interface{}) error {
	var userUUID *uuid.UUID
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			userUUID = &parsed
		}
	}

	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     userUUID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// applyFeePatches dispatches keyed patches onto the record through the fee
// schema so a new category never needs an extra case here.
func applyFeePatches(record *model.ShipmentRecord, patches map[string]FeePatch) error {
	if len(patches) == 0 {
		return nil
	}

	fields := feeFields(record)
	for key, patch := range patches {
		pair, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown fee category %q", key)
		}
		if patch.Cost != nil {
			if *patch.Cost < 0 {
				return fmt.Errorf("fee %s cost must not be negative", key)
			}
			*pair.cost = *patch.Cost
		}
		if patch.Price != nil {
			if *patch.Price < 0 {
				return fmt.Errorf("fee %s price must not be negative", key)
			}
			*pair.price = *patch.Price
		}
	}
	return nil
}

type feeFieldPair struct {
	cost, price *float64
}

func feeFields(r *model.ShipmentRecord) map[string]feeFieldPair {
	return map[string]feeFieldPair{
		"ocean_freight":  {&r.OceanFreightCost, &r.OceanFreightPrice},
		"trucking":       {&r.TruckingCost, &r.TruckingPrice},
		"customs":        {&r.CustomsCost, &r.CustomsPrice},
		"thc":            {&r.THCCost, &r.THCPrice},
		"printing":       {&r.PrintingCost, &r.PrintingPrice},
		"seal":           {&r.SealCost, &r.SealPrice},
		"doc":            {&r.DocCost, &r.DocPrice},
		"telex":          {&r.TelexCost, &r.TelexPrice},
		"bill_of_lading": {&r.BillOfLadingCost, &r.BillOfLadingPrice},
		"pickup":         {&r.PickupCost, &r.PickupPrice},
		"weighing":       {&r.WeighingCost, &r.WeighingPrice},
		"vgm":            {&r.VGMCost, &r.VGMPrice},
		"amendment":      {&r.AmendmentCost, &r.AmendmentPrice},
		"detention":      {&r.DetentionCost, &r.DetentionPrice},
		"demurrage":      {&r.DemurrageCost, &r.DemurragePrice},
		"handling":       {&r.HandlingCost, &r.HandlingPrice},
		"insurance":      {&r.InsuranceCost, &r.InsurancePrice},
	}
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toShipmentResponse(record model.ShipmentRecord) ShipmentResponse {
	return ShipmentResponse{
		ShipmentRecord: record,
		NetProfit:      roundMoney(profit.NetProfit(&record)),
	}
}

// roundMoney rounds to 2 decimals for display. Stored values and the core
// calculation stay unrounded.
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
