package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ShipmentRepository defines data access for shipment bookkeeping records.
// Read paths hand back plain snapshots; the profit core never touches the DB.
type ShipmentRepository interface {
	Create(ctx context.Context, record *model.ShipmentRecord) error
	GetByID(ctx context.Context, id string) (*model.ShipmentRecord, error)
	List(ctx context.Context) ([]model.ShipmentRecord, error)
	ListByYear(ctx context.Context, year int) ([]model.ShipmentRecord, error)
	DistinctClients(ctx context.Context) ([]string, error)
	Update(ctx context.Context, record *model.ShipmentRecord) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository returns a new instance of ShipmentRepository
func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) Create(ctx context.Context, record *model.ShipmentRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *shipmentRepository) GetByID(ctx context.Context, id string) (*model.ShipmentRecord, error) {
	var record model.ShipmentRecord
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns the full snapshot newest first. Filtering and pagination
// happen in memory in the service layer so search/profit math stay in one
// place.
func (r *shipmentRepository) List(ctx context.Context) ([]model.ShipmentRecord, error) {
	var records []model.ShipmentRecord
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByYear selects the reporting-year snapshot: loading date decides the
// year, creation date stands in when the loading date was never entered.
func (r *shipmentRepository) ListByYear(ctx context.Context, year int) ([]model.ShipmentRecord, error) {
	var records []model.ShipmentRecord
	if err := GetDB(ctx, r.db).
		Where("EXTRACT(YEAR FROM COALESCE(loading_date, created_at)) = ?", year).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DistinctClients lists the non-empty client names for the filter dropdown.
func (r *shipmentRepository) DistinctClients(ctx context.Context) ([]string, error) {
	var clients []string
	if err := GetDB(ctx, r.db).
		Model(&model.ShipmentRecord{}).
		Distinct("client").
		Where("client <> ''").
		Order("client ASC").
		Pluck("client", &clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *shipmentRepository) Update(ctx context.Context, record *model.ShipmentRecord) error {
	return GetDB(ctx, r.db).Save(record).Error
}

func (r *shipmentRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ShipmentRecord{}).Error
}

func (r *shipmentRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.ShipmentRecord{}).Error
}
