package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContainerType enum constants. Free text is also accepted for
// uncommon equipment, these are just the standard sizes.
const (
	Container20GP = "20GP"
	Container40GP = "40GP"
	Container40HQ = "40HQ"
	Container45HQ = "45HQ"
)

// ShipmentRecord is the bookkeeping entry for a single shipment: one row of
// identifying/logistics data plus a cost/price pair for every fee category.
// Ocean freight is quoted in USD and converted with ExchangeRate; every
// other fee is already in CNY.
type ShipmentRecord struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// Descriptive fields
	BookingNo  string `gorm:"type:varchar(100);not null;index" json:"booking_no"`
	BusinessNo string `gorm:"type:varchar(100)" json:"business_no"`
	Shipper    string `gorm:"type:varchar(255)" json:"shipper"`
	Client     string `gorm:"type:varchar(255);index" json:"client"`
	Fleet      string `gorm:"type:varchar(255)" json:"fleet"` // trucking carrier

	// Logistics fields
	LoadingDate     *time.Time `gorm:"index" json:"loading_date"`
	SailingDate     *time.Time `json:"sailing_date"`
	ArrivalDate     *time.Time `json:"arrival_date"`
	PortOfLoading   string     `gorm:"type:varchar(100);not null" json:"port_of_loading"`
	PortOfDischarge string     `gorm:"type:varchar(100);not null" json:"port_of_discharge"`
	Vessel          string     `gorm:"type:varchar(255)" json:"vessel"`
	ContainerNo     string     `gorm:"type:varchar(50);not null" json:"container_no"`
	ContainerType   string     `gorm:"type:varchar(20);index" json:"container_type"`

	// Financial fields. USD ocean freight, converted via ExchangeRate.
	OceanFreightCost  float64 `gorm:"default:0" json:"ocean_freight_cost"`
	OceanFreightPrice float64 `gorm:"default:0" json:"ocean_freight_price"`

	// Remaining fees are in CNY. Trucking and customs are mandatory on
	// input, the rest default to 0 when left blank on the form.
	TruckingCost      float64 `gorm:"default:0" json:"trucking_cost"`
	TruckingPrice     float64 `gorm:"default:0" json:"trucking_price"`
	CustomsCost       float64 `gorm:"default:0" json:"customs_cost"`
	CustomsPrice      float64 `gorm:"default:0" json:"customs_price"`
	THCCost           float64 `gorm:"column:thc_cost;default:0" json:"thc_cost"`
	THCPrice          float64 `gorm:"column:thc_price;default:0" json:"thc_price"`
	PrintingCost      float64 `gorm:"default:0" json:"printing_cost"`
	PrintingPrice     float64 `gorm:"default:0" json:"printing_price"`
	SealCost          float64 `gorm:"default:0" json:"seal_cost"`
	SealPrice         float64 `gorm:"default:0" json:"seal_price"`
	DocCost           float64 `gorm:"default:0" json:"doc_cost"`
	DocPrice          float64 `gorm:"default:0" json:"doc_price"`
	TelexCost         float64 `gorm:"default:0" json:"telex_cost"`
	TelexPrice        float64 `gorm:"default:0" json:"telex_price"`
	BillOfLadingCost  float64 `gorm:"default:0" json:"bill_of_lading_cost"`
	BillOfLadingPrice float64 `gorm:"default:0" json:"bill_of_lading_price"`
	PickupCost        float64 `gorm:"default:0" json:"pickup_cost"` // differential pickup
	PickupPrice       float64 `gorm:"default:0" json:"pickup_price"`
	WeighingCost      float64 `gorm:"default:0" json:"weighing_cost"`
	WeighingPrice     float64 `gorm:"default:0" json:"weighing_price"`
	VGMCost           float64 `gorm:"column:vgm_cost;default:0" json:"vgm_cost"`
	VGMPrice          float64 `gorm:"column:vgm_price;default:0" json:"vgm_price"`
	AmendmentCost     float64 `gorm:"default:0" json:"amendment_cost"`
	AmendmentPrice    float64 `gorm:"default:0" json:"amendment_price"`
	DetentionCost     float64 `gorm:"default:0" json:"detention_cost"`
	DetentionPrice    float64 `gorm:"default:0" json:"detention_price"`
	DemurrageCost     float64 `gorm:"default:0" json:"demurrage_cost"`
	DemurragePrice    float64 `gorm:"default:0" json:"demurrage_price"`
	HandlingCost      float64 `gorm:"default:0" json:"handling_cost"`
	HandlingPrice     float64 `gorm:"default:0" json:"handling_price"`
	InsuranceCost     float64 `gorm:"default:0" json:"insurance_cost"`
	InsurancePrice    float64 `gorm:"default:0" json:"insurance_price"`

	// USD -> CNY rate for the ocean freight pair. 0 means "not set" and the
	// calculator falls back to the default rate.
	ExchangeRate float64 `gorm:"default:0" json:"exchange_rate"`

	// Informational only, no effect on profit.
	IsSpecialDeclaration bool `gorm:"default:false" json:"is_special_declaration"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
