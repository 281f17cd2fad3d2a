package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateShipment      = "CREATE_SHIPMENT"
	ActionUpdateShipment      = "UPDATE_SHIPMENT"
	ActionDeleteShipment      = "DELETE_SHIPMENT"
	ActionBulkDeleteShipments = "BULK_DELETE_SHIPMENTS"
)

// AuditLog tracks Who, What, and When for shipment bookkeeping changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Shipment id or id list summary
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name (booking no)
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
