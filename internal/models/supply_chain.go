// internal/models/supply_chain.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type SupplyChainNode struct {
	BaseModel
	Name          string    `json:"name" gorm:"size:255;not null"`
	Type          NodeType  `json:"type" gorm:"type:varchar(20);not null;index"`
	Country       string    `json:"country" gorm:"size:100"`
	Region        string    `json:"region" gorm:"size:100"`
	Coordinates   *GeoPoint `json:"coordinates"`
	Address       string    `json:"address" gorm:"type:text"`
	ContactPerson string    `json:"contact_person" gorm:"size:255"`
	ContactEmail  string    `json:"contact_email" gorm:"size:255"`
	ContactPhone  string    `json:"contact_phone" gorm:"size:50"`
	RiskLevel     RiskLevel `json:"risk_level" gorm:"type:varchar(10);not null"`
	IsActive      bool      `json:"is_active"`
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Connection is a directed edge from one supply-chain node to another.
type Connection struct {
	BaseModel
	SourceID         uuid.UUID      `json:"source_id" gorm:"type:uuid;not null;index"`
	TargetID         uuid.UUID      `json:"target_id" gorm:"type:uuid;not null;index"`
	Type             ConnectionType `json:"type" gorm:"type:varchar(20);not null"`
	TransportMethod  string         `json:"transport_method" gorm:"size:100"`
	Distance         float64        `json:"distance"`
	CarbonFootprint  float64        `json:"carbon_footprint"`
	IsVerified       bool           `json:"is_verified"`
	VerificationDate *time.Time     `json:"verification_date"`
	IsActive         bool           `json:"is_active"`

	// Relationships
	Source *SupplyChainNode `json:"source,omitempty" gorm:"foreignKey:SourceID"`
	Target *SupplyChainNode `json:"target,omitempty" gorm:"foreignKey:TargetID"`
}
