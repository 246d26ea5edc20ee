// internal/models/supplier.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Supplier struct {
	BaseModel
	Name                  string                      `json:"name" gorm:"size:255;not null"`
	Type                  SupplierType                `json:"type" gorm:"type:varchar(20);not null;index"`
	Country               string                      `json:"country" gorm:"size:100;not null;index"`
	Region                string                      `json:"region" gorm:"size:100"`
	Coordinates           *GeoPoint                   `json:"coordinates"`
	ContactPerson         string                      `json:"contact_person" gorm:"size:255"`
	ContactEmail          string                      `json:"contact_email" gorm:"size:255"`
	ContactPhone          string                      `json:"contact_phone" gorm:"size:50"`
	Certifications        datatypes.JSONSlice[string] `json:"certifications"`
	RiskScore             float64                     `json:"risk_score"`
	HasSustainabilityPlan bool                        `json:"has_sustainability_plan"`
	IsActive              bool                        `json:"is_active"`
	OrganizationID        uuid.UUID                   `json:"organization_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}
