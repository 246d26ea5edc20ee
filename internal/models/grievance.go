// internal/models/grievance.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Grievance struct {
	BaseModel
	Title           string                      `json:"title" gorm:"size:255;not null"`
	Date            time.Time                   `json:"date" gorm:"not null;index"`
	Source          string                      `json:"source" gorm:"size:255;not null"`
	Type            GrievanceType               `json:"type" gorm:"type:varchar(20);not null;index"`
	Description     string                      `json:"description" gorm:"type:text"`
	Location        string                      `json:"location" gorm:"size:255"`
	Coordinates     *GeoPoint                   `json:"coordinates"`
	Status          GrievanceStatus             `json:"status" gorm:"type:varchar(30);not null;index"`
	Severity        Severity                    `json:"severity" gorm:"type:varchar(10);not null"`
	ResolutionNotes string                      `json:"resolution_notes" gorm:"type:text"`
	ResolutionDate  *time.Time                  `json:"resolution_date"`
	Attachments     datatypes.JSONSlice[string] `json:"attachments"`
	SupplierID      uuid.UUID                   `json:"supplier_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}
