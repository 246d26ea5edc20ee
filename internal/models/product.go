// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	BaseModel
	Name                string                      `json:"name" gorm:"size:255;not null"`
	Category            string                      `json:"category" gorm:"size:100;not null;index"`
	Description         string                      `json:"description" gorm:"type:text"`
	Certifications      datatypes.JSONSlice[string] `json:"certifications"`
	IsDeforestationFree bool                        `json:"is_deforestation_free"`
	IsVerified          bool                        `json:"is_verified"`
	VerificationDate    *time.Time                  `json:"verification_date"`
	VerificationMethod  string                      `json:"verification_method" gorm:"size:255"`
	IsActive            bool                        `json:"is_active"`
	SupplierID          uuid.UUID                   `json:"supplier_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}
