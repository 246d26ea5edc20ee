// internal/models/kpi.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type KPI struct {
	BaseModel
	Name           string      `json:"name" gorm:"size:255;not null;index"`
	Category       KPICategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Description    string      `json:"description" gorm:"type:text"`
	Value          float64     `json:"value" gorm:"not null"`
	Target         *float64    `json:"target"`
	Unit           string      `json:"unit" gorm:"size:50"`
	Date           time.Time   `json:"date"`
	Period         KPIPeriod   `json:"period" gorm:"type:varchar(20);not null"`
	Trend          Trend       `json:"trend" gorm:"type:varchar(20)"`
	Status         KPIStatus   `json:"status" gorm:"type:varchar(20)"`
	DataSource     string      `json:"data_source" gorm:"size:255"`
	Notes          string      `json:"notes" gorm:"type:text"`
	OrganizationID uuid.UUID   `json:"organization_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (KPI) TableName() string {
	return "kpis"
}
