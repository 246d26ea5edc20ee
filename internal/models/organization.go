// internal/models/organization.go
package models

type Organization struct {
	BaseModel
	Name         string           `json:"name" gorm:"size:255;not null"`
	Type         OrganizationType `json:"type" gorm:"type:varchar(20);not null;index"`
	Country      string           `json:"country" gorm:"size:100"`
	Address      string           `json:"address" gorm:"type:text"`
	ContactEmail string           `json:"contact_email" gorm:"size:255"`
	ContactPhone string           `json:"contact_phone" gorm:"size:50"`
	Website      string           `json:"website" gorm:"size:255"`
	IsActive     bool             `json:"is_active"`
}
