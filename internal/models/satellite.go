// internal/models/satellite.go
package models

import "time"

type SatelliteAlert struct {
	BaseModel
	AlertDate   time.Time   `json:"alert_date" gorm:"not null;index"`
	Coordinates *GeoPoint   `json:"coordinates" gorm:"not null"`
	Region      string      `json:"region" gorm:"size:100;index"`
	Country     string      `json:"country" gorm:"size:100"`
	Type        AlertType   `json:"type" gorm:"type:varchar(30);not null"`
	Severity    Severity    `json:"severity" gorm:"type:varchar(10);not null"`
	Area        float64     `json:"area"`
	Confidence  float64     `json:"confidence"`
	Source      string      `json:"source" gorm:"size:50"`
	ImageURL    string      `json:"image_url" gorm:"size:500"`
	Status      AlertStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	Notes       string      `json:"notes" gorm:"type:text"`
}
