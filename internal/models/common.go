// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns the primary key in Go so the schema does not depend on
// a database-side UUID function.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
}

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

func (p *GeoPoint) Lat() float64 { return p.Coordinates[1] }
func (p *GeoPoint) Lng() float64 { return p.Coordinates[0] }

// IsZero reports whether the point is absent. A NULL column scans into an
// empty point.
func (p *GeoPoint) IsZero() bool {
	return p == nil || p.Type == ""
}

func (p *GeoPoint) Validate() error {
	if p.Type != "" && p.Type != "Point" {
		return fmt.Errorf("unsupported geometry type %q", p.Type)
	}
	if p.Lat() < -90 || p.Lat() > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if p.Lng() < -180 || p.Lng() > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	if p.Type == "" {
		return []byte("null"), nil
	}
	type point GeoPoint
	return json.Marshal(point(p))
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	type point GeoPoint
	var raw point
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		raw.Type = "Point"
	}
	*p = GeoPoint(raw)
	return nil
}

func (p GeoPoint) Value() (driver.Value, error) {
	if p.Type == "" {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *GeoPoint) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = GeoPoint{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into GeoPoint", value)
	}
}

func (GeoPoint) GormDataType() string {
	return "json"
}

// Clamp01 bounds a score to the closed unit interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
