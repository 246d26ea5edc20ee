// internal/services/satellite_service.go
package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

const (
	DefaultMockAlertCount = 5
	MaxMockAlertCount     = 100
	mockAlertNotes        = "This is a mock alert generated for demonstration purposes."
)

// RegionBounds is the box mock alerts are drawn from.
type RegionBounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	Country        string
}

var mockRegions = map[string]RegionBounds{
	"southeast_asia": {MinLat: 0, MaxLat: 20, MinLng: 95, MaxLng: 125, Country: "Indonesia"},
	"amazon":         {MinLat: -15, MaxLat: 0, MinLng: -75, MaxLng: -60, Country: "Brazil"},
	"congo_basin":    {MinLat: -5, MaxLat: 5, MinLng: 10, MaxLng: 30, Country: "Democratic Republic of Congo"},
}

var globalRegion = RegionBounds{MinLat: -60, MaxLat: 60, MinLng: -180, MaxLng: 180, Country: "Unknown"}

// BoundsFor returns the named region, or the global box for anything else.
func BoundsFor(region string) (string, RegionBounds) {
	if b, ok := mockRegions[region]; ok {
		return region, b
	}
	return "global", globalRegion
}

type SatelliteService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateAlertRequest struct {
	AlertDate   time.Time          `json:"alert_date" validate:"required"`
	Coordinates *models.GeoPoint   `json:"coordinates" validate:"required"`
	Region      string             `json:"region,omitempty" validate:"max=100"`
	Country     string             `json:"country,omitempty" validate:"max=100"`
	Type        models.AlertType   `json:"type" validate:"required,oneof=deforestation fire landcover_change other"`
	Severity    models.Severity    `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Area        float64            `json:"area,omitempty" validate:"gte=0"`
	Confidence  *float64           `json:"confidence,omitempty"`
	Source      string             `json:"source,omitempty" validate:"max=50"`
	ImageURL    string             `json:"image_url,omitempty" validate:"omitempty,url"`
	Status      models.AlertStatus `json:"status,omitempty" validate:"omitempty,oneof=new investigating confirmed false_positive"`
	Notes       string             `json:"notes,omitempty"`
}

type UpdateAlertRequest struct {
	AlertDate   *time.Time          `json:"alert_date,omitempty"`
	Coordinates *models.GeoPoint    `json:"coordinates,omitempty"`
	Region      *string             `json:"region,omitempty" validate:"omitempty,max=100"`
	Country     *string             `json:"country,omitempty" validate:"omitempty,max=100"`
	Type        *models.AlertType   `json:"type,omitempty" validate:"omitempty,oneof=deforestation fire landcover_change other"`
	Severity    *models.Severity    `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Area        *float64            `json:"area,omitempty" validate:"omitempty,gte=0"`
	Confidence  *float64            `json:"confidence,omitempty"`
	Source      *string             `json:"source,omitempty" validate:"omitempty,max=50"`
	ImageURL    *string             `json:"image_url,omitempty" validate:"omitempty,url"`
	Status      *models.AlertStatus `json:"status,omitempty" validate:"omitempty,oneof=new investigating confirmed false_positive"`
	Notes       *string             `json:"notes,omitempty"`
}

type GenerateAlertsRequest struct {
	Count  int    `json:"count,omitempty" validate:"gte=0,lte=100"`
	Region string `json:"region,omitempty" validate:"max=100"`
}

type AlertFilter struct {
	utils.PaginationParams
	Region   string
	Status   models.AlertStatus
	Severity models.Severity
	Type     models.AlertType
}

var alertSortFields = []string{"created_at", "alert_date", "severity", "confidence", "area"}

func NewSatelliteService(db *gorm.DB, notificationService *NotificationService) *SatelliteService {
	return &SatelliteService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *SatelliteService) List(ctx context.Context, filter AlertFilter) ([]models.SatelliteAlert, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.PaginationParams.Sort == "" || filter.PaginationParams.Sort == "created_at" {
		filter.PaginationParams.Sort = "alert_date"
	}
	return paginate[models.SatelliteAlert](query, filter.PaginationParams, alertSortFields)
}

func (s *SatelliteService) Get(ctx context.Context, id uuid.UUID) (*models.SatelliteAlert, error) {
	return findByID[models.SatelliteAlert](s.db.WithContext(ctx), "satellite alert", id)
}

func (s *SatelliteService) Create(ctx context.Context, req *CreateAlertRequest) (*models.SatelliteAlert, error) {
	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}

	alert := &models.SatelliteAlert{
		AlertDate:   req.AlertDate,
		Coordinates: req.Coordinates,
		Region:      req.Region,
		Country:     req.Country,
		Type:        req.Type,
		Severity:    req.Severity,
		Area:        req.Area,
		Confidence:  0.8,
		Source:      req.Source,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
		Notes:       req.Notes,
	}
	if req.Confidence != nil {
		alert.Confidence = models.Clamp01(*req.Confidence)
	}
	if alert.Severity == "" {
		alert.Severity = models.SeverityMedium
	}
	if alert.Source == "" {
		alert.Source = "sentinel"
	}
	if alert.Status == "" {
		alert.Status = models.AlertStatusNew
	}

	db := s.db.WithContext(ctx)
	if err := db.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create satellite alert: %w", err)
	}

	s.notificationService.AlertDetected(db, alert)
	return alert, nil
}

func (s *SatelliteService) Update(ctx context.Context, id uuid.UUID, req *UpdateAlertRequest) (*models.SatelliteAlert, error) {
	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIf(updates, "alert_date", req.AlertDate)
	setIf(updates, "region", req.Region)
	setIf(updates, "country", req.Country)
	setIf(updates, "type", req.Type)
	setIf(updates, "severity", req.Severity)
	setIf(updates, "area", req.Area)
	setIf(updates, "source", req.Source)
	setIf(updates, "image_url", req.ImageURL)
	setIf(updates, "status", req.Status)
	setIf(updates, "notes", req.Notes)
	if req.Coordinates != nil {
		updates["coordinates"] = req.Coordinates
	}
	if req.Confidence != nil {
		updates["confidence"] = models.Clamp01(*req.Confidence)
	}

	if err := updateByID[models.SatelliteAlert](s.db.WithContext(ctx), "satellite alert", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SatelliteService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.SatelliteAlert](s.db.WithContext(ctx), "satellite alert", id)
}

func (s *SatelliteService) ListByRegion(ctx context.Context, region string, params utils.PaginationParams) ([]models.SatelliteAlert, int64, error) {
	return s.List(ctx, AlertFilter{PaginationParams: params, Region: region})
}

// GenerateMock stores randomly generated alerts inside the requested region.
func (s *SatelliteService) GenerateMock(ctx context.Context, req *GenerateAlertsRequest) ([]models.SatelliteAlert, error) {
	count := req.Count
	if count == 0 {
		count = DefaultMockAlertCount
	}
	if count < 1 || count > MaxMockAlertCount {
		return nil, invalidInput("count must be between 1 and %d", MaxMockAlertCount)
	}

	region, bounds := BoundsFor(req.Region)
	now := time.Now()

	alerts := make([]models.SatelliteAlert, count)
	for i := range alerts {
		alerts[i] = MockAlert(region, bounds, now)
	}

	db := s.db.WithContext(ctx)
	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&alerts).Error; err != nil {
			return fmt.Errorf("failed to create mock alerts: %w", err)
		}
		for i := range alerts {
			s.notificationService.AlertDetected(tx, &alerts[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// MockAlert draws one alert inside bounds, dated within the 30 days before now.
func MockAlert(region string, bounds RegionBounds, now time.Time) models.SatelliteAlert {
	source := "sentinel"
	if rand.Intn(2) == 1 {
		source = "planet"
	}

	return models.SatelliteAlert{
		AlertDate:   now.Add(-time.Duration(rand.Intn(30)) * 24 * time.Hour),
		Coordinates: models.NewGeoPoint(between(bounds.MinLat, bounds.MaxLat), between(bounds.MinLng, bounds.MaxLng)),
		Region:      region,
		Country:     bounds.Country,
		Type:        models.AlertTypes[rand.Intn(len(models.AlertTypes))],
		Severity:    models.Severities[rand.Intn(len(models.Severities))],
		Area:        rand.Float64() * 100,
		Confidence:  between(0.5, 1),
		Source:      source,
		ImageURL:    fmt.Sprintf("https://example.com/satellite-images/%d.jpg", rand.Intn(1000)),
		Status:      models.AlertStatuses[rand.Intn(len(models.AlertStatuses))],
		Notes:       mockAlertNotes,
	}
}

func between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
