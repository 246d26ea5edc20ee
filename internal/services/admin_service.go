// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

const (
	SettingsCategorySystem = "system"
	SettingsCategoryAPI    = "api"

	systemSettingsKey = "settings"
	apiConfigKey      = "config"
)

type AdminService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type AdminDashboardStats struct {
	UserCount           int64 `json:"user_count"`
	OrganizationCount   int64 `json:"organization_count"`
	SupplierCount       int64 `json:"supplier_count"`
	ProductCount        int64 `json:"product_count"`
	GrievanceCount      int64 `json:"grievance_count"`
	OpenGrievanceCount  int64 `json:"open_grievance_count"`
	SatelliteAlertCount int64 `json:"satellite_alert_count"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

type AuditLogFilter struct {
	utils.PaginationParams
	UserID       *uuid.UUID
	Action       string
	ResourceType string
}

func NewAdminService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *AdminService {
	return &AdminService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminDashboardStats{}

	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"users", db.Model(&models.User{}), &stats.UserCount},
		{"organizations", db.Model(&models.Organization{}), &stats.OrganizationCount},
		{"suppliers", db.Model(&models.Supplier{}), &stats.SupplierCount},
		{"products", db.Model(&models.Product{}), &stats.ProductCount},
		{"grievances", db.Model(&models.Grievance{}), &stats.GrievanceCount},
		{"open grievances", db.Model(&models.Grievance{}).Where("status <> ?", models.GrievanceStatusResolved), &stats.OpenGrievanceCount},
		{"satellite alerts", db.Model(&models.SatelliteAlert{}), &stats.SatelliteAlertCount},
		{"notifications", db.Model(&models.AdminNotification{}).Where("status = ?", models.NotificationStatusUnread), &stats.UnreadNotifications},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	return stats, nil
}

func (s *AdminService) UserRoles() []models.Role {
	return models.Roles
}

// Settings Management
func (s *AdminService) GetSystemSettings(ctx context.Context) (models.JSONB, error) {
	return s.getSetting(ctx, SettingsCategorySystem, systemSettingsKey, s.defaultSystemSettings())
}

func (s *AdminService) UpdateSystemSettings(ctx context.Context, value models.JSONB, adminID *uuid.UUID) (models.JSONB, error) {
	return s.putSetting(ctx, SettingsCategorySystem, systemSettingsKey, "System settings", value, adminID)
}

func (s *AdminService) GetAPIConfig(ctx context.Context) (models.JSONB, error) {
	return s.getSetting(ctx, SettingsCategoryAPI, apiConfigKey, s.defaultAPIConfig())
}

func (s *AdminService) UpdateAPIConfig(ctx context.Context, value models.JSONB, adminID *uuid.UUID) (models.JSONB, error) {
	return s.putSetting(ctx, SettingsCategoryAPI, apiConfigKey, "External API configuration", value, adminID)
}

// getSetting returns the stored document, falling back to defaults until an
// admin saves one.
func (s *AdminService) getSetting(ctx context.Context, category, key string, defaults models.JSONB) (models.JSONB, error) {
	var setting models.AdminSettings
	err := s.db.WithContext(ctx).
		Where(&models.AdminSettings{Category: category, Key: key}).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s settings: %w", category, err)
	}
	return setting.Value, nil
}

func (s *AdminService) putSetting(ctx context.Context, category, key, description string, value models.JSONB, adminID *uuid.UUID) (models.JSONB, error) {
	if len(value) == 0 {
		return nil, invalidInput("%s settings must not be empty", category)
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var setting models.AdminSettings
		err := tx.Where(&models.AdminSettings{Category: category, Key: key}).First(&setting).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = models.AdminSettings{
				Category:    category,
				Key:         key,
				Value:       value,
				Description: description,
				UpdatedBy:   adminID,
			}
			if err := tx.Create(&setting).Error; err != nil {
				return fmt.Errorf("failed to create setting: %w", err)
			}
			return nil
		} else if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		setting.Value = value
		setting.UpdatedBy = adminID
		if err := tx.Save(&setting).Error; err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *AdminService) defaultSystemSettings() models.JSONB {
	return models.JSONB{
		"api_endpoints": map[string]interface{}{
			"salesforce":        s.cfg.Integrations.SalesforceAPI,
			"sap":               s.cfg.Integrations.SAPAPI,
			"carbon_accounting": s.cfg.Integrations.CarbonAPI,
		},
		"notifications": map[string]interface{}{
			"email_enabled":   true,
			"sms_enabled":     false,
			"alert_frequency": "daily",
		},
		"security": map[string]interface{}{
			"mfa_enabled":     true,
			"session_timeout": 30, // minutes
			"password_policy": "strong",
		},
		"data_retention": map[string]interface{}{
			"grievances": 365, // days
			"surveys":    730,
			"audit_logs": 90,
		},
	}
}

func (s *AdminService) defaultAPIConfig() models.JSONB {
	return models.JSONB{
		"available_apis": []interface{}{
			map[string]interface{}{"name": "Salesforce", "endpoint": s.cfg.Integrations.SalesforceAPI, "status": "active", "auth_type": "oauth2"},
			map[string]interface{}{"name": "SAP", "endpoint": s.cfg.Integrations.SAPAPI, "status": "inactive", "auth_type": "apikey"},
			map[string]interface{}{"name": "Carbon Accounting", "endpoint": s.cfg.Integrations.CarbonAPI, "status": "active", "auth_type": "oauth2"},
		},
	}
}

// Audit Logs
func (s *AdminService) GetAuditLogs(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	// Newest first regardless of what the caller asked for.
	filter.Sort = "created_at"
	filter.Order = "desc"

	return paginate[models.AuditLog](query, filter.PaginationParams, []string{"created_at"}, "User")
}

// Notifications
func (s *AdminService) GetNotifications(ctx context.Context, params utils.PaginationParams, status string) ([]models.AdminNotification, int64, error) {
	return s.notificationService.List(ctx, params, status)
}

func (s *AdminService) MarkNotificationRead(ctx context.Context, id uuid.UUID) (*models.AdminNotification, error) {
	return s.notificationService.MarkRead(ctx, id)
}
