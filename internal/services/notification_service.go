// internal/services/notification_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

const (
	NotificationTypeGrievance      = "grievance"
	NotificationTypeSatelliteAlert = "satellite_alert"
)

// NotificationService raises admin notifications for severe grievances and
// satellite alerts.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func notifiable(sev models.Severity) bool {
	return sev == models.SeverityHigh || sev == models.SeverityCritical
}

// GrievanceReported notifies admins of a high or critical grievance. db may be
// a transaction.
func (s *NotificationService) GrievanceReported(db *gorm.DB, g *models.Grievance) {
	if !notifiable(g.Severity) {
		return
	}

	s.raise(db, &models.AdminNotification{
		Type:                NotificationTypeGrievance,
		Title:               fmt.Sprintf("%s grievance reported", capitalize(string(g.Severity))),
		Message:             fmt.Sprintf("Grievance '%s' (%s) was reported by %s", g.Title, g.Type, g.Source),
		Priority:            string(g.Severity),
		RelatedResourceType: "grievance",
		RelatedResourceID:   &g.ID,
	})
}

// AlertDetected notifies admins of a high or critical satellite alert.
func (s *NotificationService) AlertDetected(db *gorm.DB, a *models.SatelliteAlert) {
	if !notifiable(a.Severity) {
		return
	}

	s.raise(db, &models.AdminNotification{
		Type:                NotificationTypeSatelliteAlert,
		Title:               fmt.Sprintf("%s %s alert", capitalize(string(a.Severity)), a.Type),
		Message:             fmt.Sprintf("%.1f ha flagged in %s (%s) with confidence %.2f", a.Area, a.Region, a.Country, a.Confidence),
		Priority:            string(a.Severity),
		RelatedResourceType: "satellite_alert",
		RelatedResourceID:   &a.ID,
	})
}

func (s *NotificationService) raise(db *gorm.DB, n *models.AdminNotification) {
	if db == nil {
		db = s.db
	}
	n.Status = models.NotificationStatusUnread

	// A lost notification must not fail the write that triggered it. Inside a
	// transaction the insert runs under a savepoint so a failure does not
	// abort the caller's transaction.
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(n).Error
	})
	if err != nil {
		logrus.WithError(err).WithField("type", n.Type).Warn("Failed to create admin notification")
	}
}

func (s *NotificationService) List(ctx context.Context, params utils.PaginationParams, status string) ([]models.AdminNotification, int64, error) {
	query := s.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return paginate[models.AdminNotification](query, params, []string{"created_at", "priority"})
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*models.AdminNotification, error) {
	db := s.db.WithContext(ctx)
	updates := map[string]interface{}{
		"status":  models.NotificationStatusRead,
		"read_at": time.Now(),
	}
	if err := updateByID[models.AdminNotification](db, "notification", id, updates); err != nil {
		return nil, err
	}
	return findByID[models.AdminNotification](db, "notification", id)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
