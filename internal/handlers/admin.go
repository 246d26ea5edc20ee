// internal/handlers/admin.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/user-roles
func (h *AdminHandler) GetUserRoles(c *gin.Context) {
	utils.SuccessResponse(c, h.adminService.UserRoles())
}

// GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.adminService.GetSystemSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, settings)
}

// PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	h.updateSetting(c, h.adminService.UpdateSystemSettings)
}

// GET /admin/api-config
func (h *AdminHandler) GetAPIConfig(c *gin.Context) {
	config, err := h.adminService.GetAPIConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, config)
}

// PUT /admin/api-config
func (h *AdminHandler) UpdateAPIConfig(c *gin.Context) {
	h.updateSetting(c, h.adminService.UpdateAPIConfig)
}

type settingUpdater func(ctx context.Context, value models.JSONB, adminID *uuid.UUID) (models.JSONB, error)

func (h *AdminHandler) updateSetting(c *gin.Context, update settingUpdater) {
	adminID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var body models.JSONB
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	value, err := update(c.Request.Context(), body, &adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  utils.T(c, i18n.KeyAdminSettingsUpdated),
		"settings": value,
	})
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	logs, total, err := h.adminService.GetAuditLogs(c.Request.Context(), services.AuditLogFilter{
		PaginationParams: params,
		UserID:           userID,
		Action:           c.Query("action"),
		ResourceType:     c.Query("resource_type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, logs, total, params)
}

// GET /admin/notifications
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notifications, total, err := h.adminService.GetNotifications(c.Request.Context(), params, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, notifications, total, params)
}

// PUT /admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := paramID(c, "id", "notification")
	if !ok {
		return
	}

	notification, err := h.adminService.MarkNotificationRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      utils.T(c, i18n.KeyNotificationRead),
		"notification": notification,
	})
}
