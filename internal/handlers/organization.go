// internal/handlers/organization.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type OrganizationHandler struct {
	organizationService *services.OrganizationService
}

func NewOrganizationHandler(organizationService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
	}
}

// GET /organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orgs, total, err := h.organizationService.List(c.Request.Context(), services.OrganizationFilter{
		PaginationParams: params,
		Type:             models.OrganizationType(c.Query("type")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orgs, total, params)
}

// GET /organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "organization")
	if !ok {
		return
	}

	org, err := h.organizationService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, org)
}

// POST /organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req services.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.organizationService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, org)
}

// PUT /organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "organization")
	if !ok {
		return
	}

	var req services.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.organizationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, org)
}

// DELETE /organizations/:id
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "organization")
	if !ok {
		return
	}

	if err := h.organizationService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Organization")
}
