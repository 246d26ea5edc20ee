// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orgID, ok := queryID(c, "organization_id")
	if !ok {
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), services.UserFilter{
		PaginationParams: params,
		Role:             models.Role(c.Query("role")),
		OrganizationID:   orgID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, users, total, params)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actorID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "User")
}
