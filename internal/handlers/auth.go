// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.ConflictResponse(c, utils.T(c, i18n.KeyAuthUserExists))
			return
		}
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": utils.T(c, i18n.KeyAuthSignupSuccess),
		"user":    user,
	})
}

// POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req services.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, utils.T(c, i18n.KeyAuthUserNotFound))
		case errors.Is(err, services.ErrForbidden):
			utils.ForbiddenResponse(c, utils.T(c, i18n.KeyAuthUserInactive))
		default:
			respondError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, resp)
}
