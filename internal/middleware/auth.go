// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

// TokenHeader carries the access token. Authorization: Bearer is accepted too.
const TokenHeader = "x-access-token"

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		// Set user info in context
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(TokenHeader)); token != "" {
		return token
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RoleRequired loads the caller from the database so a role change applies to
// tokens that were issued before it.
func RoleRequired(db *gorm.DB, messageKey string, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := utils.GetUserIDFromContext(c)
		if !ok {
			utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		var user models.User
		err := db.WithContext(c.Request.Context()).Select("id", "role", "is_active").First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("Failed to load user for role check")
			utils.InternalErrorResponse(c, "")
			c.Abort()
			return
		}

		if !user.IsActive || !user.HasRole(roles...) {
			utils.ForbiddenResponse(c, utils.T(c, messageKey))
			c.Abort()
			return
		}

		c.Set("role", string(user.Role))
		c.Next()
	}
}

func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return RoleRequired(db, i18n.KeyAuthAdminRequired, models.RoleAdmin)
}

func AnalystRequired(db *gorm.DB) gin.HandlerFunc {
	return RoleRequired(db, i18n.KeyAuthAnalystRequired, models.RoleAdmin, models.RoleAnalyst)
}

func SupplierRequired(db *gorm.DB) gin.HandlerFunc {
	return RoleRequired(db, i18n.KeyAuthSupplierRequired, models.RoleSupplier)
}
