// internal/handlers/common.go
package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

// bindJSON decodes and validates the request body. On failure it has already
// written the response.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return validate(c, req)
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return validate(c, req)
}

func validate(c *gin.Context, req interface{}) bool {
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// paramID parses a UUID path parameter.
func paramID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyResourceInvalidInput, resource+" ID"), nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional UUID query parameter. An absent parameter
// yields nil.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyResourceInvalidInput, name), nil)
		return nil, false
	}
	return &id, true
}

func respondList(c *gin.Context, items interface{}, total int64, params utils.PaginationParams) {
	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params))
}

func respondDeleted(c *gin.Context, resource string) {
	utils.SuccessResponse(c, gin.H{"message": utils.T(c, i18n.KeyResourceDeleted, resource)})
}

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and never echoed to the client.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var badRef *services.ReferenceError

	switch {
	case errors.As(err, &badRef):
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyResourceInvalidRef, badRef.Resource), nil)
	case errors.As(err, &notFound):
		utils.NotFoundResponse(c, utils.T(c, i18n.KeyResourceNotFound, title(notFound.Resource)))
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "")
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, utils.T(c, i18n.KeyConflict))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func title(resource string) string {
	if resource == "" {
		return resource
	}
	return strings.ToUpper(resource[:1]) + strings.ReplaceAll(resource[1:], "_", " ")
}
