// internal/handlers/seed.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/seed"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SeedHandler struct {
	seeder *seed.Seeder
}

func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{
		seeder: seeder,
	}
}

// POST /seed/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	summary, err := h.seeder.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.ConflictResponse(c, utils.T(c, i18n.KeySeedExists))
			return
		}
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": utils.T(c, i18n.KeySeedCompleted),
		"summary": summary,
	})
}

// POST /seed/reset
func (h *SeedHandler) Reset(c *gin.Context) {
	if err := h.seeder.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": utils.T(c, i18n.KeySeedReset),
	})
}
