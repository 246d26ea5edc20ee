// internal/handlers/survey.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SurveyHandler struct {
	surveyService  *services.SurveyService
	storageService *services.StorageService
}

func NewSurveyHandler(surveyService *services.SurveyService, storageService *services.StorageService) *SurveyHandler {
	return &SurveyHandler{
		surveyService:  surveyService,
		storageService: storageService,
	}
}

// GET /surveys
func (h *SurveyHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orgID, ok := queryID(c, "organization_id")
	if !ok {
		return
	}

	surveys, total, err := h.surveyService.List(c.Request.Context(), services.SurveyFilter{
		PaginationParams: params,
		OrganizationID:   orgID,
		Status:           models.SurveyStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, surveys, total, params)
}

// GET /surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "survey")
	if !ok {
		return
	}

	survey, err := h.surveyService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, survey)
}

// GET /surveys/organization/:organizationId
func (h *SurveyHandler) ByOrganization(c *gin.Context) {
	orgID, ok := paramID(c, "organizationId", "organization")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	surveys, total, err := h.surveyService.ByOrganization(c.Request.Context(), orgID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, surveys, total, params)
}

// POST /surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	var req services.CreateSurveyRequest
	if !bindJSON(c, &req) {
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, survey)
}

// PUT /surveys/:id
func (h *SurveyHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "survey")
	if !ok {
		return
	}

	var req services.UpdateSurveyRequest
	if !bindJSON(c, &req) {
		return
	}

	survey, err := h.surveyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, survey)
}

// DELETE /surveys/:id
func (h *SurveyHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "survey")
	if !ok {
		return
	}

	if err := h.surveyService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Survey")
}

// POST /surveys/:id/questions
func (h *SurveyHandler) AddQuestion(c *gin.Context) {
	id, ok := paramID(c, "id", "survey")
	if !ok {
		return
	}

	var req services.CreateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.surveyService.AddQuestion(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, question)
}

// GET /surveys/:id/questions
func (h *SurveyHandler) ListQuestions(c *gin.Context) {
	id, ok := paramID(c, "id", "survey")
	if !ok {
		return
	}

	questions, err := h.surveyService.ListQuestions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, questions)
}

// GET /surveys/:id/responses
func (h *SurveyHandler) ListResponses(c *gin.Context) {
	id, ok := paramID(c, "id", "survey")
	if !ok {
		return
	}

	responses, err := h.surveyService.ListResponses(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, responses)
}

// POST /surveys/responses
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req services.SubmitResponsesRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.surveyService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       utils.T(c, i18n.KeySurveySubmitted),
		"responses":     result.Responses,
		"response_rate": result.ResponseRate,
	})
}

// POST /surveys/uploads
func (h *SurveyHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyResourceInvalidInput, "file"), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(c.Request.Context(), file, header, services.SurveyUploadOptions())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": utils.T(c, i18n.KeyFileUploaded),
		"file":    result,
	})
}
