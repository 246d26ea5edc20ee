package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/sustainchain-backend/internal/models"
)

func newSurvey(t *testing.T, f *fixture, svc *SurveyService) (*models.Survey, []*models.Question) {
	t.Helper()
	survey, err := svc.Create(ctx, &CreateSurveyRequest{
		Title:          "Deforestation Policy Assessment",
		Status:         models.SurveyStatusActive,
		OrganizationID: f.org.ID,
	})
	require.NoError(t, err)

	var questions []*models.Question
	for _, text := range []string{"Do you have a policy?", "Upload your certificate"} {
		q, err := svc.AddQuestion(ctx, survey.ID, &CreateQuestionRequest{Text: text, Type: models.QuestionTypeText})
		require.NoError(t, err)
		questions = append(questions, q)
	}
	return survey, questions
}

func TestAddQuestionAppendsOrder(t *testing.T) {
	f := newFixture(t)
	svc := NewSurveyService(f.db)
	survey, questions := newSurvey(t, f, svc)

	assert.Equal(t, 1, questions[0].Order)
	assert.Equal(t, 2, questions[1].Order)

	loaded, err := svc.Get(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)
	assert.Equal(t, questions[0].ID, loaded.Questions[0].ID)
	assert.Equal(t, models.TargetAudienceAllSuppliers, loaded.TargetAudience)
}

func TestSubmitResponsesUpdatesRate(t *testing.T) {
	f := newFixture(t)
	f.addSupplier(t, f.org, "Silent Supplier", "Ghana", false)
	svc := NewSurveyService(f.db)
	survey, questions := newSurvey(t, f, svc)

	result, err := svc.Submit(ctx, &SubmitResponsesRequest{
		SurveyID:   survey.ID,
		SupplierID: f.supplier.ID,
		Responses: []ResponseItem{
			{QuestionID: questions[0].ID, Value: "Yes"},
			{QuestionID: questions[1].ID, FileURL: "https://cdn.test/cert.pdf"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Responses, 2)
	assert.Equal(t, 0.5, result.ResponseRate)
	assert.Equal(t, models.ResponseStatusSubmitted, result.Responses[0].Status)

	loaded, err := svc.Get(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, loaded.ResponseRate)

	// A second submission by the same supplier does not count twice.
	result, err = svc.Submit(ctx, &SubmitResponsesRequest{
		SurveyID:   survey.ID,
		SupplierID: f.supplier.ID,
		Responses:  []ResponseItem{{QuestionID: questions[0].ID, Value: "Still yes"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.ResponseRate)

	responses, err := svc.ListResponses(ctx, survey.ID)
	require.NoError(t, err)
	assert.Len(t, responses, 3)
	require.NotNil(t, responses[0].Supplier)
	assert.Equal(t, "Amazon Timber", responses[0].Supplier.Name)
}

func TestSubmitResponsesIsAtomic(t *testing.T) {
	f := newFixture(t)
	svc := NewSurveyService(f.db)
	survey, questions := newSurvey(t, f, svc)
	_, foreign := newSurvey(t, f, svc)

	_, err := svc.Submit(ctx, &SubmitResponsesRequest{
		SurveyID:   survey.ID,
		SupplierID: f.supplier.ID,
		Responses: []ResponseItem{
			{QuestionID: questions[0].ID, Value: "Yes"},
			{QuestionID: foreign[0].ID, Value: "Wrong survey"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, count[models.SurveyResponse](t, f.db))

	_, err = svc.Submit(ctx, &SubmitResponsesRequest{
		SurveyID:   survey.ID,
		SupplierID: uuid.New(),
		Responses:  []ResponseItem{{QuestionID: questions[0].ID, Value: "Yes"}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Submit(ctx, &SubmitResponsesRequest{
		SurveyID:   uuid.New(),
		SupplierID: f.supplier.ID,
		Responses:  []ResponseItem{{QuestionID: questions[0].ID, Value: "Yes"}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSurveyWindowValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewSurveyService(f.db)
	start := time.Now()
	end := start.AddDate(0, 0, -1)

	_, err := svc.Create(ctx, &CreateSurveyRequest{
		Title:          "Backwards",
		StartDate:      &start,
		EndDate:        &end,
		OrganizationID: f.org.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &CreateSurveyRequest{Title: "Orphan", OrganizationID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestSurveyUpdateChecksStoredWindow(t *testing.T) {
	f := newFixture(t)
	svc := NewSurveyService(f.db)
	start := time.Now().Truncate(time.Second)
	end := start.AddDate(0, 0, 30)

	survey, err := svc.Create(ctx, &CreateSurveyRequest{
		Title:          "Quarterly Check-in",
		StartDate:      &start,
		EndDate:        &end,
		OrganizationID: f.org.ID,
	})
	require.NoError(t, err)

	beforeStart := start.AddDate(0, 0, -1)
	_, err = svc.Update(ctx, survey.ID, &UpdateSurveyRequest{EndDate: &beforeStart})
	assert.ErrorIs(t, err, ErrInvalidInput)

	afterEnd := end.AddDate(0, 0, 1)
	_, err = svc.Update(ctx, survey.ID, &UpdateSurveyRequest{StartDate: &afterEnd})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored, err := svc.Get(ctx, survey.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EndDate)
	assert.WithinDuration(t, end, *stored.EndDate, time.Second)

	extended := end.AddDate(0, 0, 10)
	updated, err := svc.Update(ctx, survey.ID, &UpdateSurveyRequest{EndDate: &extended})
	require.NoError(t, err)
	assert.WithinDuration(t, extended, *updated.EndDate, time.Second)

	_, err = svc.Update(ctx, uuid.New(), &UpdateSurveyRequest{EndDate: &extended})
	assert.ErrorIs(t, err, ErrNotFound)
}
