package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Username  string  `json:"username" validate:"required,username"`
	Email     string  `json:"email" validate:"required,email"`
	RiskScore float64 `json:"risk_score" validate:"gte=0,lte=1"`
	Kind      string  `json:"kind,omitempty" validate:"omitempty,oneof=brand ngo"`
}

func TestValidateStructUsername(t *testing.T) {
	assert.NoError(t, ValidateStruct(&signupForm{Username: "maria_silva", Email: "m@x.example"}))
	assert.Error(t, ValidateStruct(&signupForm{Username: "ab", Email: "m@x.example"}))
	assert.Error(t, ValidateStruct(&signupForm{Username: "bad name", Email: "m@x.example"}))
}

func TestGetValidationErrors(t *testing.T) {
	errs := GetValidationErrors(ValidateStruct(&signupForm{
		Username:  "ok_user",
		Email:     "nope",
		RiskScore: 1.5,
		Kind:      "club",
	}))
	require.Len(t, errs, 3)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "email", byField["email"].Tag)
	assert.Equal(t, "lte", byField["risk_score"].Tag)
	assert.Equal(t, "kind must be one of: brand ngo", byField["kind"].Message)
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
	assert.Empty(t, GetValidationErrors(assert.AnError))
}
