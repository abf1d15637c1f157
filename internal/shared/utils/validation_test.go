package utils

import (
	stderrors "errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	TechLevel   string `json:"tech_level" validate:"required,oneof=L1 L2 L3"`
	PerformedBy string `json:"performed_by" validate:"max=5"`
}

func TestValidationDetails(t *testing.T) {
	err := validate.Struct(sampleRequest{TechLevel: "L9", PerformedBy: "someone"})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, stderrors.As(err, &errs))

	details := ValidationDetails(errs)
	assert.Contains(t, details, "tech_level must be one of [L1 L2 L3]")
	assert.Contains(t, details, "performed_by must be at most 5 characters long")
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("client@example.com"))
	assert.False(t, IsValidEmail("client@"))
	assert.False(t, IsValidEmail(""))
}
