package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Grade string `json:"grade" validate:"required,grade_label"`
	Days  int    `json:"days" validate:"omitempty,gte=1"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "teacher@school.kz", Grade: "10-9", Days: 30})
	assert.NoError(t, err)
}

func TestValidate_FieldNamesFromJSONTags(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email", Grade: "tenth"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "grade")
}

func TestValidate_GradeLabelRule(t *testing.T) {
	v := New()

	for _, grade := range []string{"10-9", "11-1", "7-12"} {
		assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.cd", Grade: grade}), grade)
	}
	for _, grade := range []string{"", "10", "ten-nine", "10-9-1"} {
		assert.Error(t, v.Validate(&sampleRequest{Email: "a@b.cd", Grade: grade}), grade)
	}
}

func TestValidate_MinDays(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "a@b.cd", Grade: "10-9", Days: -1})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "days")
}
