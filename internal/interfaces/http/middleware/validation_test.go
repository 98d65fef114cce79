package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationProbe struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Frequency string  `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Status    string  `form:"status" binding:"omitempty,oneof=pending paid"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(&validationProbe{
		Amount:    -5,
		Frequency: "yearly",
		Email:     "nope",
		Status:    "lost",
	})
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 4)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Must be greater than 0", byField["amount"])
	assert.Equal(t, "Must be one of: daily weekly monthly", byField["frequency"])
	assert.Equal(t, "Invalid email format", byField["email"])
	assert.Equal(t, "Must be one of: pending paid", byField["status"])
}

func TestValidationDetails_RequiredField(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(&validationProbe{})
	details := ValidationDetails(err)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, "This field is required", d.Message)
	}
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
