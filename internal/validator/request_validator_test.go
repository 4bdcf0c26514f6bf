package validator_test

import (
	"net/http"
	"testing"

	"github.com/LCtech96/EmilyBoutique/internal/usecase"
	"github.com/LCtech96/EmilyBoutique/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

func TestRequestValidator(t *testing.T) {
	v := validator.NewRequestValidator()

	require.NoError(t, v.Validate(&sampleRequest{ProductID: "6f1c9a52-2f4e-4a8e-9f57-0c2f6b1d0a11", Quantity: 2}))

	tests := []struct {
		name string
		req  sampleRequest
		msg  string
	}{
		{"missing product", sampleRequest{Quantity: 1}, "invalid product_id"},
		{"not a uuid", sampleRequest{ProductID: "42", Quantity: 1}, "invalid product_id"},
		{"quantity too high", sampleRequest{ProductID: "6f1c9a52-2f4e-4a8e-9f57-0c2f6b1d0a11", Quantity: 100}, "invalid quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			assert.Equal(t, tt.msg, he.Message)
		})
	}
}
