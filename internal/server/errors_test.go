package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-pathways/internal/recommend"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "user_id", Message: "failed on uuid"}
	assert.Equal(t, "validation error: user_id - failed on uuid", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrBadRequest(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ErrBadRequest{Cause: cause}
	assert.Equal(t, "invalid request body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"profile not found", recommend.ErrProfileNotFound, http.StatusNotFound},
		{"wrapped profile not found", fmt.Errorf("user x: %w", recommend.ErrProfileNotFound), http.StatusNotFound},
		{"wrapped validation", fmt.Errorf("decode: %w", &ErrValidation{Field: "k"}), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError_UsesJSONFieldNames(t *testing.T) {
	v := newValidator()
	err := v.Struct(&TransitionsRequest{Limit: 99})

	var validationErr *ErrValidation
	assert.ErrorAs(t, validationError(err), &validationErr)
	assert.Equal(t, "profile", validationErr.Field)
}
