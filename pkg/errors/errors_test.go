package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad", map[string]string{"a": "b"}), http.StatusBadRequest},
		{EmptyUpdate("nothing"), http.StatusBadRequest},
		{UnsupportedMediaType("png only"), http.StatusBadRequest},
		{Unauthorized("no token", nil), http.StatusUnauthorized},
		{TokenExpired("expired", nil), http.StatusUnauthorized},
		{Forbidden("invalid", nil), http.StatusForbidden},
		{NotFound("missing", nil), http.StatusNotFound},
		{PayloadTooLarge("big", nil), http.StatusRequestEntityTooLarge},
		{TooManyRequests("slow down"), http.StatusTooManyRequests},
		{Persistence(errors.New("db down")), http.StatusInternalServerError},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	root := errors.New("connection refused")
	err := fmt.Errorf("create pickup: %w", Persistence(root))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrPersistence, appErr.Code)
	assert.ErrorIs(t, err, root)
	assert.Contains(t, appErr.Error(), "connection refused")
}
