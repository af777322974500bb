package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoot(t *testing.T) {
	w := serve(NewHandler(fakePinger{}), "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Banner, w.Body.String())
}

func TestReadiness(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(NewHandler(fakePinger{}), "/health/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(NewHandler(fakePinger{err: errors.New("down")}), "/health/ready").Code)
	assert.Equal(t, http.StatusOK, serve(NewHandler(fakePinger{err: errors.New("down")}), "/health/live").Code)
}
