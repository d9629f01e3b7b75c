package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubRegistrar registers a single probe route
type stubRegistrar struct {
	path       string
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET(s.path, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func TestRouter_Setup_RegistersUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	registrar := &stubRegistrar{path: "/documents"}

	NewRouter(engine).Register(registrar).Setup()

	assert.True(t, registrar.registered)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WithAPIVersion(t *testing.T) {
	engine := gin.New()
	registrar := &stubRegistrar{path: "/documents"}

	NewRouter(engine, WithAPIVersion("v2")).Register(registrar).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v2/documents", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Register_Chains(t *testing.T) {
	engine := gin.New()
	first := &stubRegistrar{path: "/documents"}
	second := &stubRegistrar{path: "/receipts"}

	NewRouter(engine).Register(first).Register(second).Setup()

	assert.True(t, first.registered)
	assert.True(t, second.registered)
}
