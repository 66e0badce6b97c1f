package infrastructure

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"hrms.io/application/controller"
	auth_usecases "hrms.io/application/usecases/auth"
	startup "hrms.io/infrastructure/startUp"
)

func testRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	t.Setenv("CORS_ORIGINS", "https://hr.example.com")
	return newRouter(&startup.Services{
		Sessions:   auth_usecases.NewSessionService(nil, nil),
		Controller: &controller.Controller{},
	}, "release")
}

func TestRouterBasics(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		want    int
	}{
		{name: "ping", method: http.MethodGet, path: "/ping", want: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/nowhere", want: http.StatusNotFound},
		{
			name:    "api without device id",
			method:  http.MethodGet,
			path:    "/api/v1/auth/session",
			headers: map[string]string{"User-Agent": "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"},
			want:    http.StatusBadRequest,
		},
		{
			name:   "api without session",
			method: http.MethodGet,
			path:   "/api/v1/verification/runs/abc",
			headers: map[string]string{
				"User-Agent":  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"X-Device-Id": "device-1",
			},
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}

func TestCorsOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	assert.Contains(t, corsOrigins("debug"), "http://localhost:5173")
	assert.Equal(t, []string{"https://hr.hrms.io"}, corsOrigins("release"))

	t.Setenv("CORS_ORIGINS", "https://hr.example.com,https://kiosk.example.com")
	assert.Equal(t, []string{"https://hr.example.com", "https://kiosk.example.com"}, corsOrigins("release"))
}
