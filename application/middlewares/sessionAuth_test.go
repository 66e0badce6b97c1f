package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hrms.io/application/constants"
	"hrms.io/application/interfaces"
	auth_usecases "hrms.io/application/usecases/auth"
	"hrms.io/entities"
)

type fakeAuthenticator struct {
	result    auth_usecases.UserAuthResult
	sessionID string
	token     string
	deviceID  string
}

func (f *fakeAuthenticator) IsUserSignedIn(ctx context.Context, sessionID string, authToken string, deviceID string) auth_usecases.UserAuthResult {
	f.sessionID = sessionID
	f.token = authToken
	f.deviceID = deviceID
	return f.result
}

func testContext(headers map[string]string) (*interfaces.ApplicationContext[any], *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodGet, "/api/v1/verification/runs", nil)
	for key, value := range headers {
		ginCtx.Request.Header.Set(key, value)
	}
	return &interfaces.ApplicationContext[any]{
		Ctx:      ginCtx,
		Keys:     ginCtx.Keys,
		Header:   ginCtx.Request.Header,
		DeviceID: headers["X-Device-Id"],
	}, recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header *string
		want   string
	}{
		{name: "missing", header: nil, want: ""},
		{name: "no scheme", header: strPtr("abc"), want: ""},
		{name: "bearer", header: strPtr("Bearer abc.def"), want: "abc.def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BearerToken(tt.header); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func strPtr(value string) *string {
	return &value
}

func TestSessionAuthMiddlewareStoresSession(t *testing.T) {
	authenticator := &fakeAuthenticator{result: auth_usecases.UserAuthResult{
		IsAuthenticated: true,
		Session:         &entities.Session{ID: "s1", UserID: "u1", EmployeeID: "EMP-1", Role: constants.RoleAdmin},
	}}
	ctx, _ := testContext(map[string]string{
		"Authorization": "Bearer token-1",
		"X-Session-Id":  "s1",
		"X-Device-Id":   "device-1",
	})

	next, ok := SessionAuthMiddleware(ctx, authenticator)

	require.True(t, ok)
	assert.Equal(t, "s1", authenticator.sessionID)
	assert.Equal(t, "token-1", authenticator.token)
	assert.Equal(t, "device-1", authenticator.deviceID)
	assert.Equal(t, "u1", next.GetStringContextData("UserID"))
	assert.Equal(t, constants.RoleAdmin, next.GetStringContextData("Role"))

	_, ok = AdminMiddleware(next)
	assert.True(t, ok)
}

func TestSessionAuthMiddlewareRejectsMissingCredentials(t *testing.T) {
	ctx, recorder := testContext(map[string]string{"X-Device-Id": "device-1"})

	_, ok := SessionAuthMiddleware(ctx, &fakeAuthenticator{})

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSessionAuthMiddlewareSignalsTerminatedSession(t *testing.T) {
	authenticator := &fakeAuthenticator{result: auth_usecases.UserAuthResult{ErrorMessage: "this session has expired"}}
	ctx, recorder := testContext(map[string]string{
		"Authorization": "Bearer token-1",
		"X-Session-Id":  "s1",
		"X-Device-Id":   "device-1",
	})

	_, ok := SessionAuthMiddleware(ctx, authenticator)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(constants.SESSION_TERMINATED), body["response_code"])
}

func TestAdminMiddlewareRejectsEmployees(t *testing.T) {
	ctx, recorder := testContext(map[string]string{"X-Device-Id": "device-1"})
	ctx.SetContextData("Role", constants.RoleEmployee)

	_, ok := AdminMiddleware(ctx)

	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestUserAgentMiddleware(t *testing.T) {
	ctx, _ := testContext(map[string]string{
		"User-Agent":  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"X-Device-Id": "device-1",
	})

	next, ok := UserAgentMiddleware(ctx, "10.0.0.1")

	require.True(t, ok)
	assert.Equal(t, "Chrome on Windows", next.DeviceName)
	assert.Equal(t, "device-1", next.DeviceID)
	assert.Equal(t, "10.0.0.1", next.GetStringContextData("ClientIP"))

	missing, recorder := testContext(map[string]string{"User-Agent": "curl/8.0"})
	_, ok = UserAgentMiddleware(missing, "10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
