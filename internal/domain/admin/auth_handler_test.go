package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *mockRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := new(mockRepo)
	svc, _ := newTestService(repo)

	r := gin.New()
	RegisterAuthRoutes(r.Group("/admin"), NewAuthHandler(svc), AdminJWTAuth(svc))
	return r, repo
}

func login(t *testing.T, r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_LoginMeLogout(t *testing.T) {
	r, repo := setupRouter(t)
	admin := newAdmin(t, "daki", "s3cret")
	repo.On("GetByUsername", mock.Anything, "daki").Return(admin, nil)
	repo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

	w := login(t, r, "daki", "s3cret")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp.Data.AccessToken
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/admin/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"daki"`)
	assert.NotContains(t, w.Body.String(), "password")

	req = httptest.NewRequest(http.MethodPost, "/admin/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestAuthHandler_LoginFailuresAreGeneric(t *testing.T) {
	r, repo := setupRouter(t)
	repo.On("GetByUsername", mock.Anything, "daki").Return(newAdmin(t, "daki", "s3cret"), nil)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, ErrAdminNotFound)

	wrongPassword := login(t, r, "daki", "nope")
	unknownUser := login(t, r, "ghost", "nope")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Contains(t, unknownUser.Body.String(), "AUTH_FAILED")
}

func TestAdminJWTAuth_Rejections(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing", "", "AUTH_HEADER_MISSING"},
		{"bad format", "Token abc", "INVALID_AUTH_FORMAT"},
		{"bad token", "Bearer abc", "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}
