package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/model"
)

type fakeAuthService struct {
	username  string
	password  string
	ident     model.Identity
	loggedOut []string
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, *model.Identity, error) {
	if username != f.username || password != f.password {
		return "", nil, apperror.Authentication()
	}
	return "session-token", &f.ident, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func setupRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())

	h := NewHandler(svc, config.SessionConfig{
		CookieName: "pp_session",
		TTLHours:   24,
	})
	h.RegisterRoutes(engine.Group("/"))
	return engine
}

func newFakeAuth() *fakeAuthService {
	return &fakeAuthService{
		username: "dr_smith",
		password: "doctor123",
		ident: model.Identity{
			UserID:   uuid.New(),
			Role:     model.RoleDoctor,
			FullName: "Dr. Sarah Smith",
		},
	}
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router := setupRouter(newFakeAuth())

	w := postJSON(router, "/auth/login", `{"username":"dr_smith","password":"doctor123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "pp_session", cookies[0].Name)
	assert.Equal(t, "session-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, w.Body.String(), "Dr. Sarah Smith")
}

func TestLoginFailuresLookAlike(t *testing.T) {
	router := setupRouter(newFakeAuth())

	wrongPassword := postJSON(router, "/auth/login", `{"username":"dr_smith","password":"nope"}`)
	unknownUser := postJSON(router, "/auth/login", `{"username":"ghost","password":"doctor123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String(),
		"responses must not reveal whether the username exists")
	assert.Empty(t, wrongPassword.Result().Cookies())
}

func TestLoginMissingFields(t *testing.T) {
	router := setupRouter(newFakeAuth())

	w := postJSON(router, "/auth/login", `{"username":"dr_smith"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	svc := newFakeAuth()
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "pp_session", Value: "session-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"session-token"}, svc.loggedOut)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
