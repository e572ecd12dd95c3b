package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/merchant/models"
	"goflare.io/merchant/token"
	"goflare.io/merchant/user"
)

type fakeUserService struct {
	registerErr error
	loginErr    error
	loggedOut   []string
}

func (f *fakeUserService) Register(_ context.Context, email, username, _ string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-1", Email: email, Username: strings.ToLower(username)}, nil
}

func (f *fakeUserService) Login(_ context.Context, email, username, _ string) (*models.User, token.Pair, error) {
	if f.loginErr != nil {
		return nil, token.Pair{}, f.loginErr
	}
	return &models.User{ID: "u-1", Email: email, Username: username},
		token.Pair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}, nil
}

func (f *fakeUserService) Logout(_ context.Context, userID string) error {
	f.loggedOut = append(f.loggedOut, userID)
	return nil
}

func newUserRequest(t *testing.T, handler func(echo.Context) error, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	require.NoError(t, handler(c))
	return rec
}

func newTestUserHandler(svc user.Service) UserHandler {
	return NewUserHandler(svc, CookieConfig{
		Secure:     true,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}, zap.NewNop())
}

func TestRegisterEnvelope(t *testing.T) {
	h := newTestUserHandler(&fakeUserService{})

	rec := newUserRequest(t, h.Register,
		`{"email":"jane@example.com","username":"Jane","password":"secretsecret"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Status  int             `json:"status"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusCreated, envelope.Status)
	assert.Equal(t, "User registered successfully", envelope.Message)
	assert.NotContains(t, string(envelope.Data), "password")
}

func TestRegisterErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing fields", user.ErrFieldsRequired, http.StatusBadRequest},
		{"duplicate account", user.ErrUserExists, http.StatusConflict},
		{"storage fault", user.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestUserHandler(&fakeUserService{registerErr: tt.err})
			rec := newUserRequest(t, h.Register, `{"email":"a@b.c","username":"a","password":"x"}`, nil)

			assert.Equal(t, tt.status, rec.Code)

			var envelope errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tt.status, envelope.Status)
			assert.NotEmpty(t, envelope.Message)
		})
	}
}

func TestLoginSetsSessionCookies(t *testing.T) {
	h := newTestUserHandler(&fakeUserService{})

	rec := newUserRequest(t, h.Login,
		`{"email":"jane@example.com","password":"secretsecret"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Contains(t, []string{"accessToken", "refreshToken"}, cookie.Name)
		assert.True(t, cookie.HttpOnly, "%s must be httpOnly", cookie.Name)
		assert.True(t, cookie.Secure, "%s must be secure", cookie.Name)
	}
}

func TestLoginErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no identifier", user.ErrIdentifierRequired, http.StatusBadRequest},
		{"unknown account", user.ErrUserNotFound, http.StatusNotFound},
		{"bad password", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token issuance failure", user.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestUserHandler(&fakeUserService{loginErr: tt.err})
			rec := newUserRequest(t, h.Login, `{"email":"a@b.c","password":"x"}`, nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Result().Cookies(), "failed login must not set cookies")
		})
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	svc := &fakeUserService{}
	h := newTestUserHandler(svc)

	rec := newUserRequest(t, h.Logout, ``, func(c echo.Context) {
		c.Set(ContextUserIDKey, "u-1")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"u-1"}, svc.loggedOut)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}

func TestLogoutWithoutVerifiedUser(t *testing.T) {
	h := newTestUserHandler(&fakeUserService{})

	rec := newUserRequest(t, h.Logout, ``, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
