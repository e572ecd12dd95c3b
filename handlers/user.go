package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/merchant/user"
)

const refreshCookieName = "refreshToken"

// CookieConfig controls the session cookies minted at login.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UserHandler interface {
	Register(c echo.Context) error
	Login(c echo.Context) error
	Logout(c echo.Context) error
}

type userHandler struct {
	service user.Service
	cookies CookieConfig
	logger  *zap.Logger
}

func NewUserHandler(service user.Service, cookies CookieConfig, logger *zap.Logger) UserHandler {
	return &userHandler{
		service: service,
		cookies: cookies,
		logger:  logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (uh *userHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	created, err := uh.service.Register(c.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return uh.fail(c, err)
	}

	return respond(c, http.StatusCreated, created, "User registered successfully")
}

func (uh *userHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	account, pair, err := uh.service.Login(c.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return uh.fail(c, err)
	}

	uh.setSessionCookie(c, accessCookieName, pair.AccessToken, uh.cookies.AccessTTL)
	uh.setSessionCookie(c, refreshCookieName, pair.RefreshToken, uh.cookies.RefreshTTL)

	return respond(c, http.StatusOK, echo.Map{
		"user":          account,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout runs behind the auth gate, so the user id is already verified.
func (uh *userHandler) Logout(c echo.Context) error {
	userID, _ := c.Get(ContextUserIDKey).(string)
	if userID == "" {
		return respondError(c, http.StatusUnauthorized, "unauthorized request")
	}

	if err := uh.service.Logout(c.Request().Context(), userID); err != nil {
		return uh.fail(c, err)
	}

	uh.setSessionCookie(c, accessCookieName, "", -time.Second)
	uh.setSessionCookie(c, refreshCookieName, "", -time.Second)

	return respond(c, http.StatusOK, echo.Map{}, "User logged out")
}

func (uh *userHandler) setSessionCookie(c echo.Context, name, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   uh.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().Add(ttl)
	}
	c.SetCookie(cookie)
}

func (uh *userHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, user.ErrFieldsRequired), errors.Is(err, user.ErrIdentifierRequired):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrUserExists):
		return respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, err.Error())
	default:
		uh.logger.Error("auth request failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
}
