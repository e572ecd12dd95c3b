package handlers

import "github.com/labstack/echo/v4"

// The response envelope the dashboard frontend expects: {status, data,
// message} on success, {status, message, errors} on failure.

type successEnvelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, successEnvelope{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

func respondError(c echo.Context, status int, message string, errs ...string) error {
	if errs == nil {
		errs = []string{}
	}
	return c.JSON(status, errorEnvelope{
		Status:  status,
		Message: message,
		Errors:  errs,
	})
}
