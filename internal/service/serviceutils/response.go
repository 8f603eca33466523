package serviceutils

import (
	"github.com/labstack/echo/v4"

	"github.com/shipdocs/invoicegen/internal/logger"
)

// APIResponse is the envelope every JSON endpoint responds with.
type APIResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// ResponseSuccess writes a success envelope.
func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ResponseSuccessWithWarnings writes a success envelope carrying
// non-fatal warnings the operator should see.
func ResponseSuccessWithWarnings(c echo.Context, status int, message string, data interface{}, warnings []string) error {
	return c.JSON(status, APIResponse{
		Success:  true,
		Message:  message,
		Data:     data,
		Warnings: warnings,
	})
}

// ResponseError logs the error and writes a failure envelope.
func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), message, err)
		resp.Error = err.Error()
	}
	return c.JSON(status, resp)
}
