package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Name    string      `json:"name,omitempty"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Name:    http.StatusText(code),
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// StatusFor maps an error kind to the HTTP status the boundary answers with.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized, KindInvalidToken:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func HandleServiceError(c *gin.Context, err error) {
	status := StatusFor(err)
	kind := KindOf(err)

	message := "Internal server error"
	switch kind {
	case KindValidation, KindUnauthorized, KindNotFound:
		var app *AppError
		if errors.As(err, &app) {
			message = app.Message
		} else {
			message = err.Error()
		}
	case KindInvalidToken:
		message = "Invalid or expired token"
	default:
		zap.L().Error("request failed",
			zap.String("trace_id", traceIDOf(c)),
			zap.String("kind", kind.String()),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(status, APIResponse{
		Status:  "error",
		Code:    status,
		Name:    kind.String(),
		Message: message,
		TraceID: traceIDOf(c),
	})
}
