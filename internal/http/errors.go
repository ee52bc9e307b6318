package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/service"
	"go.uber.org/zap"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// statusFor maps a service error to its HTTP status and client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingParameter),
		errors.Is(err, service.ErrInvalidIdentifier),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrNotAMember):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func (h *Handler) fail(c *gin.Context, err error, fields ...zap.Field) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		fields = append(fields, zap.String("route", c.FullPath()), zap.Error(err))
		log.For(c.Request.Context(), h.Log).Error("request failed", fields...)
	} else {
		h.Log.Debug("request rejected", append(fields, zap.Int("status", status), zap.String("reason", msg))...)
	}
	c.JSON(status, errorBody{Success: false, Message: msg})
}

func badJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, errorBody{Success: false, Message: "invalid json"})
}
