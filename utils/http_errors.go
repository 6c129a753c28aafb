package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/sirupsen/logrus"
)

// HTTPStatus maps a service error to its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse. Server-side failures are
// logged and their details are not sent to the client.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)

	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		message = "Service temporarily unavailable, please retry"
	case http.StatusInternalServerError:
		message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"component": "http",
			"method":    c.Request.Method,
			"path":      c.FullPath(),
		}).Error("request failed")
	}

	resp := models.ErrorResponse(c, message)
	var conflict *services.ConflictError
	if errors.As(err, &conflict) && conflict.Count > 0 {
		resp.Data = gin.H{"productsCount": conflict.Count}
	}
	c.JSON(status, resp)
}
