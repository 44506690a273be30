package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/pkg/response"
	"github.com/oksasatya/go-ddd-user-service/pkg/validation"
)

// fail renders a domain error. IO causes are logged and replaced with a generic message.
func (h *UserHandler) fail(c *gin.Context, err error) {
	status := apperror.StatusCode(err)
	entry := h.Logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		var ioErr *apperror.IOError
		if errors.As(err, &ioErr) {
			entry = entry.WithError(ioErr.Cause)
		} else {
			entry = entry.WithError(err)
		}
		entry.Error("user request failed")
	} else {
		entry.WithField("reason", apperror.PublicMessage(err)).Warn("user request rejected")
	}
	response.Error[any](c, status, apperror.PublicMessage(err), nil)
}

func (h *UserHandler) bindError(c *gin.Context, err error) {
	if validation.IsMalformed(err) {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
}
