package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	apperrors "github.com/vitalsense/riskmodel/pkg/errors"
)

// Handler wires the HTTP transport to the assessment service.
type Handler struct {
	assessSvc assessment.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(assessSvc assessment.Service, logger *slog.Logger) *Handler {
	return &Handler{
		assessSvc: assessSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

// Assess scores a patient's reading batch and returns the risk assessment.
func (h *Handler) Assess(c *gin.Context) {
	var req assessment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.assessSvc.Assess(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "assessment_failed"
		switch apperrors.CodeOf(err) {
		case "invalid_input":
			status = http.StatusBadRequest
			code = "invalid_request"
		case "readings_source_error":
			status = http.StatusBadGateway
			code = "readings_source_error"
		case "internal_error":
			code = "internal_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Status answers the liveness probe with service identity and rule version.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.assessSvc.Status())
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
