package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves report downloads
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new report handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the report routes on the /api group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/policy-recommendations/report", h.policyReport)
}

// policyReport handles GET /api/policy-recommendations/report?format=pdf|csv|xlsx
func (h *Handler) policyReport(c *gin.Context) {
	format := Format(strings.ToLower(c.DefaultQuery("format", string(FormatPDF))))

	report, err := h.service.PolicyReport(c.Request.Context(), format)
	if errors.Is(err, ErrUnsupportedFormat) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported report format"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to generate policy report", zap.Error(err), zap.String("format", string(format)))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate policy report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
