package climate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kanishk-2/climate-action-ai/internal/advisor"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the dashboard API
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new climate handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the dashboard routes on the /api group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/climate-metrics", h.getLatestMetrics)
	router.POST("/climate-metrics", h.recordMetrics)

	router.POST("/carbon-calculation", h.createCalculation)
	router.GET("/carbon-calculation/:id", h.getCalculation)

	router.GET("/carbon-credits", h.listCredits)
	router.POST("/carbon-credits/recommendations", h.recommendCredits)

	router.GET("/policy-recommendations", h.listPolicies)

	router.POST("/chat", h.sendChatMessage)
	router.GET("/chat", h.listChatMessages)

	router.GET("/climate-data", h.getClimateData)

	router.POST("/update-api-key", h.updateAPIKey)
}

// bindRaw decodes the request body into an untyped JSON object
func bindRaw(c *gin.Context) (map[string]any, error) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "body",
			Message: "request body must be a JSON object",
			Code:    CodeType,
		}}}
	}
	return raw, nil
}

func (h *Handler) badRequest(c *gin.Context, message string, err error) {
	h.logger.Debug(message, zap.Error(err), zap.String("path", c.FullPath()))
	body := gin.H{"message": message}
	var verr *ValidationError
	if errors.As(err, &verr) {
		body["errors"] = verr.Fields
	}
	c.JSON(http.StatusBadRequest, body)
}

func (h *Handler) internalError(c *gin.Context, message string, err error) {
	h.logger.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// getLatestMetrics handles GET /api/climate-metrics
func (h *Handler) getLatestMetrics(c *gin.Context) {
	metrics, err := h.service.LatestMetrics(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch climate metrics", err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// recordMetrics handles POST /api/climate-metrics
func (h *Handler) recordMetrics(c *gin.Context) {
	raw, err := bindRaw(c)
	if err != nil {
		h.badRequest(c, "Invalid climate metrics data", err)
		return
	}
	in, err := ParseInsertClimateMetrics(raw)
	if err != nil {
		h.badRequest(c, "Invalid climate metrics data", err)
		return
	}

	metrics, err := h.service.RecordMetrics(c.Request.Context(), in)
	if err != nil {
		h.internalError(c, "Failed to record climate metrics", err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// createCalculation handles POST /api/carbon-calculation
func (h *Handler) createCalculation(c *gin.Context) {
	raw, err := bindRaw(c)
	if err != nil {
		h.badRequest(c, "Invalid calculation data", err)
		return
	}
	in, err := ParseInsertCarbonCalculation(raw)
	if err != nil {
		h.badRequest(c, "Invalid calculation data", err)
		return
	}

	calc, err := h.service.CalculateFootprint(c.Request.Context(), in)
	if err != nil {
		h.internalError(c, "Failed to calculate carbon footprint", err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// getCalculation handles GET /api/carbon-calculation/:id
func (h *Handler) getCalculation(c *gin.Context) {
	calc, err := h.service.GetCalculation(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Calculation not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to fetch calculation", err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// listCredits handles GET /api/carbon-credits
func (h *Handler) listCredits(c *gin.Context) {
	credits, err := h.service.ListCredits(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch carbon credits", err)
		return
	}
	c.JSON(http.StatusOK, credits)
}

// recommendCredits handles POST /api/carbon-credits/recommendations
func (h *Handler) recommendCredits(c *gin.Context) {
	raw, err := bindRaw(c)
	if err != nil {
		h.badRequest(c, "Invalid recommendation request", err)
		return
	}
	req, err := ParseRecommendationRequest(raw)
	if err != nil {
		h.badRequest(c, "Invalid recommendation request", err)
		return
	}
	c.JSON(http.StatusOK, h.service.RecommendCredits(c.Request.Context(), req))
}

// listPolicies handles GET /api/policy-recommendations
func (h *Handler) listPolicies(c *gin.Context) {
	policies, err := h.service.ListPolicies(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch policy recommendations", err)
		return
	}
	c.JSON(http.StatusOK, policies)
}

// sendChatMessage handles POST /api/chat
func (h *Handler) sendChatMessage(c *gin.Context) {
	raw, err := bindRaw(c)
	if err != nil {
		h.badRequest(c, "Invalid chat message", err)
		return
	}
	in, err := ParseInsertChatMessage(raw)
	if err != nil {
		h.badRequest(c, "Invalid chat message", err)
		return
	}

	msg, err := h.service.SendChatMessage(c.Request.Context(), in)
	if err != nil {
		h.internalError(c, "Failed to send chat message", err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// listChatMessages handles GET /api/chat
func (h *Handler) listChatMessages(c *gin.Context) {
	msgs, err := h.service.ChatHistory(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch chat messages", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// getClimateData handles GET /api/climate-data
func (h *Handler) getClimateData(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ClimateData())
}

// updateAPIKey handles POST /api/update-api-key
func (h *Handler) updateAPIKey(c *gin.Context) {
	raw, err := bindRaw(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid API key provided"})
		return
	}
	in, err := ParseAPIKeyUpdate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid API key provided"})
		return
	}

	err = h.service.UpdateAPIKey(c.Request.Context(), in.APIKey)
	switch {
	case errors.Is(err, advisor.ErrCredentialRejected):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid OpenAI API key. Please check your key and try again.",
		})
	case err != nil:
		h.internalError(c, "Failed to update API key", err)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "API key updated successfully and validated",
		})
	}
}
