package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"automateace/internal/services"
	apperrors "automateace/pkg/errors"
)

// APIHandler exposes the JSON endpoints
type APIHandler struct {
	submissions *services.SubmissionService
	catalog     *services.CatalogService
	report      *services.ReportService
	health      *services.HealthService
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(
	submissions *services.SubmissionService,
	catalog *services.CatalogService,
	report *services.ReportService,
	health *services.HealthService,
) *APIHandler {
	return &APIHandler{
		submissions: submissions,
		catalog:     catalog,
		report:      report,
		health:      health,
	}
}

// Register mounts the API routes
func (h *APIHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/submit-inquiry", h.SubmitInquiry)
		api.GET("/portfolio", h.Portfolio)
		api.GET("/services", h.Services)
		api.GET("/submissions", h.Submissions)
	}
	r.GET("/health", h.Health)
}

// SubmitInquiry handles POST /api/submit-inquiry
func (h *APIHandler) SubmitInquiry(c *gin.Context) {
	var req services.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body has no usable fields, report them missing
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   services.MsgMissingFields,
		})
		return
	}

	if err := h.submissions.Submit(c.Request.Context(), &req); err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   clientMessage(err, services.MsgSubmitFailed),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   services.MsgSubmitFailed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": services.MsgSubmitSuccess,
	})
}

// Portfolio handles GET /api/portfolio
func (h *APIHandler) Portfolio(c *gin.Context) {
	projects, err := h.catalog.ListPortfolio(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": clientMessage(err, "Failed to fetch portfolio")})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Services handles GET /api/services
func (h *APIHandler) Services(c *gin.Context) {
	list, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": clientMessage(err, "Failed to fetch services")})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Submissions handles GET /api/submissions
func (h *APIHandler) Submissions(c *gin.Context) {
	records, err := h.report.ListSubmissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": clientMessage(err, "Failed to fetch submissions")})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Health handles GET /health
func (h *APIHandler) Health(c *gin.Context) {
	result := h.health.Check(c.Request.Context())
	status := http.StatusOK
	if result.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}

// clientMessage extracts the client-safe message from an AppError,
// falling back to a generic one for unexpected errors.
func clientMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
