package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"spinwin/internal/services"
	"spinwin/internal/utils"
	"spinwin/internal/validators"
	"spinwin/pkg/logger"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	logger           *logger.Logger
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           log,
	}
}

// GetAnalytics serves GET and POST. On POST, JSON body fields override the
// query string.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	scope, ok := scopeOrAbort(c)
	if !ok {
		return
	}

	var query validators.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var body validators.AnalyticsQuery
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
			return
		}
		query = query.Merge(body)
	}

	if errs := validators.ValidateAnalyticsQuery(&query); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}
	params, err := query.Params()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), scope, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.JSONResponse(c, summary)
}

// GetSpinResults lists the latest spins visible to the caller.
func (h *AnalyticsHandler) GetSpinResults(c *gin.Context) {
	scope, ok := scopeOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.analyticsService.SpinResults(c.Request.Context(), scope, c.Query("routeName"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.JSONResponse(c, resp)
}
