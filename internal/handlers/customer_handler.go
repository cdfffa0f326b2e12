package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spinwin/internal/services"
	"spinwin/internal/utils"
	"spinwin/internal/validators"
	"spinwin/pkg/logger"
)

type CustomerHandler struct {
	customerService services.CustomerService
	logger          *logger.Logger
}

func NewCustomerHandler(customerService services.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          log,
	}
}

func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	scope, ok := scopeOrAbort(c)
	if !ok {
		return
	}

	var query validators.CustomerSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}
	if errs := validators.ValidateCustomerSearch(&query); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	result, err := h.customerService.Search(c.Request.Context(), scope, query.Search, query.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.JSONResponse(c, result)
}

func (h *CustomerHandler) GetCustomerDetails(c *gin.Context) {
	scope, ok := scopeOrAbort(c)
	if !ok {
		return
	}

	customerID := strings.TrimSpace(c.Param("customerId"))
	if customerID == "" {
		utils.BadRequestResponse(c, "Customer ID is required")
		return
	}

	loc, ok := h.location(c)
	if !ok {
		return
	}

	detail, err := h.customerService.Detail(c.Request.Context(), scope, customerID, loc)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.JSONResponse(c, detail)
}

func (h *CustomerHandler) GetMonthlyCustomers(c *gin.Context) {
	scope, ok := scopeOrAbort(c)
	if !ok {
		return
	}

	loc, ok := h.location(c)
	if !ok {
		return
	}

	cmp, err := h.customerService.MonthlyComparison(c.Request.Context(), scope, loc)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.JSONResponse(c, cmp)
}

func (h *CustomerHandler) location(c *gin.Context) (*time.Location, bool) {
	query := validators.TimezoneQuery{TZ: c.Query("tz")}
	if errs := validators.ValidateTimezone(&query); len(errs) > 0 {
		respondValidation(c, errs)
		return nil, false
	}

	loc, err := utils.LoadLocation(query.TZ)
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: tz: %v", services.ErrInvalidInput, err))
		return nil, false
	}
	return loc, true
}
