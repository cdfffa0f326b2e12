package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"spinwin/internal/middleware"
	"spinwin/internal/models"
	"spinwin/internal/services"
	"spinwin/internal/utils"
	"spinwin/internal/validators"
	"spinwin/pkg/logger"
)

// respondError maps service errors to the error envelope. Anything not
// recognized is logged and reported as a bare 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTimeRange), errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c)
	case errors.Is(err, services.ErrTooManyAttempts):
		utils.TooManyRequestsResponse(c)
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.NotFoundResponse(c, "Customer")
	default:
		log.WithContext(c.Request.Context()).WithError(err).Error("Request failed")
		utils.InternalServerErrorResponse(c)
	}
}

func respondValidation(c *gin.Context, errs validators.ValidationErrors) {
	utils.ValidationErrorResponse(c, errs.Details())
}

// scopeOrAbort reads the caller scope. Routes are always mounted behind
// AuthRequired, so a missing scope is a wiring fault.
func scopeOrAbort(c *gin.Context) (models.AccessScope, bool) {
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return models.AccessScope{}, false
	}
	return scope, true
}

func healthStatus(ok bool) int {
	if ok {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
