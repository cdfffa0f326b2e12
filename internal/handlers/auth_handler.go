package handlers

import (
	"github.com/gin-gonic/gin"

	"spinwin/internal/middleware"
	"spinwin/internal/services"
	"spinwin/internal/utils"
	"spinwin/pkg/logger"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

// Login checks credentials from headers, Basic auth or the JSON body and
// returns the account with a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	creds := middleware.ExtractCredentials(c)
	if creds.Empty() {
		utils.BadRequestResponse(c, "username and password are required")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Set(middleware.ContextUsername, resp.User.Username)
	utils.JSONResponse(c, resp)
}
