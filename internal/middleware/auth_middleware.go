package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"spinwin/internal/models"
	"spinwin/internal/services"
	"spinwin/internal/utils"
	"spinwin/internal/validators"
	"spinwin/pkg/logger"
)

// ExtractCredentials reads X-User/X-Password, then HTTP Basic, then a JSON
// body on POST. The body is cached so handlers can bind it again.
func ExtractCredentials(c *gin.Context) services.Credentials {
	if user, pass := c.GetHeader("X-User"), c.GetHeader("X-Password"); user != "" && pass != "" {
		return services.Credentials{Username: strings.TrimSpace(user), Password: strings.TrimSpace(pass)}
	}

	if creds, ok := basicCredentials(c.GetHeader("Authorization")); ok {
		return creds
	}

	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var body validators.LoginRequest
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
			return services.Credentials{
				Username: strings.TrimSpace(body.Username),
				Password: strings.TrimSpace(body.Password),
			}
		}
	}

	return services.Credentials{}
}

func basicCredentials(header string) (services.Credentials, bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return services.Credentials{}, false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return services.Credentials{}, false
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return services.Credentials{}, false
	}
	return services.Credentials{Username: strings.TrimSpace(user), Password: strings.TrimSpace(pass)}, true
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// AuthRequired resolves the caller's access scope from a bearer token or
// credentials and stores it on the context.
func AuthRequired(authService services.AuthService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			principal *services.Principal
			err       error
		)

		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			principal, err = authService.AuthenticateToken(token)
		} else {
			creds := ExtractCredentials(c)
			if creds.Empty() {
				utils.UnauthorizedResponse(c)
				return
			}
			principal, err = authService.Authenticate(c.Request.Context(), creds)
		}

		if err != nil {
			switch {
			case errors.Is(err, services.ErrTooManyAttempts):
				utils.TooManyRequestsResponse(c)
			case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidInput):
				utils.UnauthorizedResponse(c)
			default:
				log.WithContext(c.Request.Context()).WithError(err).Error("Failed to authenticate request")
				utils.InternalServerErrorResponse(c)
			}
			return
		}

		c.Set(ContextUsername, principal.Username)
		c.Set(ContextScope, principal.Scope)
		c.Set(ContextRouteName, principal.Scope.Label())
		c.Request = c.Request.WithContext(logger.ContextWithUsername(c.Request.Context(), principal.Username))
		c.Next()
	}
}

// ScopeFromContext returns the scope set by AuthRequired.
func ScopeFromContext(c *gin.Context) (models.AccessScope, bool) {
	v, ok := c.Get(ContextScope)
	if !ok {
		return models.AccessScope{}, false
	}
	scope, ok := v.(models.AccessScope)
	return scope, ok
}
