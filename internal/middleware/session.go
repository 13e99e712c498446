package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
)

const contextIdentity = "identity"

// IdentityResolver maps a session cookie value to an identity.
type IdentityResolver interface {
	Identity(ctx context.Context, token string) (*model.Identity, error)
}

type SessionMiddleware struct {
	resolver   IdentityResolver
	cookieName string
}

func NewSessionMiddleware(resolver IdentityResolver, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		resolver:   resolver,
		cookieName: cookieName,
	}
}

// Authenticate resolves the session cookie and binds the identity to the
// request context. Requests without a valid session are anonymous and
// rejected with the generic authentication message.
func (m *SessionMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			return
		}

		ident, err := m.resolver.Identity(c.Request.Context(), token)
		if err != nil {
			if apperror.IsAuthentication(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, handler.NewErrorResponse("internal error"))
			return
		}

		c.Set(contextIdentity, *ident)
		c.Next()
	}
}

// RequireRole gates a route group on a single role. Must run after
// Authenticate.
func (m *SessionMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok || ident.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, handler.NewErrorResponse(apperror.MsgPermissionDenied))
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity bound by Authenticate.
func IdentityFromContext(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(contextIdentity)
	if !exists {
		return model.Identity{}, false
	}
	ident, ok := v.(model.Identity)
	return ident, ok
}
