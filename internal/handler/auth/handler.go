package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/model"
)

// AuthService is the session lifecycle the handler drives.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *model.Identity, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	service AuthService
	session config.SessionConfig
}

func NewHandler(service AuthService, session config.SessionConfig) *Handler {
	return &Handler{
		service: service,
		session: session,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

// RegisterProtectedRoutes mounts the routes that need an authenticated
// session.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("username and password are required"))
		return
	}

	token, ident, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetCookie(
		h.session.CookieName,
		token,
		h.session.TTLHours*3600,
		"/",
		"",
		h.session.CookieSecure,
		true,
	)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ident))
}

func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.session.CookieName)
	if err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			c.Error(err)
			return
		}
	}

	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"logged_out": true}))
}

func (h *Handler) Me(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ident))
}
