package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountsvc "frituurgros/internal/service/account"
)

type handlers struct {
	deps   Deps
	logger *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) signup(c *gin.Context) {
	var in accountsvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	account, err := h.deps.Accounts.Signup(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, account)
}

// login issues tokens and immediately classifies the identity. Blocked and
// unknown identities get their fresh tokens revoked: valid credentials
// without a usable role must not keep a session.
func (h *handlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	ctx := c.Request.Context()
	access, refresh, err := h.deps.Accounts.Login(ctx, in.Email, in.Password)
	if err != nil {
		if err == accountsvc.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	decision := h.deps.Session.Classify(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if decision.SignOut {
		if err := h.deps.Accounts.Logout(ctx, access); err != nil {
			h.logger.Warn("revoke token after blocked login", zap.Error(err))
		}
		if err := h.deps.Accounts.Logout(ctx, refresh); err != nil {
			h.logger.Warn("revoke token after blocked login", zap.Error(err))
		}
		c.JSON(http.StatusForbidden, gin.H{"role": decision.Role, "destination": decision.Destination})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"role":         decision.Role,
		"destination":  decision.Destination,
	})
}

func (h *handlers) logout(c *gin.Context) {
	value := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))
	if err := h.deps.Accounts.Logout(c.Request.Context(), value); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) sessionRole(c *gin.Context) {
	decision := h.deps.Session.Classify(c.Request.Context(), c.GetString(ctxEmail))
	c.JSON(http.StatusOK, decision)
}
