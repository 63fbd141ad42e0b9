package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frituurgros/internal/domain"
	sessionsvc "frituurgros/internal/service/session"
)

const (
	ctxEmail   = "identityEmail"
	ctxAccount = "clientAccount"
)

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// authRequired resolves the bearer token to an identity email.
func (h *handlers) authRequired(c *gin.Context) {
	value := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))
	if value == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	email, err := h.deps.Accounts.EmailForToken(c.Request.Context(), value)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Set(ctxEmail, email)
	c.Next()
}

// adminRequired gates the back-office routes.
func (h *handlers) adminRequired(c *gin.Context) {
	decision := h.deps.Session.Classify(c.Request.Context(), c.GetString(ctxEmail))
	if decision.Role != sessionsvc.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

// activeClientRequired gates the ordering routes and loads the account.
func (h *handlers) activeClientRequired(c *gin.Context) {
	email := c.GetString(ctxEmail)
	decision := h.deps.Session.Classify(c.Request.Context(), email)
	if decision.Role != sessionsvc.RoleClientActive {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "active client account required", "role": decision.Role})
		return
	}
	account, err := h.deps.Accounts.GetByEmail(c.Request.Context(), email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account unavailable"})
		return
	}
	c.Set(ctxAccount, account)
	c.Next()
}

func currentAccount(c *gin.Context) *domain.ClientAccount {
	return c.MustGet(ctxAccount).(*domain.ClientAccount)
}
