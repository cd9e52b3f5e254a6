package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/requestdata"
)

// RequireService guards the automation endpoints that operate across the
// whole user population. Callers authenticate with the shared service
// token, compared in constant time.
func RequireService(log *logger.Logger) gin.HandlerFunc {
	mwLog := log.With("middleware", "RequireService")
	expected := strings.TrimSpace(os.Getenv("AUTOMATION_SERVICE_TOKEN"))

	return func(c *gin.Context) {
		if expected == "" {
			mwLog.Error("AUTOMATION_SERVICE_TOKEN not configured; rejecting request")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service auth not configured"})
			return
		}

		token, ok := bearerToken(c)
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireUser validates the caller's JWT and stashes their identity in
// the request context for handlers downstream.
func RequireUser(log *logger.Logger) gin.HandlerFunc {
	mwLog := log.With("middleware", "RequireUser")
	secret := []byte(os.Getenv("JWT_SECRET_KEY"))

	return func(c *gin.Context) {
		if len(secret) == 0 {
			mwLog.Error("JWT_SECRET_KEY not configured; rejecting request")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "user auth not configured"})
			return
		}

		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			mwLog.Warn("Token subject is not a uuid", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
