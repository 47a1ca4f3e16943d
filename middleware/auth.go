package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"bdl-cms/config"
	"bdl-cms/helper"
	"bdl-cms/models"
)

const sessionKey = "session"

var HTTPHelper = helper.NewHTTPHelper()

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// parseToken verifies an HS256 token and builds the session it carries.
func parseToken(tokenString string) (models.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if !token.Valid {
		return models.Session{}, jwt.ErrSignatureInvalid
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Session{}, err
	}
	return models.NewSession(claims.UserID, claims.Username, role), nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	return tokenString, authHeader != "" && tokenString != authHeader
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		session, err := parseToken(tokenString)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is sent and lets
// anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if session, err := parseToken(tokenString); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the caller's session, or an anonymous one.
func CurrentSession(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}

func requireSession(allowed func(models.Session) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if !session.Authenticated() {
			HTTPHelper.SendUnauthorizedError(c, "Authentication required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		if !allowed(session) {
			HTTPHelper.SendForbiddenError(c, message, HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return requireSession(func(s models.Session) bool { return s.IsAdmin }, "Admin role required")
}

func RequirePublisher() gin.HandlerFunc {
	return requireSession(func(s models.Session) bool { return s.CanPublish }, "Bureau role required")
}

func RequireVoter() gin.HandlerFunc {
	return requireSession(func(s models.Session) bool { return s.CanVote }, "Council membership required")
}
