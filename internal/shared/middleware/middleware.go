package middleware

import (
	"errors"
	"net/http"
	"strings"

	"benchlab/internal/shared/config"
	"benchlab/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Role and Status mirror the enums in internal/users. They are declared
// locally so the access gate stays a leaf package: users imports middleware
// for the session helpers, so importing users here would create a cycle.
type Role string

type Status string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"

	StatusApproved Status = "APPROVED"
)

// Session is the single typed identity shape produced at the access-gate
// boundary. Downstream code consumes only this, never raw claims.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   Role
	Status Status
}

const sessionKey = "session"

var ErrNoSession = errors.New("no session in context")

// SessionFromContext returns the session placed by JWTAuth.
func SessionFromContext(c *gin.Context) (Session, error) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return Session{}, ErrNoSession
	}
	session, ok := value.(Session)
	if !ok {
		return Session{}, ErrNoSession
	}
	return session, nil
}

// JWTAuth creates a JWT authentication middleware
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}

		if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
			c.Abort()
			return
		}

		session, err := sessionFromClaims(claims)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// sessionFromClaims converts raw JWT claims into the typed session once.
func sessionFromClaims(claims jwt.MapClaims) (Session, error) {
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Session{}, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	status, _ := claims["status"].(string)

	if role != string(RoleUser) && role != string(RoleAdmin) {
		return Session{}, errors.New("unknown role claim")
	}

	return Session{
		UserID: userID,
		Email:  email,
		Role:   Role(role),
		Status: Status(status),
	}, nil
}

// RequireAdmin restricts the route to administrators.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := SessionFromContext(c)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user session not found", nil, nil)
			c.Abort()
			return
		}

		if session.Role != RoleAdmin {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireApproved blocks callers whose account has not been approved by an
// administrator. Scheduling endpoints sit behind this gate, so the
// availability engine is never invoked for pending or disabled users.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := SessionFromContext(c)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user session not found", nil, nil)
			c.Abort()
			return
		}

		if session.Status != StatusApproved {
			response.RespondJSON(c, "error", http.StatusForbidden, "Account is awaiting administrator approval", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
