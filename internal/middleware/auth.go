package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/response"
)

// Context keys populated by Auth and OptionalAuth
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

var (
	errMissingHeader = errors.New("Authorization header is required")
	errHeaderFormat  = errors.New("Invalid authorization header format")
	errInvalidToken  = errors.New("Invalid or expired token")
	errMissingUserID = errors.New("User ID not found in token")
	errUserIDFormat  = errors.New("Invalid user ID format")
)

// Auth returns a middleware that requires a valid HMAC-signed bearer token
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := authenticate(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through. A request that does send a
// token still has it validated, so a bad token is rejected rather than ignored.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		actor, err := authenticate(header, jwtSecret)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

func authenticate(header, jwtSecret string) (domain.Actor, error) {
	if header == "" {
		return domain.Actor{}, errMissingHeader
	}

	// "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return domain.Actor{}, errHeaderFormat
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, errInvalidToken
	}

	userIDStr := firstStringClaim(claims, "user_id", "sub", "uid")
	if userIDStr == "" {
		return domain.Actor{}, errMissingUserID
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil || userID == uuid.Nil {
		return domain.Actor{}, errUserIDFormat
	}

	role := domain.RoleMember
	if r, _ := claims["role"].(string); domain.Role(r) == domain.RoleAdmin {
		role = domain.RoleAdmin
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}

// firstStringClaim supports the claim names issued by the different identity providers
func firstStringClaim(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func setActor(c *gin.Context, actor domain.Actor) {
	c.Set(ContextUserID, actor.UserID)
	c.Set(ContextRole, actor.Role)
}

func abortUnauthorized(c *gin.Context, err error) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, err.Error())
	c.Abort()
}
