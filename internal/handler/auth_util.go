package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/middleware"
	"civic-forum-api/internal/response"
)

// requireActor extracts the authenticated caller set by middleware.Auth.
// It writes a 401 and returns false when there is none.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor := actorFromContext(c)
	if actor.UserID == uuid.Nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return domain.Actor{}, false
	}
	return actor, true
}

// viewerID returns the caller's id on optionally authenticated routes, uuid.Nil for anonymous readers
func viewerID(c *gin.Context) uuid.UUID {
	return actorFromContext(c).UserID
}

func actorFromContext(c *gin.Context) domain.Actor {
	var actor domain.Actor

	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			actor.UserID = id
		}
	}

	actor.Role = domain.RoleMember
	if v, ok := c.Get(middleware.ContextRole); ok {
		if role, ok := v.(domain.Role); ok {
			actor.Role = role
		}
	}

	return actor
}

// parseUUIDParam reads a UUID path parameter, writing a 400 when it is malformed
func parseUUIDParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeValidation, message, name)
		return uuid.Nil, false
	}
	return id, true
}
