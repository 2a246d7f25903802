package v1

import (
	"go-staffing-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// actorFrom rebuilds the acting user from the context keys set by the auth
// middleware. Missing keys yield an actor with no roles, which downstream
// capability checks reject.
func actorFrom(c *gin.Context) domain.Actor {
	actor := domain.Actor{ID: c.GetString(string(domain.KeyActorID))}
	if raw, ok := c.Get(string(domain.KeyActorRoles)); ok {
		if roles, ok := raw.([]domain.Role); ok {
			actor.Roles = roles
		}
	}
	return actor
}
