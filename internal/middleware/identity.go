package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rides/internal/domain"
)

// Header names set by the auth gateway after it validates the bearer token.
// This service never sees credentials, only the resolved identity.
const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"

	actorContextKey = "actor"
)

// IdentityMiddleware extracts the acting identity from gateway headers and
// rejects requests that arrive without one.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := domain.Actor{
			ID:   c.GetHeader(actorIDHeader),
			Role: domain.ActorRole(c.GetHeader(actorRoleHeader)),
		}

		if actor.ID == "" || !actor.Role.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid identity"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFrom returns the acting identity stored by IdentityMiddleware.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
