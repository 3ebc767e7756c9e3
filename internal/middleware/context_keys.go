package middleware

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
	emailKey  = contextKey("email")
)

// withActor stores the authenticated actor's identity in ctx.
func withActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, actor.StaffID)
	ctx = context.WithValue(ctx, roleKey, actor.Role)
	return context.WithValue(ctx, emailKey, actor.Email)
}

// GetUserIDFromContext retrieves the authenticated staff id from the Gin context.
// It returns the id and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetActorFromContext rebuilds the authenticated actor placed in the request
// context by AuthMiddleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	ctx := c.Request.Context()
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := ctx.Value(roleKey).(domain.SystemRole)
	email, _ := ctx.Value(emailKey).(string)
	return domain.Actor{StaffID: userID, Role: role, Email: email}, true
}
