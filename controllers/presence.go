package controllers

import (
	"context"
	"net/http"

	redis_models "Roomio/models/redis"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

type PresenceReader interface {
	GetPresence(ctx context.Context, userID string) (*redis_models.UserPresence, error)
}

// @Summary Is a user online
// @Description Reports offline for everybody when Redis is not configured
// @Tags users
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param id path string true "User id"
// @Success 200 {object} object{userId=string,status=string,lastSeen=integer}
// @Failure 404 {object} object{error=string}
// @Router /api/users/{id}/presence [get]
// @Security ApiKeyAuth
func GetPresence(users *services.UserService, presence PresenceReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		ok, err := users.Exists(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		status := redis_models.StatusOffline
		var lastSeen int64
		if presence != nil {
			p, err := presence.GetPresence(c.Request.Context(), userID)
			if err != nil {
				respondError(c, err)
				return
			}
			status, lastSeen = p.Status, p.LastSeen
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID, "status": status, "lastSeen": lastSeen})
	}
}
