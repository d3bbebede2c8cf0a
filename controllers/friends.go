package controllers

import (
	"net/http"

	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

type friendRequestBody struct {
	ReceiverID string `json:"receiverId"`
}

type respondRequestBody struct {
	Action string `json:"action"`
}

// @Summary List pending friend requests
// @Description Returns the requests the user sent and received that are still pending
// @Tags friends
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Success 200 {object} services.RequestList
// @Failure 401 {object} object{error=string}
// @Router /api/friends/requests [get]
// @Security ApiKeyAuth
func ListFriendRequests(friends *services.FriendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := friends.ListRequests(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body friendRequestBody true "Receiver"
// @Success 201 {object} object{message=string,request=services.RequestView}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/friends/requests [post]
// @Security ApiKeyAuth
func SendFriendRequest(friends *services.FriendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body friendRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			invalidBody(c)
			return
		}

		request, err := friends.SendRequest(c.Request.Context(), middleware.CurrentUserID(c), body.ReceiverID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "request": request})
	}
}

// @Summary Accept or decline a friend request
// @Description Only the receiver of a pending request can respond to it
// @Tags friends
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param requestId path string true "Request id"
// @Param body body respondRequestBody true "accept or decline"
// @Success 200 {object} services.RespondResult
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/friends/requests/{requestId} [patch]
// @Security ApiKeyAuth
func RespondFriendRequest(friends *services.FriendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body respondRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			invalidBody(c)
			return
		}

		result, err := friends.Respond(c.Request.Context(), middleware.CurrentUserID(c), c.Param("requestId"), body.Action)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// @Summary Cancel a sent friend request
// @Tags friends
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param requestId path string true "Request id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/friends/requests/{requestId} [delete]
// @Security ApiKeyAuth
func CancelFriendRequest(friends *services.FriendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := friends.Cancel(c.Request.Context(), middleware.CurrentUserID(c), c.Param("requestId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled"})
	}
}

// @Summary List friends
// @Tags friends
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Success 200 {object} object{friends=[]services.FriendView}
// @Router /api/friends [get]
// @Security ApiKeyAuth
func ListFriends(friends *services.FriendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := friends.ListFriends(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"friends": list})
	}
}
