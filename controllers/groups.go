package controllers

import (
	"net/http"

	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type createInviteRequest struct {
	TTLHours int `json:"ttlHours"`
	MaxUses  int `json:"maxUses"`
}

// @Summary Create a group
// @Description The caller becomes the owner
// @Tags groups
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body createGroupRequest true "Group"
// @Success 201 {object} object{success=bool,group=services.GroupView}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/groups [post]
// @Security ApiKeyAuth
func CreateGroup(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		group, err := groups.CreateGroup(c.Request.Context(), middleware.CurrentUserID(c), req.Name)
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "group": group})
	}
}

// @Summary List my groups
// @Tags groups
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Success 200 {object} object{success=bool,groups=[]services.GroupView}
// @Router /api/groups [get]
// @Security ApiKeyAuth
func ListGroups(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := groups.ListGroups(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "groups": list})
	}
}

// @Summary Get a group with its members
// @Tags groups
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {object} object{success=bool,group=services.GroupView}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId} [get]
// @Security ApiKeyAuth
func GetGroup(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, err := groups.GetGroup(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "group": group})
	}
}

// @Summary Leave a group
// @Description The owner cannot leave their own group
// @Tags groups
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId}/leave [post]
// @Security ApiKeyAuth
func LeaveGroup(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := groups.LeaveGroup(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId")); err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary Create an invite link
// @Description Members only. Defaults to 72 hours and 10 uses
// @Tags invites
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Param body body createInviteRequest false "Invite limits"
// @Success 201 {object} object{success=bool,invite=services.InviteView}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId}/invites [post]
// @Security ApiKeyAuth
func CreateInvite(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createInviteRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
				return
			}
		}

		invite, err := groups.CreateInvite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"), services.InviteInput{
			TTLHours: req.TTLHours,
			MaxUses:  req.MaxUses,
		})
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "invite": invite})
	}
}

// @Summary List active invites
// @Description Invites that are neither revoked nor expired. Members only
// @Tags invites
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {object} object{success=bool,invites=[]services.InviteView}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId}/invites [get]
// @Security ApiKeyAuth
func ListInvites(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		invites, err := groups.ListInvites(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "invites": invites})
	}
}

// @Summary Revoke an invite
// @Description Allowed for the group owner and the invite's creator
// @Tags invites
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Param inviteId path string true "Invite id"
// @Success 200 {object} object{success=bool}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId}/invites/{inviteId} [delete]
// @Security ApiKeyAuth
func RevokeInvite(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := groups.RevokeInvite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"), c.Param("inviteId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary Accept an invite
// @Description Joins the group. Existing members get alreadyMember=true and no use is consumed
// @Tags invites
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param token path string true "Invite token"
// @Success 200 {object} services.AcceptInviteResult
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/invites/{token}/accept [post]
// @Security ApiKeyAuth
func AcceptInvite(groups *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := groups.AcceptInvite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("token"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
