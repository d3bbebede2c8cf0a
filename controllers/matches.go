package controllers

import (
	"net/http"
	"strconv"

	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

type swipeRequest struct {
	TargetID string `json:"targetId"`
	Liked    *bool  `json:"liked" binding:"required"`
}

// @Summary Swipe on a user
// @Description Records a like or pass. A like that completes a mutual pair returns the shared chat
// @Tags matching
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body swipeRequest true "Swipe"
// @Success 200 {object} services.SwipeResult
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/matches/swipe [post]
// @Security ApiKeyAuth
func Swipe(matches *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req swipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "liked is required"})
			return
		}

		result, err := matches.Swipe(c.Request.Context(), middleware.CurrentUserID(c), req.TargetID, *req.Liked)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// @Summary Swipe candidates
// @Description Users with the same userType the caller has not swiped yet
// @Tags matching
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param limit query int false "Maximum candidates (default 20)"
// @Success 200 {object} object{candidates=[]services.UserView}
// @Router /api/matches/candidates [get]
// @Security ApiKeyAuth
func ListCandidates(matches *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		candidates, err := matches.Candidates(c.Request.Context(), middleware.CurrentUserID(c), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"candidates": candidates})
	}
}

// @Summary List mutual matches
// @Tags matching
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Success 200 {object} object{matches=[]services.MatchView}
// @Router /api/matches [get]
// @Security ApiKeyAuth
func ListMatches(matches *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := matches.Matches(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": list})
	}
}
