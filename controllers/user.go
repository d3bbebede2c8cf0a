package controllers

import (
	"encoding/json"
	"net/http"

	"Roomio/config"
	"Roomio/middleware"
	"Roomio/services"
	"Roomio/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	UserType string `json:"userType" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	FullName    *string         `json:"fullName"`
	AvatarURL   *string         `json:"avatarUrl"`
	UserType    *string         `json:"userType"`
	Bio         *string         `json:"bio"`
	City        *string         `json:"city"`
	BudgetCents *int64          `json:"budgetCents"`
	Preferences json.RawMessage `json:"preferences"`
}

// @Summary Register a new user
// @Description Creates an account. The email must not be registered yet
// @Tags auth
// @Accept json
// @Produce json
// @Param body body signUpRequest true "Account data"
// @Success 201 {object} services.ProfileView
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/auth/signup [post]
func SignUp(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		profile, err := users.SignUp(c.Request.Context(), services.SignUpInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			UserType: req.UserType,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, profile)
	}
}

// @Summary Log in
// @Description Checks the credentials, returns a bearer token and stores the user in the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} object{token=string,user=services.ProfileView}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/auth/login [post]
func Login(users *services.UserService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		profile, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := utils.GenerateJWT(profile.ID, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			respondError(c, err)
			return
		}

		session := sessions.Default(c)
		session.Set(middleware.UserIDKey, profile.ID)
		if err := session.Save(); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
	}
}

// @Summary Log out
// @Description Clears the session cookie. Bearer tokens stay valid until they expire
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /api/auth/logout [post]
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.UserIDKey)
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Get my profile
// @Tags users
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Success 200 {object} services.ProfileView
// @Failure 401 {object} object{error=string}
// @Router /api/users/me [get]
// @Security ApiKeyAuth
func GetMe(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := users.Me(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// @Summary Update my profile
// @Description Only the fields present in the body are changed
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body updateProfileRequest true "Fields to change"
// @Success 200 {object} services.ProfileView
// @Failure 400 {object} object{error=string}
// @Router /api/users/me [patch]
// @Security ApiKeyAuth
func UpdateMe(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c)
			return
		}

		profile, err := users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), services.UpdateProfileInput{
			FullName:    req.FullName,
			AvatarURL:   req.AvatarURL,
			UserType:    req.UserType,
			Bio:         req.Bio,
			City:        req.City,
			BudgetCents: req.BudgetCents,
			Preferences: req.Preferences,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// @Summary Get a public profile
// @Tags users
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param id path string true "User id"
// @Success 200 {object} services.UserView
// @Failure 404 {object} object{error=string}
// @Router /api/users/{id} [get]
// @Security ApiKeyAuth
func GetUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetPublic(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
