package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/store"
	"Roomio/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const minPasswordLength = 8

type UserService struct {
	store store.Store
	cache CandidateCache
	cost  int
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	UserType string
}

// UpdateProfileInput carries only the fields the caller wants to change.
type UpdateProfileInput struct {
	FullName    *string
	AvatarURL   *string
	UserType    *string
	Bio         *string
	City        *string
	BudgetCents *int64
	Preferences json.RawMessage
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*ProfileView, error) {
	email := normalizeEmail(in.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperror.Validation("A valid email is required")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least 8 characters")
	}
	fullName := utils.SanitizeText(in.FullName)
	if fullName == "" {
		return nil, apperror.Validation("fullName is required")
	}
	if !models.ValidUserType(in.UserType) {
		return nil, apperror.Validation("Invalid userType")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, internal(err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		UserType:     in.UserType,
		Preferences:  datatypes.JSON("{}"),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, internal(err, "create user")
	}

	logger.Info("User signed up", "user_id", user.ID)
	view := profileViewOf(user)
	return &view, nil
}

// Authenticate checks the credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*ProfileView, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		return nil, internal(err, "get user by email")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	view := profileViewOf(user)
	return &view, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get user")
	}
	view := profileViewOf(user)
	return &view, nil
}

func (s *UserService) GetPublic(ctx context.Context, userID string) (*UserView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get user")
	}
	view := userViewOf(user)
	return &view, nil
}

// Exists lets token holders be rejected once their account is gone.
func (s *UserService) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*ProfileView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get user")
	}

	if in.FullName != nil {
		name := utils.SanitizeText(*in.FullName)
		if name == "" {
			return nil, apperror.Validation("fullName cannot be empty")
		}
		user.FullName = name
	}
	if in.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	typeChanged := false
	if in.UserType != nil {
		if !models.ValidUserType(*in.UserType) {
			return nil, apperror.Validation("Invalid userType")
		}
		typeChanged = user.UserType != *in.UserType
		user.UserType = *in.UserType
	}
	if in.Bio != nil {
		user.Bio = utils.SanitizeText(*in.Bio)
	}
	if in.City != nil {
		user.City = utils.SanitizeText(*in.City)
	}
	if in.BudgetCents != nil {
		if *in.BudgetCents < 0 {
			return nil, apperror.Validation("budgetCents cannot be negative")
		}
		user.BudgetCents = *in.BudgetCents
	}
	if len(in.Preferences) > 0 {
		var obj map[string]interface{}
		if err := json.Unmarshal(in.Preferences, &obj); err != nil {
			return nil, apperror.Validation("preferences must be a JSON object")
		}
		user.Preferences = datatypes.JSON(in.Preferences)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, notFoundOr(err, "User not found", "update user")
	}
	if typeChanged && s.cache != nil {
		if err := s.cache.InvalidateCandidates(ctx, userID); err != nil {
			logger.Warn("Failed to invalidate candidate cache", "user_id", userID, "error", err)
		}
	}

	updated, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get user")
	}
	view := profileViewOf(updated)
	return &view, nil
}
