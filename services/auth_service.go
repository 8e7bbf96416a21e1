package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/justfortestingnothibghere/DataForge-Cloud/config"
	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SignupInput struct {
	Name         string
	Username     string
	Email        string
	Password     string
	ProfilePhoto string
}

type LoginInput struct {
	Username string
	Password string
}

// CredentialsOutput is returned by both signup and login: a bearer token
// for the interactive path and the API key for the machine path.
type CredentialsOutput struct {
	AccessToken string `json:"access_token"`
	APIKey      string `json:"api_key"`
	TokenType   string `json:"token_type"`
}

type ProfileOutput struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	APIKey       string `json:"api_key"`
	IsPremium    bool   `json:"is_premium"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (CredentialsOutput, error)
	Login(ctx context.Context, in LoginInput) (CredentialsOutput, error)
	GetProfile(ctx context.Context, userID uint) (ProfileOutput, error)
	Upgrade(ctx context.Context, userID uint) error
}

type authService struct {
	txManager TxManager
	users     repositories.UserRepository
	tokens    *utils.TokenManager
}

func NewAuthService(txManager TxManager, users repositories.UserRepository, tokens *utils.TokenManager) AuthService {
	return &authService{txManager: txManager, users: users, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (CredentialsOutput, error) {
	count, err := s.users.CountByUsername(ctx, in.Username)
	if err != nil {
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to check username", err)
	}
	if count > 0 {
		return CredentialsOutput{}, newAppError(http.StatusConflict, "username taken", nil)
	}

	count, err = s.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to check email", err)
	}
	if count > 0 {
		return CredentialsOutput{}, newAppError(http.StatusConflict, "email taken", nil)
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	user := models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		APIKey:       uuid.New().String(),
		ProfilePhoto: in.ProfilePhoto,
		StorageLimit: config.AppConfig.Storage.DefaultStorageLimit,
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.users.Create(ctx, tx, &user)
	})
	if err != nil {
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to create user", err)
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to generate token", err)
	}

	return CredentialsOutput{AccessToken: token, APIKey: user.APIKey, TokenType: "bearer"}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (CredentialsOutput, error) {
	user, err := s.users.GetByUsername(ctx, nil, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CredentialsOutput{}, newAppError(http.StatusUnauthorized, "invalid credentials", nil)
		}
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	if !utils.CheckPassword(in.Password, user.PasswordHash) {
		return CredentialsOutput{}, newAppError(http.StatusUnauthorized, "invalid credentials", nil)
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return CredentialsOutput{}, newAppError(http.StatusInternalServerError, "failed to generate token", err)
	}

	return CredentialsOutput{AccessToken: token, APIKey: user.APIKey, TokenType: "bearer"}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (ProfileOutput, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileOutput{}, newAppError(http.StatusNotFound, "user not found", nil)
		}
		return ProfileOutput{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	return ProfileOutput{
		ID:           user.ID,
		Name:         user.Name,
		Username:     user.Username,
		Email:        user.Email,
		APIKey:       user.APIKey,
		IsPremium:    user.IsPremium,
		ProfilePhoto: user.ProfilePhoto,
	}, nil
}

// Upgrade flips the premium flag and lifts the storage ceiling to the
// configured sentinel. Premium users are exempt from quota checks.
func (s *authService) Upgrade(ctx context.Context, userID uint) error {
	if _, err := s.users.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "user not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	err := s.users.UpdateByID(ctx, nil, userID, map[string]interface{}{
		"is_premium":    true,
		"storage_limit": config.AppConfig.Storage.PremiumStorageLimit,
		"updated_at":    time.Now(),
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to upgrade user", err)
	}
	return nil
}
