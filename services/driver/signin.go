package driver

import (
	"context"
	"fmt"
	"strings"

	"agritrust/models"
	"agritrust/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies a driver's credentials by email. A driver whose
// account has not yet been verified is rejected and receives no token.
func (s *DefaultDriverService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, AuthError{Message: "email and password are required"}
	}

	record, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch driver", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if record == nil {
		return nil, AuthError{Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, AuthError{Message: "invalid credentials"}
	}

	if !record.Verified {
		return nil, UnverifiedError{}
	}

	token, err := utils.GenerateToken(record.ID, models.RoleDriver)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:           record.ID,
		Token:        token,
		Email:        record.Email,
		Firstname:    record.Firstname,
		Lastname:     record.Lastname,
		ProfileImage: record.ProfileImage,
		Verified:     record.Verified,
	}, nil
}
