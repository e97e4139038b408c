package buyer

import (
	"context"
	"fmt"
	"strings"

	"agritrust/models"
	"agritrust/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies a buyer's credentials. The handle may be the
// username or the email address.
func (s *DefaultBuyerService) Authenticate(ctx context.Context, handle, password string) (*AuthResponse, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || password == "" {
		return nil, AuthError{Message: "handle and password are required"}
	}

	var (
		record *models.Buyer
		err    error
	)
	if strings.Contains(handle, "@") {
		record, err = s.Repo.GetByEmail(strings.ToLower(handle))
	} else {
		record, err = s.Repo.GetByUsername(handle)
	}
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch buyer", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if record == nil {
		return nil, AuthError{Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, AuthError{Message: "invalid credentials"}
	}

	token, err := utils.GenerateToken(record.ID, models.RoleBuyer)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:        record.ID,
		Token:     token,
		Username:  record.Username,
		Email:     record.Email,
		Firstname: record.Firstname,
		Lastname:  record.Lastname,
		Verified:  record.Verified,
	}, nil
}
