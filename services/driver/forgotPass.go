package driver

import (
	"fmt"
	"strings"
	"time"

	"agritrust/models"
	"agritrust/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword issues a 6-digit reset code with a 10-minute expiry, stores
// it on the record and queues delivery by email.
func (s *DefaultDriverService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	record, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to fetch driver", zap.Error(err))
		return fmt.Errorf("failed to start password reset, please try again")
	}
	if record == nil {
		return NotFoundError{Message: "no driver account with this email"}
	}

	allowed, err := utils.MarkResetIssued(models.RoleDriver, email)
	if err != nil {
		utils.GetLogger().Error("ForgotPassword: throttle check failed", zap.Error(err))
		return fmt.Errorf("failed to start password reset, please try again")
	}
	if !allowed {
		return ValidationError{Field: "email", Message: "a reset code was sent recently, please wait before retrying"}
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to generate code", zap.Error(err))
		return fmt.Errorf("failed to start password reset, please try again")
	}

	update := bson.M{"$set": bson.M{
		"reset_code":       code,
		"reset_expires_at": time.Now().Add(utils.ResetCodeTTL),
		"updated_at":       time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(record.ID, update); err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to store reset code", zap.Error(err))
		return fmt.Errorf("failed to start password reset, please try again")
	}

	if err := s.Queue.EnqueueResetEmail(record.Email, record.Firstname, code); err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to enqueue reset email", zap.Error(err))
		return fmt.Errorf("failed to send reset code, please try again")
	}
	return nil
}

// VerifyResetCode checks a previously issued reset code without consuming it.
func (s *DefaultDriverService) VerifyResetCode(email, code string) error {
	record, err := s.fetchForReset(email)
	if err != nil {
		return err
	}
	return checkResetCode(record, code)
}

// ResetPassword verifies the code, updates the credential hash and consumes
// the code in one update.
func (s *DefaultDriverService) ResetPassword(email, code, newPassword string) error {
	record, err := s.fetchForReset(email)
	if err != nil {
		return err
	}
	if err := checkResetCode(record, code); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("ResetPassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to reset password, please try again")
	}

	update := bson.M{
		"$set":   bson.M{"password_hash": string(hashed), "updated_at": time.Now()},
		"$unset": bson.M{"reset_code": "", "reset_expires_at": ""},
	}
	if err := s.Repo.UpdateWithDocument(record.ID, update); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to update password", zap.Error(err))
		return fmt.Errorf("failed to reset password, please try again")
	}
	return nil
}

func (s *DefaultDriverService) fetchForReset(email string) (*models.DeliveryDriver, error) {
	record, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("fetchForReset: failed to fetch driver", zap.Error(err))
		return nil, fmt.Errorf("failed to reset password, please try again")
	}
	if record == nil {
		return nil, NotFoundError{Message: "no driver account with this email"}
	}
	return record, nil
}

func checkResetCode(record *models.DeliveryDriver, code string) error {
	if record.ResetCode == "" || record.ResetCode != strings.TrimSpace(code) {
		return AuthError{Message: "invalid reset code"}
	}
	if time.Now().After(record.ResetExpiresAt) {
		return AuthError{Message: "reset code has expired"}
	}
	return nil
}
