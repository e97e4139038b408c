package buyer

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

// GetByID retrieves a buyer's public view.
func (s *DefaultBuyerService) GetByID(id string) (*models.Buyer, error) {
	record, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetByID: failed to fetch buyer", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch buyer, please try again")
	}
	if record == nil {
		return nil, NotFoundError{Message: "buyer not found"}
	}
	return record, nil
}

// CheckUsername reports whether the username is still available.
func (s *DefaultBuyerService) CheckUsername(username string) (bool, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return false, ValidationError{Field: "username", Message: "username must be at least 3 characters"}
	}
	taken, err := s.Repo.IsUsernameTaken(username)
	if err != nil {
		utils.GetLogger().Error("CheckUsername: availability check failed", zap.Error(err))
		return false, fmt.Errorf("failed to check username, please try again")
	}
	return !taken, nil
}

// UpdateProfile applies a partial profile update.
func (s *DefaultBuyerService) UpdateProfile(id string, req models.BuyerUpdateRequest) (*models.Buyer, error) {
	fields := bson.M{}
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			fields[key] = strings.TrimSpace(value)
		}
	}
	set("firstname", req.Firstname)
	set("lastname", req.Lastname)
	set("phonenumber", req.PhoneNumber)
	set("pickupaddress", req.PickupAddress)
	if len(fields) == 0 {
		return nil, ValidationError{Field: "update", Message: "no fields to update"}
	}
	fields["updated_at"] = time.Now()

	if err := s.Repo.UpdateWithDocument(id, bson.M{"$set": fields}); err != nil {
		utils.GetLogger().Error("UpdateProfile: failed to update buyer", zap.Error(err))
		return nil, NotFoundError{Message: "buyer not found"}
	}
	return s.GetByID(id)
}

// UpdatePassword verifies the current password and replaces it.
func (s *DefaultBuyerService) UpdatePassword(id, currentPassword, newPassword string) error {
	record, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to fetch buyer", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}
	if record == nil {
		return NotFoundError{Message: "buyer not found"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(currentPassword)); err != nil {
		return AuthError{Message: "current password is incorrect"}
	}
	if len(newPassword) < 6 {
		return ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}

	update := bson.M{"$set": bson.M{"password_hash": string(hashed), "updated_at": time.Now()}}
	if err := s.Repo.UpdateWithDocument(id, update); err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to update buyer", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}
	return nil
}

// Delete removes a buyer account.
func (s *DefaultBuyerService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Delete: failed to delete buyer", zap.Error(err))
		return NotFoundError{Message: "buyer not found"}
	}
	return nil
}
