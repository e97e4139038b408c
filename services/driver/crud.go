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

// GetByID retrieves a driver's public view.
func (s *DefaultDriverService) GetByID(id string) (*models.DeliveryDriver, error) {
	record, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetByID: failed to fetch driver", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch driver, please try again")
	}
	if record == nil {
		return nil, NotFoundError{Message: "driver not found"}
	}
	return record, nil
}

// CheckEmail reports whether the email is still available.
func (s *DefaultDriverService) CheckEmail(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return false, ValidationError{Field: "email", Message: "invalid email address"}
	}
	taken, err := s.Repo.IsEmailTaken(email)
	if err != nil {
		utils.GetLogger().Error("CheckEmail: availability check failed", zap.Error(err))
		return false, fmt.Errorf("failed to check email, please try again")
	}
	return !taken, nil
}

// UpdateProfile applies a partial profile update.
func (s *DefaultDriverService) UpdateProfile(id string, req models.DriverUpdateRequest) (*models.DeliveryDriver, error) {
	fields := bson.M{}
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			fields[key] = strings.TrimSpace(value)
		}
	}
	set("firstname", req.Firstname)
	set("lastname", req.Lastname)
	set("phonenumber", req.PhoneNumber)
	set("vehiclemake", req.VehicleMake)
	set("vehiclemodel", req.VehicleModel)
	set("vehicleplate", req.VehiclePlate)
	set("vehiclecolor", req.VehicleColor)
	set("insuranceprovider", req.InsuranceProvider)
	set("insurancepolicynumber", req.InsurancePolicyNumber)
	if req.VehicleYear != "" {
		if err := checkVehicleYear(req.VehicleYear); err != nil {
			return nil, err
		}
		fields["vehicleyear"] = strings.TrimSpace(req.VehicleYear)
	}
	if len(fields) == 0 {
		return nil, ValidationError{Field: "update", Message: "no fields to update"}
	}
	fields["updated_at"] = time.Now()

	if err := s.Repo.UpdateWithDocument(id, bson.M{"$set": fields}); err != nil {
		utils.GetLogger().Error("UpdateProfile: failed to update driver", zap.Error(err))
		return nil, NotFoundError{Message: "driver not found"}
	}
	return s.GetByID(id)
}

// UpdatePassword verifies the current password and replaces it.
func (s *DefaultDriverService) UpdatePassword(id, currentPassword, newPassword string) error {
	record, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to fetch driver", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}
	if record == nil {
		return NotFoundError{Message: "driver not found"}
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
		utils.GetLogger().Error("UpdatePassword: failed to update driver", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}
	return nil
}

// Delete removes a driver account.
func (s *DefaultDriverService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Delete: failed to delete driver", zap.Error(err))
		return NotFoundError{Message: "driver not found"}
	}
	return nil
}
