package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agritrust/config"
	driverRepo "agritrust/database/repository/driver"
	"agritrust/models"
	"agritrust/services/storage"
	"agritrust/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const uploadFolder = "agritrust/drivers"

// Register re-validates the wizard payload, resolves all ten image fields
// concurrently (all-or-nothing), hashes the credential, seals card fields
// and persists the record.
func (s *DefaultDriverService) Register(ctx context.Context, req models.DriverRegistrationRequest) (*AuthResponse, error) {
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.Repo.IsEmailTaken(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: email check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if taken {
		return nil, ConflictError{Message: "a delivery driver with this email already exists"}
	}

	images, err := s.Images.ResolveAll(ctx, uploadFolder, req.ImageFields())
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	record := models.DeliveryDriver{
		ID:                    uuid.New().String(),
		Firstname:             strings.TrimSpace(req.Firstname),
		Lastname:              strings.TrimSpace(req.Lastname),
		Email:                 req.Email,
		PhoneNumber:           strings.TrimSpace(req.PhoneNumber),
		PasswordHash:          string(hashed),
		VehicleMake:           strings.TrimSpace(req.VehicleMake),
		VehicleModel:          strings.TrimSpace(req.VehicleModel),
		VehicleYear:           strings.TrimSpace(req.VehicleYear),
		VehiclePlate:          strings.TrimSpace(req.VehiclePlate),
		VehicleColor:          strings.TrimSpace(req.VehicleColor),
		LicenseNumber:         strings.TrimSpace(req.LicenseNumber),
		LicenseExpiry:         strings.TrimSpace(req.LicenseExpiry),
		InsuranceProvider:     strings.TrimSpace(req.InsuranceProvider),
		InsurancePolicyNumber: strings.TrimSpace(req.InsurancePolicyNumber),
		ProfileImage:          images["profileimage"],
		LicenseFrontImage:     images["licensefrontimage"],
		LicenseBackImage:      images["licensebackimage"],
		InsuranceImage:        images["insuranceimage"],
		RegistrationImage:     images["registrationimage"],
		VehicleFrontImage:     images["vehiclefrontimage"],
		VehicleBackImage:      images["vehiclebackimage"],
		VehicleLeftImage:      images["vehicleleftimage"],
		VehicleRightImage:     images["vehiclerightimage"],
		VehicleInteriorImage:  images["vehicleinteriorimage"],
		DeviceCompatible:      req.DeviceCompatible,
		Verified:              false,
		RegistrationDate:      req.RegistrationDate,
		RegistrationSource:    req.RegistrationSource,
		Status:                req.Status,
	}
	if record.RegistrationDate == "" {
		record.RegistrationDate = time.Now().Format(time.RFC3339)
	}
	if record.Status == "" {
		record.Status = "pending"
	}

	if err := sealCardFields(&record, req); err != nil {
		utils.GetLogger().Error("Register: failed to seal card fields", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := s.Repo.Create(&record); err != nil {
		if errors.Is(err, driverRepo.ErrDuplicateHandle) {
			return nil, ConflictError{Message: err.Error()}
		}
		utils.GetLogger().Error("Register: failed to create driver", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(record.ID, models.RoleDriver)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
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

// validateRegistration re-runs the wizard's required-field checks server-side.
func validateRegistration(req *models.DriverRegistrationRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"firstname", req.Firstname},
		{"lastname", req.Lastname},
		{"email", req.Email},
		{"phonenumber", req.PhoneNumber},
		{"password", req.Password},
		{"vehiclemake", req.VehicleMake},
		{"vehiclemodel", req.VehicleModel},
		{"vehicleyear", req.VehicleYear},
		{"vehicleplate", req.VehiclePlate},
		{"vehiclecolor", req.VehicleColor},
		{"licensenumber", req.LicenseNumber},
		{"licenseexpiry", req.LicenseExpiry},
		{"insuranceprovider", req.InsuranceProvider},
		{"insurancepolicynumber", req.InsurancePolicyNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return ValidationError{Field: f.field}
		}
	}
	if !strings.Contains(req.Email, "@") {
		return ValidationError{Field: "email", Message: "invalid email address"}
	}
	if len(req.Password) < 6 {
		return ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if err := checkVehicleYear(req.VehicleYear); err != nil {
		return err
	}
	if !req.DeviceCompatible {
		return ValidationError{Field: "devicecompatible", Message: "device compatibility must be confirmed"}
	}
	return nil
}

// checkVehicleYear requires a 4-digit year within [1900, current year + 1].
func checkVehicleYear(year string) error {
	year = strings.TrimSpace(year)
	if len(year) != 4 {
		return ValidationError{Field: "vehicleyear", Message: "vehicle year must be 4 digits"}
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return ValidationError{Field: "vehicleyear", Message: "vehicle year must be 4 digits"}
	}
	if n < 1900 || n > time.Now().Year()+1 {
		return ValidationError{Field: "vehicleyear", Message: "vehicle year is out of range"}
	}
	return nil
}

func sealCardFields(record *models.DeliveryDriver, req models.DriverRegistrationRequest) error {
	key := config.AppConfig.CardSealKey
	var err error
	if record.CardNumber, err = storage.SealCardField(req.CardNumber, key); err != nil {
		return err
	}
	if record.CardExpiry, err = storage.SealCardField(req.CardExpiry, key); err != nil {
		return err
	}
	if record.CardCVC, err = storage.SealCardField(req.CardCVC, key); err != nil {
		return err
	}
	if record.CardEmail, err = storage.SealCardField(strings.ToLower(req.CardEmail), key); err != nil {
		return err
	}
	return nil
}
