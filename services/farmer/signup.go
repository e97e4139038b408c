package farmer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agritrust/config"
	farmerRepo "agritrust/database/repository/farmer"
	"agritrust/models"
	"agritrust/services/storage"
	"agritrust/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const uploadFolder = "agritrust/farmers"

// Register re-validates the wizard payload, checks handle availability,
// resolves both image fields, hashes the credential, seals card fields and
// persists the record. A token is minted only after a successful insert.
func (s *DefaultFarmerService) Register(ctx context.Context, req models.FarmerRegistrationRequest) (*AuthResponse, error) {
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	taken, err := s.Repo.IsUsernameTaken(req.Username)
	if err != nil {
		utils.GetLogger().Error("Register: username check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if taken {
		return nil, ConflictError{Message: "a farmer with this username already exists"}
	}
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: email check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ConflictError{Message: "a farmer with this email already exists"}
	}

	images, err := s.Images.ResolveAll(ctx, uploadFolder, map[string]string{
		"profileimage": req.ProfileImage,
		"farmimage":    req.FarmImage,
	})
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	record := models.Farmer{
		ID:                 uuid.New().String(),
		Firstname:          strings.TrimSpace(req.Firstname),
		Lastname:           strings.TrimSpace(req.Lastname),
		Email:              req.Email,
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		Username:           req.Username,
		PasswordHash:       string(hashed),
		FarmName:           strings.TrimSpace(req.FarmName),
		FarmAddress:        strings.TrimSpace(req.FarmAddress),
		FarmDescription:    strings.TrimSpace(req.FarmDescription),
		ProduceTypes:       strings.TrimSpace(req.ProduceTypes),
		ProfileImage:       images["profileimage"],
		FarmImage:          images["farmimage"],
		Verified:           false,
		RegistrationDate:   req.RegistrationDate,
		RegistrationSource: req.RegistrationSource,
		Status:             req.Status,
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
		if errors.Is(err, farmerRepo.ErrDuplicateHandle) {
			return nil, ConflictError{Message: err.Error()}
		}
		utils.GetLogger().Error("Register: failed to create farmer", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(record.ID, models.RoleFarmer)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:           record.ID,
		Token:        token,
		Username:     record.Username,
		Email:        record.Email,
		Firstname:    record.Firstname,
		Lastname:     record.Lastname,
		ProfileImage: record.ProfileImage,
		Verified:     record.Verified,
	}, nil
}

// validateRegistration re-runs the wizard's required-field checks. The
// client's validation is never trusted as the sole gate.
func validateRegistration(req *models.FarmerRegistrationRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"firstname", req.Firstname},
		{"lastname", req.Lastname},
		{"email", req.Email},
		{"phonenumber", req.PhoneNumber},
		{"username", req.Username},
		{"password", req.Password},
		{"farmname", req.FarmName},
		{"farmaddress", req.FarmAddress},
		{"farmdescription", req.FarmDescription},
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
	if len(strings.TrimSpace(req.Username)) < 3 {
		return ValidationError{Field: "username", Message: "username must be at least 3 characters"}
	}
	return nil
}

func sealCardFields(record *models.Farmer, req models.FarmerRegistrationRequest) error {
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
