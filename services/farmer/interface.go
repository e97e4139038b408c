package farmer

import (
	"context"

	farmerRepo "agritrust/database/repository/farmer"
	"agritrust/models"
	"agritrust/services/storage"
)

// FarmerService defines business logic for farmer accounts.
type FarmerService interface {
	// Register validates the assembled wizard payload, resolves images,
	// persists the account and returns an identity token.
	Register(ctx context.Context, req models.FarmerRegistrationRequest) (*AuthResponse, error)
	// Authenticate verifies credentials (username or email) and returns a token.
	Authenticate(ctx context.Context, handle, password string) (*AuthResponse, error)
	// CheckUsername reports whether the username is still available.
	CheckUsername(username string) (bool, error)

	GetByID(id string) (*models.Farmer, error)
	UpdateProfile(id string, req models.FarmerUpdateRequest) (*models.Farmer, error)
	UpdatePassword(id, currentPassword, newPassword string) error
	Delete(id string) error

	// Password reset: ForgotPassword issues a 6-digit emailed code,
	// VerifyResetCode checks it, ResetPassword consumes it.
	ForgotPassword(email string) error
	VerifyResetCode(email, code string) error
	ResetPassword(email, code, newPassword string) error
}

// ResetEmailQueue enqueues reset-code emails for background delivery.
type ResetEmailQueue interface {
	EnqueueResetEmail(email, name, code string) error
}

// DefaultFarmerService is the production implementation.
type DefaultFarmerService struct {
	Repo   farmerRepo.FarmerRepository
	Images *storage.ImageResolver
	Queue  ResetEmailQueue
}

// AuthResponse contains the farmer's public identity and token.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	ProfileImage string `json:"profileimage,omitempty"`
	Verified     bool   `json:"verified"`
}
