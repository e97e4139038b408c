package driver

import (
	"context"

	driverRepo "agritrust/database/repository/driver"
	"agritrust/models"
	"agritrust/services/storage"
)

// DriverService defines business logic for delivery driver accounts.
type DriverService interface {
	// Register validates the six-step wizard payload, resolves all ten
	// image fields concurrently and persists the account. Any single
	// upload failure fails the whole registration.
	Register(ctx context.Context, req models.DriverRegistrationRequest) (*AuthResponse, error)
	// Authenticate verifies credentials by email. Unverified drivers are
	// rejected without a token.
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// CheckEmail reports whether the email is still available.
	CheckEmail(email string) (bool, error)

	GetByID(id string) (*models.DeliveryDriver, error)
	UpdateProfile(id string, req models.DriverUpdateRequest) (*models.DeliveryDriver, error)
	UpdatePassword(id, currentPassword, newPassword string) error
	Delete(id string) error

	ForgotPassword(email string) error
	VerifyResetCode(email, code string) error
	ResetPassword(email, code, newPassword string) error
}

// ResetEmailQueue enqueues reset-code emails for background delivery.
type ResetEmailQueue interface {
	EnqueueResetEmail(email, name, code string) error
}

// DefaultDriverService is the production implementation.
type DefaultDriverService struct {
	Repo   driverRepo.DriverRepository
	Images *storage.ImageResolver
	Queue  ResetEmailQueue
}

// AuthResponse contains the driver's public identity and token.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Email        string `json:"email"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	ProfileImage string `json:"profileimage,omitempty"`
	Verified     bool   `json:"verified"`
}
