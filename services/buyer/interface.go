package buyer

import (
	"context"

	buyerRepo "agritrust/database/repository/buyer"
	"agritrust/models"
)

// BuyerService defines business logic for buyer accounts. Buyer
// registration is single-step and carries no image fields.
type BuyerService interface {
	Register(ctx context.Context, req models.BuyerRegistrationRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, handle, password string) (*AuthResponse, error)
	CheckUsername(username string) (bool, error)

	GetByID(id string) (*models.Buyer, error)
	UpdateProfile(id string, req models.BuyerUpdateRequest) (*models.Buyer, error)
	UpdatePassword(id, currentPassword, newPassword string) error
	Delete(id string) error
}

// DefaultBuyerService is the production implementation.
type DefaultBuyerService struct {
	Repo buyerRepo.BuyerRepository
}

// AuthResponse contains the buyer's public identity and token.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Verified  bool   `json:"verified"`
}
