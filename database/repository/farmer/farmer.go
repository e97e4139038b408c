package farmerRepo

import (
	"errors"

	"agritrust/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDuplicateHandle is returned when an insert trips a unique index.
var ErrDuplicateHandle = errors.New("a farmer with this email or username already exists")

// FarmerRepository defines persistence operations for farmer accounts.
type FarmerRepository interface {
	Create(farmer *models.Farmer) error
	Update(farmer *models.Farmer) error
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Farmer, error)
	GetByEmail(email string) (*models.Farmer, error)
	GetByUsername(username string) (*models.Farmer, error)
	IsUsernameTaken(username string) (bool, error)
	ClearExpiredResetCodes() (int64, error)
}
