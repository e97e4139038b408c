package buyerRepo

import (
	"errors"

	"agritrust/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDuplicateHandle is returned when an insert trips a unique index.
var ErrDuplicateHandle = errors.New("a buyer with this email or username already exists")

// BuyerRepository defines persistence operations for buyer accounts.
type BuyerRepository interface {
	Create(buyer *models.Buyer) error
	Update(buyer *models.Buyer) error
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Buyer, error)
	GetByEmail(email string) (*models.Buyer, error)
	GetByUsername(username string) (*models.Buyer, error)
	IsUsernameTaken(username string) (bool, error)
}
