package driverRepo

import (
	"errors"

	"agritrust/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDuplicateHandle is returned when an insert trips the unique email index.
var ErrDuplicateHandle = errors.New("a delivery driver with this email already exists")

// DriverRepository defines persistence operations for delivery driver accounts.
type DriverRepository interface {
	Create(driver *models.DeliveryDriver) error
	Update(driver *models.DeliveryDriver) error
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.DeliveryDriver, error)
	GetByEmail(email string) (*models.DeliveryDriver, error)
	IsEmailTaken(email string) (bool, error)
	ClearExpiredResetCodes() (int64, error)
}
