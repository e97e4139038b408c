package driverRepo

import (
	"context"
	"fmt"
	"time"

	"agritrust/database"
	"agritrust/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDriverRepo implements DriverRepository using MongoDB.
type MongoDriverRepo struct {
	coll *mongo.Collection
}

// NewMongoDriverRepo creates a new instance of DriverRepository using MongoDB.
func NewMongoDriverRepo() DriverRepository {
	coll := database.MongoClient.Database("agritrust").Collection("deliverydrivers")
	repo := &MongoDriverRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create driver indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates unique indexes. Email is the driver's handle;
// drivers carry no username.
func (r *MongoDriverRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new delivery driver document.
func (r *MongoDriverRepo) Create(driver *models.DeliveryDriver) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	driver.CreatedAt = now
	driver.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, driver)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateHandle
		}
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

// Update modifies an existing driver document.
func (r *MongoDriverRepo) Update(driver *models.DeliveryDriver) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	driver.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": driver.ID}, bson.M{"$set": driver})
	if err != nil {
		return fmt.Errorf("failed to update driver with id %s: %w", driver.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("driver with id %s not found", driver.ID)
	}
	return nil
}

// UpdateWithDocument applies a raw update document to a driver record.
func (r *MongoDriverRepo) UpdateWithDocument(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update driver with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("driver with id %s not found", id)
	}
	return nil
}

// Delete removes a driver document by its ID.
func (r *MongoDriverRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete driver with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("driver with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a driver by its unique ID.
func (r *MongoDriverRepo) GetByID(id string) (*models.DeliveryDriver, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var driver models.DeliveryDriver
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&driver); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch driver with id %s: %w", id, err)
	}
	return &driver, nil
}

// GetByEmail retrieves a driver by its email address.
func (r *MongoDriverRepo) GetByEmail(email string) (*models.DeliveryDriver, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var driver models.DeliveryDriver
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&driver); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch driver with email %s: %w", email, err)
	}
	return &driver, nil
}

// IsEmailTaken reports whether a driver already holds the given email.
func (r *MongoDriverRepo) IsEmailTaken(email string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to check email availability: %w", err)
	}
	return count > 0, nil
}

// ClearExpiredResetCodes removes lapsed password-reset codes from all
// driver records and returns how many were cleared.
func (r *MongoDriverRepo) ClearExpiredResetCodes() (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"reset_code":       bson.M{"$ne": ""},
		"reset_expires_at": bson.M{"$lt": time.Now()},
	}
	update := bson.M{"$unset": bson.M{"reset_code": "", "reset_expires_at": ""}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired reset codes: %w", err)
	}
	return result.ModifiedCount, nil
}
