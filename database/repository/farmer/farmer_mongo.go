package farmerRepo

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

// MongoFarmerRepo implements FarmerRepository using MongoDB.
type MongoFarmerRepo struct {
	coll *mongo.Collection
}

// NewMongoFarmerRepo creates a new instance of FarmerRepository using MongoDB.
func NewMongoFarmerRepo() FarmerRepository {
	coll := database.MongoClient.Database("agritrust").Collection("farmers")
	repo := &MongoFarmerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create farmer indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates unique indexes for the fields used as handles.
// The unique constraints are the authoritative guard against two
// simultaneous registrations claiming the same handle.
func (r *MongoFarmerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new farmer document.
func (r *MongoFarmerRepo) Create(farmer *models.Farmer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	farmer.CreatedAt = now
	farmer.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, farmer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateHandle
		}
		return fmt.Errorf("failed to create farmer: %w", err)
	}
	return nil
}

// Update modifies an existing farmer document.
func (r *MongoFarmerRepo) Update(farmer *models.Farmer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	farmer.UpdatedAt = time.Now()
	filter := bson.M{"id": farmer.ID}
	update := bson.M{"$set": farmer}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update farmer with id %s: %w", farmer.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("farmer with id %s not found", farmer.ID)
	}
	return nil
}

// UpdateWithDocument applies a raw update document to a farmer record.
func (r *MongoFarmerRepo) UpdateWithDocument(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update farmer with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("farmer with id %s not found", id)
	}
	return nil
}

// Delete removes a farmer document by its ID.
func (r *MongoFarmerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete farmer with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("farmer with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a farmer by its unique ID.
func (r *MongoFarmerRepo) GetByID(id string) (*models.Farmer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var farmer models.Farmer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&farmer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch farmer with id %s: %w", id, err)
	}
	return &farmer, nil
}

// GetByEmail retrieves a farmer by its email address.
func (r *MongoFarmerRepo) GetByEmail(email string) (*models.Farmer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var farmer models.Farmer
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&farmer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch farmer with email %s: %w", email, err)
	}
	return &farmer, nil
}

// GetByUsername retrieves a farmer by its username.
func (r *MongoFarmerRepo) GetByUsername(username string) (*models.Farmer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var farmer models.Farmer
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&farmer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch farmer with username %s: %w", username, err)
	}
	return &farmer, nil
}

// IsUsernameTaken reports whether a farmer already holds the given username.
func (r *MongoFarmerRepo) IsUsernameTaken(username string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return count > 0, nil
}

// ClearExpiredResetCodes removes lapsed password-reset codes from all
// farmer records and returns how many were cleared.
func (r *MongoFarmerRepo) ClearExpiredResetCodes() (int64, error) {
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
