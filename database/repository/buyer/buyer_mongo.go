package buyerRepo

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

// MongoBuyerRepo implements BuyerRepository using MongoDB.
type MongoBuyerRepo struct {
	coll *mongo.Collection
}

// NewMongoBuyerRepo creates a new instance of BuyerRepository using MongoDB.
func NewMongoBuyerRepo() BuyerRepository {
	coll := database.MongoClient.Database("agritrust").Collection("buyers")
	repo := &MongoBuyerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create buyer indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBuyerRepo) ensureIndexes() error {
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

// Create inserts a new buyer document.
func (r *MongoBuyerRepo) Create(buyer *models.Buyer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	buyer.CreatedAt = now
	buyer.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, buyer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateHandle
		}
		return fmt.Errorf("failed to create buyer: %w", err)
	}
	return nil
}

// Update modifies an existing buyer document.
func (r *MongoBuyerRepo) Update(buyer *models.Buyer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	buyer.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": buyer.ID}, bson.M{"$set": buyer})
	if err != nil {
		return fmt.Errorf("failed to update buyer with id %s: %w", buyer.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("buyer with id %s not found", buyer.ID)
	}
	return nil
}

// UpdateWithDocument applies a raw update document to a buyer record.
func (r *MongoBuyerRepo) UpdateWithDocument(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update buyer with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("buyer with id %s not found", id)
	}
	return nil
}

// Delete removes a buyer document by its ID.
func (r *MongoBuyerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete buyer with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("buyer with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a buyer by its unique ID.
func (r *MongoBuyerRepo) GetByID(id string) (*models.Buyer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var buyer models.Buyer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&buyer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch buyer with id %s: %w", id, err)
	}
	return &buyer, nil
}

// GetByEmail retrieves a buyer by its email address.
func (r *MongoBuyerRepo) GetByEmail(email string) (*models.Buyer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var buyer models.Buyer
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&buyer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch buyer with email %s: %w", email, err)
	}
	return &buyer, nil
}

// GetByUsername retrieves a buyer by its username.
func (r *MongoBuyerRepo) GetByUsername(username string) (*models.Buyer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var buyer models.Buyer
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&buyer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch buyer with username %s: %w", username, err)
	}
	return &buyer, nil
}

// IsUsernameTaken reports whether a buyer already holds the given username.
func (r *MongoBuyerRepo) IsUsernameTaken(username string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return count > 0, nil
}
