package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel_fleet/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VehicleRepository defines operations for vehicle data
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID, skip, limit int64) ([]model.Vehicle, error)
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	FindAll(ctx context.Context, skip, limit int64) ([]model.Vehicle, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.VehicleStatus) error
}

type vehicleRepository struct {
	coll *mongo.Collection
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *mongo.Database) VehicleRepository {
	return &vehicleRepository{coll: db.Collection("vehicles")}
}

// Create inserts a new vehicle document
func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	res, err := r.coll.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create vehicle: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		vehicle.ID = oid
	}
	return nil
}

// FindByID retrieves a vehicle by its document id
func (r *vehicleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return vehicle, nil
}

// FindByPlate retrieves a vehicle by license plate. Plates are stored
// uppercase, callers normalize before lookup.
func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{}
	err := r.coll.FindOne(ctx, bson.M{"licensePlate": plate}).Decode(vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vehicle by plate: %w", err)
	}
	return vehicle, nil
}

// FindByOwner retrieves a page of vehicles for one owner, newest first
func (r *vehicleRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID, skip, limit int64) ([]model.Vehicle, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles by owner: %w", err)
	}

	var vehicles []model.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle documents: %w", err)
	}
	return vehicles, nil
}

// CountByOwner returns how many vehicles one owner has
func (r *vehicleRepository) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles by owner: %w", err)
	}
	return total, nil
}

// FindAll retrieves a page of all vehicles, newest first
func (r *vehicleRepository) FindAll(ctx context.Context, skip, limit int64) ([]model.Vehicle, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query all vehicles: %w", err)
	}

	var vehicles []model.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle documents: %w", err)
	}
	return vehicles, nil
}

// Count returns the total number of vehicles
func (r *vehicleRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return total, nil
}

// UpdateStatus sets a vehicle's status
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.VehicleStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found for status update")
	}
	return nil
}
