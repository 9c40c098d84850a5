package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus is the closed set of vehicle states.
type VehicleStatus string

const (
	StatusAvailable   VehicleStatus = "available"
	StatusInUse       VehicleStatus = "in-use"
	StatusMaintenance VehicleStatus = "maintenance"
	StatusInactive    VehicleStatus = "inactive"
)

// Valid reports whether s is one of the enumerated statuses.
func (s VehicleStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}

// Vehicle represents a fleet vehicle owned by a user with role "owner".
// The owner reference is checked at creation time only; a later role change
// on the owning user does not invalidate existing vehicles.
type Vehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Make         string             `bson:"make" json:"make"`
	Model        string             `bson:"model" json:"model"`
	Year         int                `bson:"year" json:"year"`
	LicensePlate string             `bson:"licensePlate" json:"licensePlate"` // stored uppercase
	Capacity     int                `bson:"capacity" json:"capacity"`
	Status       VehicleStatus      `bson:"status" json:"status"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OwnerInfo is the subset of the owning user embedded in vehicle responses.
type OwnerInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}

// VehicleResponse is a vehicle with its owner resolved.
type VehicleResponse struct {
	Vehicle
	Owner OwnerInfo `json:"owner"`
}

// CreateVehicleRequest is used for adding a new vehicle
type CreateVehicleRequest struct {
	Make         string        `json:"make" binding:"required,min=2,max=50"`
	Model        string        `json:"model" binding:"required,min=2,max=50"`
	Year         int           `json:"year" binding:"required,vehicle_year"`
	LicensePlate string        `json:"licensePlate" binding:"required,min=3,max=10"`
	Capacity     int           `json:"capacity" binding:"required,min=1,max=100"`
	Status       VehicleStatus `json:"status" binding:"omitempty,oneof=available in-use maintenance inactive"`
}

type UpdateVehicleStatusRequest struct {
	Status VehicleStatus `json:"status" binding:"required,oneof=available in-use maintenance inactive"`
}
