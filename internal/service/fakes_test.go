package service

import (
	"context"
	"fmt"
	"sync"

	"travel_fleet/internal/model"
	"travel_fleet/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepo is an in-memory UserRepository for service tests. It keeps
// insertion order so pagination slicing is deterministic.
type memUserRepo struct {
	mu    sync.Mutex
	users []*model.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateKey)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, user)
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(ctx context.Context, skip, limit int64) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if skip >= int64(len(r.users)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(r.users)) {
		end = int64(len(r.users))
	}
	out := make([]model.User, 0, end-skip)
	for _, u := range r.users[skip:end] {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user not found for deletion")
}

// memVehicleRepo is an in-memory VehicleRepository for service tests.
type memVehicleRepo struct {
	mu       sync.Mutex
	vehicles []*model.Vehicle
}

var _ repository.VehicleRepository = (*memVehicleRepo)(nil)

func (r *memVehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.LicensePlate == vehicle.LicensePlate {
			return fmt.Errorf("failed to create vehicle: %w", repository.ErrDuplicateKey)
		}
	}
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	r.vehicles = append(r.vehicles, vehicle)
	return nil
}

func (r *memVehicleRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (r *memVehicleRepo) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.LicensePlate == plate {
			return v, nil
		}
	}
	return nil, nil
}

func (r *memVehicleRepo) FindByOwner(ctx context.Context, ownerID primitive.ObjectID, skip, limit int64) ([]model.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []model.Vehicle
	for _, v := range r.vehicles {
		if v.OwnerID == ownerID {
			owned = append(owned, *v)
		}
	}
	return pageOf(owned, skip, limit), nil
}

func (r *memVehicleRepo) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.vehicles {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *memVehicleRepo) FindAll(ctx context.Context, skip, limit int64) ([]model.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		all = append(all, *v)
	}
	return pageOf(all, skip, limit), nil
}

func (r *memVehicleRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.vehicles)), nil
}

func (r *memVehicleRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.VehicleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.ID == id {
			v.Status = status
			return nil
		}
	}
	return fmt.Errorf("vehicle not found for status update")
}

func pageOf(vehicles []model.Vehicle, skip, limit int64) []model.Vehicle {
	if skip >= int64(len(vehicles)) {
		return nil
	}
	end := skip + limit
	if end > int64(len(vehicles)) {
		end = int64(len(vehicles))
	}
	return vehicles[skip:end]
}
