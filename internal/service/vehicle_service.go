package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel_fleet/internal/model"
	"travel_fleet/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrPlateTaken      = errors.New("vehicle with this license plate already exists")
	ErrNotVehicleOwner = errors.New("you can only update your own vehicles")
)

// VehicleService provides fleet vehicle operations
type VehicleService interface {
	Add(ctx context.Context, owner *model.User, req model.CreateVehicleRequest) (*model.VehicleResponse, error)
	GetByOwner(ctx context.Context, owner *model.User, page, limit int) ([]model.VehicleResponse, model.Pagination, error)
	GetAll(ctx context.Context, page, limit int) ([]model.VehicleResponse, model.Pagination, error)
	UpdateStatus(ctx context.Context, vehicleID primitive.ObjectID, actor *model.User, status model.VehicleStatus) (*model.VehicleResponse, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo repository.VehicleRepository, userRepo repository.UserRepository) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
	}
}

// Add registers a new vehicle for the acting owner. The license plate is
// normalized to uppercase before the uniqueness check and the write.
func (s *vehicleService) Add(ctx context.Context, owner *model.User, req model.CreateVehicleRequest) (*model.VehicleResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))

	existing, err := s.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing plate: %w", err)
	}
	if existing != nil {
		return nil, ErrPlateTaken
	}

	status := req.Status
	if status == "" {
		status = model.StatusAvailable
	}

	now := time.Now()
	vehicle := &model.Vehicle{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: plate,
		Capacity:     req.Capacity,
		Status:       status,
		OwnerID:      owner.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the race against a concurrent registration of the plate.
			return nil, ErrPlateTaken
		}
		return nil, fmt.Errorf("failed to create vehicle in repository: %w", err)
	}

	return withOwnerInfo(vehicle, owner), nil
}

// GetByOwner returns one page of the acting owner's vehicles
func (s *vehicleService) GetByOwner(ctx context.Context, owner *model.User, page, limit int) ([]model.VehicleResponse, model.Pagination, error) {
	skip := int64(page-1) * int64(limit)

	vehicles, err := s.vehicleRepo.FindByOwner(ctx, owner.ID, skip, int64(limit))
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list vehicles by owner: %w", err)
	}

	total, err := s.vehicleRepo.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count vehicles by owner: %w", err)
	}

	responses := make([]model.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, *withOwnerInfo(&vehicles[i], owner))
	}

	return responses, model.NewPagination(page, limit, total), nil
}

// GetAll returns one page of all vehicles with their owners resolved
func (s *vehicleService) GetAll(ctx context.Context, page, limit int) ([]model.VehicleResponse, model.Pagination, error) {
	skip := int64(page-1) * int64(limit)

	vehicles, err := s.vehicleRepo.FindAll(ctx, skip, int64(limit))
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list vehicles: %w", err)
	}

	total, err := s.vehicleRepo.Count(ctx)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to count vehicles: %w", err)
	}

	// Resolve each distinct owner once per page.
	owners := make(map[primitive.ObjectID]*model.User)
	responses := make([]model.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		owner, ok := owners[v.OwnerID]
		if !ok {
			owner, err = s.userRepo.FindByID(ctx, v.OwnerID)
			if err != nil {
				return nil, model.Pagination{}, fmt.Errorf("failed to resolve vehicle owner: %w", err)
			}
			owners[v.OwnerID] = owner
		}
		responses = append(responses, *withOwnerInfo(v, owner))
	}

	return responses, model.NewPagination(page, limit, total), nil
}

// UpdateStatus changes a vehicle's status. Only the owning user or an admin
// may do so.
func (s *vehicleService) UpdateStatus(ctx context.Context, vehicleID primitive.ObjectID, actor *model.User, status model.VehicleStatus) (*model.VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle for status update: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	if actor.Role != model.RoleAdmin && vehicle.OwnerID != actor.ID {
		return nil, ErrNotVehicleOwner
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, vehicleID, status); err != nil {
		return nil, fmt.Errorf("failed to update vehicle status: %w", err)
	}
	vehicle.Status = status
	vehicle.UpdatedAt = time.Now()

	owner, err := s.userRepo.FindByID(ctx, vehicle.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vehicle owner: %w", err)
	}

	return withOwnerInfo(vehicle, owner), nil
}

// withOwnerInfo embeds the owner's email and role, never the full record.
// A nil owner (account deleted after the vehicle was created) leaves only
// the id populated.
func withOwnerInfo(vehicle *model.Vehicle, owner *model.User) *model.VehicleResponse {
	info := model.OwnerInfo{ID: vehicle.OwnerID}
	if owner != nil {
		info.Email = owner.Email
		info.Role = owner.Role
	}
	return &model.VehicleResponse{Vehicle: *vehicle, Owner: info}
}
