package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"travel_fleet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOwner(t *testing.T, repo *memUserRepo, email string) *model.User {
	t.Helper()
	u := &model.User{
		Email:     email,
		Password:  "hashed",
		Role:      model.RoleOwner,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func vehicleReq(plate string) model.CreateVehicleRequest {
	return model.CreateVehicleRequest{
		Make:         "Toyota",
		Model:        "Hiace",
		Year:         2022,
		LicensePlate: plate,
		Capacity:     12,
	}
}

func TestVehicleService_Add(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	resp, err := svc.Add(context.Background(), owner, vehicleReq("abc123"))

	require.NoError(t, err)
	assert.False(t, resp.ID.IsZero())
	// The plate is normalized to uppercase.
	assert.Equal(t, "ABC123", resp.LicensePlate)
	assert.Equal(t, model.StatusAvailable, resp.Status)
	assert.Equal(t, owner.ID, resp.OwnerID)
	assert.Equal(t, owner.Email, resp.Owner.Email)
	assert.Equal(t, model.RoleOwner, resp.Owner.Role)
}

func TestVehicleService_Add_ExplicitStatus(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	req := vehicleReq("XYZ789")
	req.Status = model.StatusMaintenance

	resp, err := svc.Add(context.Background(), owner, req)

	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, resp.Status)
}

func TestVehicleService_Add_DuplicatePlate(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	_, err := svc.Add(context.Background(), owner, vehicleReq("ABC123"))
	require.NoError(t, err)

	// Lowercase input collides with the stored uppercase plate.
	_, err = svc.Add(context.Background(), owner, vehicleReq("abc123"))
	assert.ErrorIs(t, err, ErrPlateTaken)
}

func TestVehicleService_GetByOwner(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	other := newOwner(t, userRepo, "other@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	for i := 0; i < 3; i++ {
		_, err := svc.Add(context.Background(), owner, vehicleReq(fmt.Sprintf("OWN%d", i)))
		require.NoError(t, err)
	}
	_, err := svc.Add(context.Background(), other, vehicleReq("OTH0"))
	require.NoError(t, err)

	vehicles, pagination, err := svc.GetByOwner(context.Background(), owner, 1, 10)

	require.NoError(t, err)
	assert.Len(t, vehicles, 3)
	assert.Equal(t, int64(3), pagination.Total)
	for _, v := range vehicles {
		assert.Equal(t, owner.ID, v.OwnerID)
		assert.Equal(t, owner.Email, v.Owner.Email)
	}
}

func TestVehicleService_GetAll_ResolvesOwners(t *testing.T) {
	userRepo := &memUserRepo{}
	owner1 := newOwner(t, userRepo, "one@example.com")
	owner2 := newOwner(t, userRepo, "two@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	_, err := svc.Add(context.Background(), owner1, vehicleReq("AAA111"))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), owner2, vehicleReq("BBB222"))
	require.NoError(t, err)

	vehicles, pagination, err := svc.GetAll(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, int64(2), pagination.Total)

	emails := map[string]string{}
	for _, v := range vehicles {
		emails[v.LicensePlate] = v.Owner.Email
	}
	assert.Equal(t, "one@example.com", emails["AAA111"])
	assert.Equal(t, "two@example.com", emails["BBB222"])
}

func TestVehicleService_GetAll_DeletedOwnerLeavesIDOnly(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "gone@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	_, err := svc.Add(context.Background(), owner, vehicleReq("GON001"))
	require.NoError(t, err)

	require.NoError(t, userRepo.Delete(context.Background(), owner.ID))

	vehicles, _, err := svc.GetAll(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, owner.ID, vehicles[0].Owner.ID)
	assert.Empty(t, vehicles[0].Owner.Email)
}

func TestVehicleService_UpdateStatus_ByOwner(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	created, err := svc.Add(context.Background(), owner, vehicleReq("UPD001"))
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(context.Background(), created.ID, owner, model.StatusInUse)

	require.NoError(t, err)
	assert.Equal(t, model.StatusInUse, resp.Status)
}

func TestVehicleService_UpdateStatus_ByAdmin(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	admin := &model.User{Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, userRepo.Create(context.Background(), admin))
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	created, err := svc.Add(context.Background(), owner, vehicleReq("UPD002"))
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(context.Background(), created.ID, admin, model.StatusInactive)

	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, resp.Status)
	// Owner info still reflects the actual owner, not the acting admin.
	assert.Equal(t, owner.Email, resp.Owner.Email)
}

func TestVehicleService_UpdateStatus_OtherOwnerForbidden(t *testing.T) {
	userRepo := &memUserRepo{}
	owner := newOwner(t, userRepo, "owner@example.com")
	intruder := newOwner(t, userRepo, "intruder@example.com")
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	created, err := svc.Add(context.Background(), owner, vehicleReq("UPD003"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, intruder, model.StatusInUse)
	assert.ErrorIs(t, err, ErrNotVehicleOwner)
}

func TestVehicleService_UpdateStatus_NotFound(t *testing.T) {
	userRepo := &memUserRepo{}
	admin := &model.User{Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, userRepo.Create(context.Background(), admin))
	svc := NewVehicleService(&memVehicleRepo{}, userRepo)

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), admin, model.StatusInUse)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
