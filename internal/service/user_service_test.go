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

func seedUsers(t *testing.T, repo *memUserRepo, n int) []*model.User {
	t.Helper()
	users := make([]*model.User, 0, n)
	for i := 0; i < n; i++ {
		u := &model.User{
			Email:     fmt.Sprintf("user%02d@example.com", i),
			Password:  "hashed",
			Role:      model.RoleCustomer,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(context.Background(), u))
		users = append(users, u)
	}
	return users
}

func TestUserService_List_Paginates(t *testing.T) {
	repo := &memUserRepo{}
	seedUsers(t, repo, 12)
	svc := NewUserService(repo)

	users, pagination, err := svc.List(context.Background(), 2, 5)

	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 5, pagination.Limit)
	assert.Equal(t, int64(12), pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
	// Second page starts after the first five.
	assert.Equal(t, "user05@example.com", users[0].Email)
}

func TestUserService_List_PastLastPage(t *testing.T) {
	repo := &memUserRepo{}
	seedUsers(t, repo, 3)
	svc := NewUserService(repo)

	users, pagination, err := svc.List(context.Background(), 5, 10)

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.Equal(t, int64(3), pagination.Total)
	assert.Equal(t, 1, pagination.Pages)
}

func TestUserService_GetByID(t *testing.T) {
	repo := &memUserRepo{}
	seeded := seedUsers(t, repo, 1)
	svc := NewUserService(repo)

	user, err := svc.GetByID(context.Background(), seeded[0].ID)

	require.NoError(t, err)
	assert.Equal(t, seeded[0].Email, user.Email)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(&memUserRepo{})

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	repo := &memUserRepo{}
	seeded := seedUsers(t, repo, 2)
	svc := NewUserService(repo)

	deleted, err := svc.Delete(context.Background(), seeded[1].ID, seeded[0].ID)

	require.NoError(t, err)
	assert.Equal(t, seeded[1].Email, deleted.Email)

	remaining, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestUserService_Delete_Self(t *testing.T) {
	repo := &memUserRepo{}
	seeded := seedUsers(t, repo, 1)
	svc := NewUserService(repo)

	_, err := svc.Delete(context.Background(), seeded[0].ID, seeded[0].ID)
	assert.ErrorIs(t, err, ErrSelfDelete)

	// Nothing was removed.
	remaining, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := NewUserService(&memUserRepo{})

	_, err := svc.Delete(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
