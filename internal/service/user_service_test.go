package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(repo *MockUserRepository) UserService {
	svc := CreateUserService(repo, newTestQueryCache(), config.CacheConfig{}).(*UserServiceImpl)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func TestUserService_AddUser(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	svc := newTestUserService(repo)

	id, err := svc.AddUser(ctx, dto.UserRequest{Name: "Saraa", Email: "saraa@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.Len(t, repo.Users, 1)
	stored := repo.Users[0]
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.NotEmpty(t, stored.ExternalID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("secret1")))

	user, err := svc.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), stored.HashedPassword)
	assert.NotContains(t, string(raw), "password")

	_, err = svc.AddUser(ctx, dto.UserRequest{Name: "Other", Email: "saraa@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, errs.ErrDuplicate)
}

func TestUserService_UpdateRoleAndPassword(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	svc := newTestUserService(repo)

	id, err := svc.AddUser(ctx, dto.UserRequest{Name: "Saraa", Email: "saraa@example.com", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, repo.Users[0].Role)

	require.NoError(t, svc.UpdateUserRole(ctx, id, dto.UserRoleRequest{Role: "user"}))
	assert.Equal(t, domain.RoleUser, repo.Users[0].Role)

	require.NoError(t, svc.UpdateUserPassword(ctx, id, dto.UserPasswordRequest{Password: "changed"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.Users[0].HashedPassword), []byte("changed")))

	require.NoError(t, svc.UpdateUser(ctx, id, dto.UserUpdateRequest{Name: "Saraa B", Email: "saraa@example.com"}))
	users, err := svc.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Saraa B", users[0].Name)

	require.NoError(t, svc.DeleteUser(ctx, id))
	_, err = svc.GetUserByID(ctx, id)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserService_UpdateEmailTaken(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	svc := newTestUserService(repo)

	_, err := svc.AddUser(ctx, dto.UserRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	id, err := svc.AddUser(ctx, dto.UserRequest{Name: "B", Email: "b@example.com", Password: "secret1"})
	require.NoError(t, err)

	err = svc.UpdateUser(ctx, id, dto.UserUpdateRequest{Name: "B", Email: "a@example.com"})
	assert.ErrorIs(t, err, errs.ErrDuplicate)
}
