package service

import (
	"context"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo       repository.UserRepository
	queryCache *cache.QueryCache
	config     config.CacheConfig
	hashCost   int
}

func CreateUserService(repo repository.UserRepository, queryCache *cache.QueryCache, config config.CacheConfig) UserService {
	return &UserServiceImpl{repo: repo, queryCache: queryCache, config: config, hashCost: bcrypt.DefaultCost}
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) (data []dto.UserResponse, err error) {
	query := cache.Query{Name: "all-users", Tags: []string{cache.TagUsers}}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]dto.UserResponse, error) {
		users, err := s.repo.GetUsers(ctx)
		if err != nil {
			return nil, retrievalError("users", err)
		}

		resp := make([]dto.UserResponse, 0, len(users))
		for _, user := range users {
			resp = append(resp, dto.NewUserResponse(user))
		}
		return resp, nil
	})
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (data dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return data, referenceError("user", id, err)
	}

	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) AddUser(ctx context.Context, data dto.UserRequest) (id string, err error) {
	if err = s.checkUniqueEmail(ctx, data.Email, primitive.NilObjectID); err != nil {
		return
	}

	hash, err := s.hashPassword(ctx, data.Password)
	if err != nil {
		return
	}

	role := domain.Role(data.Role)
	if !role.Valid() {
		role = domain.RoleUser
	}

	userID, err := s.repo.AddUser(ctx, domain.User{
		ExternalID:     ulid.Make().String(),
		Name:           data.Name,
		Email:          data.Email,
		Phone:          data.Phone,
		Image:          data.Image,
		Role:           role,
		HashedPassword: hash,
	})
	if err != nil {
		return
	}

	if err = invalidate(ctx, s.queryCache, cache.TagUsers); err != nil {
		return
	}

	return userID.Hex(), nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, data dto.UserUpdateRequest) (err error) {
	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return referenceError("user", id, err)
	}

	if err = s.checkUniqueEmail(ctx, data.Email, existing.ID); err != nil {
		return
	}

	existing.Name = data.Name
	existing.Email = data.Email
	existing.Phone = data.Phone
	existing.Image = data.Image

	if err = s.repo.UpdateUser(ctx, existing); err != nil {
		return
	}

	return invalidate(ctx, s.queryCache, cache.TagUsers)
}

func (s *UserServiceImpl) UpdateUserRole(ctx context.Context, id string, data dto.UserRoleRequest) (err error) {
	if err = s.repo.UpdateUserRole(ctx, id, domain.Role(data.Role)); err != nil {
		return referenceError("user", id, err)
	}

	return invalidate(ctx, s.queryCache, cache.TagUsers)
}

func (s *UserServiceImpl) UpdateUserPassword(ctx context.Context, id string, data dto.UserPasswordRequest) (err error) {
	hash, err := s.hashPassword(ctx, data.Password)
	if err != nil {
		return
	}

	if err = s.repo.UpdateUserPassword(ctx, id, hash); err != nil {
		return referenceError("user", id, err)
	}

	return nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (err error) {
	if err = s.repo.DeleteUser(ctx, id); err != nil {
		return referenceError("user", id, err)
	}

	return invalidate(ctx, s.queryCache, cache.TagUsers)
}

func (s *UserServiceImpl) checkUniqueEmail(ctx context.Context, email string, excludeID primitive.ObjectID) error {
	exists, err := s.repo.UserExists(ctx, "email", email, excludeID)
	if err != nil {
		return retrievalError("user", err)
	}
	if exists {
		return duplicateError("user", "email", email)
	}
	return nil
}

func (s *UserServiceImpl) hashPassword(ctx context.Context, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "hashPassword").Msg("")
		return "", err
	}
	return string(hash), nil
}
