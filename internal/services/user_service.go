package services

import (
	"context"

	"github.com/google/uuid"

	"identity/internal/models/db_models"
	"identity/internal/models/response_models"
	"identity/internal/repositories"
	mem "identity/pkg/memcache"
	"identity/pkg/utils"
)

const msgUserNotFound = "User not found"

type UserServiceInterface interface {
	ListUsers(ctx context.Context, page, limit int) (*response_models.UserPage, error)
	GetUser(ctx context.Context, id string) (*db_models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserService struct {
	users *repositories.CrudRepository[db_models.User]
	roles mem.RoleCache
}

func NewUserService(users *repositories.CrudRepository[db_models.User], roles mem.RoleCache) UserServiceInterface {
	return &UserService{users: users, roles: roles}
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*response_models.UserPage, error) {
	if err := utils.ValidatePage(page, limit); err != nil {
		return nil, err
	}

	users, total, err := s.users.FindAndCount(ctx, page, limit, "created_at DESC")
	if err != nil {
		return nil, err
	}

	return &response_models.UserPage{
		Result:     users,
		Pagination: utils.Paginate(total, limit, page),
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*db_models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindOne(ctx, "id = ?", userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound(msgUserNotFound)
	}
	return user, nil
}

// DeleteUser soft deletes the user and drops its cached role so the role gate
// stops admitting it on the next request.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseUserID(id)
	if err != nil {
		return err
	}

	affected, err := s.users.SoftDelete(ctx, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return utils.NotFound(msgUserNotFound)
	}

	s.roles.Invalidate(userID.String())
	return nil
}

func parseUserID(id string) (uuid.UUID, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, utils.Validation("Invalid user id")
	}
	return userID, nil
}
