package repositories

import (
	"context"

	"gorm.io/gorm"

	"identity/internal/models/db_models"
)

type RoleRepository interface {
	FindByID(ctx context.Context, id uint) (*db_models.Role, error)
	FindByName(ctx context.Context, name string) (*db_models.Role, error)
	// FindUserRole resolves user -> account -> role in one query. A user holding
	// several accounts is gated by the earliest one, the account it signed up with.
	FindUserRole(ctx context.Context, userID string) (string, bool, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByID(ctx context.Context, id uint) (*db_models.Role, error) {
	var role db_models.Role
	return firstOrNil(r.db.WithContext(ctx).First(&role, id), &role)
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*db_models.Role, error) {
	var role db_models.Role
	return firstOrNil(r.db.WithContext(ctx).Where("name = ?", name).First(&role), &role)
}

func (r *roleRepository) FindUserRole(ctx context.Context, userID string) (string, bool, error) {
	var rows []struct {
		Name string
	}
	err := r.db.WithContext(ctx).
		Table("user_account").
		Select("role.name AS name").
		Joins(`JOIN "user" ON "user".id = user_account.user_id AND "user".deleted_at IS NULL`).
		Joins("JOIN role ON role.id = user_account.role_id").
		Where("user_account.user_id = ? AND user_account.deleted_at IS NULL", userID).
		Order("user_account.created_at ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return "", false, storeError(err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Name, true, nil
}
