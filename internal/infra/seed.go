package infra

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity/internal/models/db_models"
)

var permissionModules = []string{"personalization", "template", "files", "users"}
var permissionActions = []string{"create", "read", "update", "delete"}

func strPtr(s string) *string { return &s }

// SeedRoles lists the fixed roles; ids are stable because older tokens and rows refer to them.
func SeedRoles() []db_models.Role {
	return []db_models.Role{
		{ID: 1, Name: db_models.RoleSuperAdmin, Description: strPtr("Super Admin Role")},
		{ID: 2, Name: db_models.RoleCustomer, Description: strPtr("Customer Role")},
		{ID: 3, Name: db_models.RoleCreator, Description: strPtr("Creator Role")},
		{ID: 4, Name: db_models.RoleVendor, Description: strPtr("Vendor Role")},
	}
}

// SeedPermissions returns the wildcard entries followed by every module:action pair.
func SeedPermissions() []db_models.RolePermission {
	names := []string{"*:*", "create:*", "read:*", "update:*", "delete:*"}
	for _, action := range permissionActions {
		for _, module := range permissionModules {
			names = append(names, fmt.Sprintf("%s:%s", module, action))
		}
	}

	perms := make([]db_models.RolePermission, 0, len(names))
	for i, name := range names {
		perms = append(perms, db_models.RolePermission{ID: uint(i + 1), Name: name})
	}
	return perms
}

func Models() []interface{} {
	return []interface{}{
		&db_models.Role{},
		&db_models.RolePermission{},
		&db_models.RoleHasPermission{},
		&db_models.User{},
		&db_models.Account{},
		&db_models.Session{},
	}
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

// Seed upserts roles and permissions by id, so it can run on every deploy.
func Seed(ctx context.Context, db *gorm.DB) error {
	return Transaction(ctx, db, nil, func(tx *gorm.DB) error {
		perms := SeedPermissions()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&perms).Error; err != nil {
			return fmt.Errorf("seed permissions: %w", err)
		}

		roles := SeedRoles()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(&roles).Error; err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}

		// explicit ids leave the serial behind; move it past the seeded range
		for _, table := range []string{"role", "role_permission"} {
			stmt := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}
		return nil
	})
}
