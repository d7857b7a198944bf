package db_models

const (
	RoleSuperAdmin = "superadmin"
	RoleCustomer   = "customer"
	RoleCreator    = "creator"
	RoleVendor     = "vendor"
)

type Role struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Timestamps
}

func (Role) TableName() string { return "role" }

// RolePermission is a `module:action` entry; `*` is accepted on either side.
type RolePermission struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Timestamps
}

func (RolePermission) TableName() string { return "role_permission" }

type RoleHasPermission struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID       uint           `gorm:"not null;index" json:"roleId"`
	Role         Role           `gorm:"foreignKey:RoleID" json:"role"`
	PermissionID uint           `gorm:"not null;index" json:"permissionId"`
	Permission   RolePermission `gorm:"foreignKey:PermissionID" json:"permission"`
}

func (RoleHasPermission) TableName() string { return "role_has_permission" }
