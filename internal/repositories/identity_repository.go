package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity/internal/infra"
	"identity/internal/models/db_models"
)

// IdentityRepository is the transactional store behind the identity flows.
// Lookups return nil, nil when nothing matches.
type IdentityRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*db_models.User, error)
	// FindUserWithAccountByEmail loads the user with its account for provider only.
	FindUserWithAccountByEmail(ctx context.Context, email, provider string) (*db_models.User, error)
	FindAccountByProviderAndUser(ctx context.Context, provider string, userID uuid.UUID) (*db_models.Account, error)
	FindSessionByUser(ctx context.Context, userID uuid.UUID) (*db_models.Session, error)
	FindRoleByID(ctx context.Context, id uint) (*db_models.Role, error)

	SaveUser(ctx context.Context, user *db_models.User) error
	SaveAccount(ctx context.Context, account *db_models.Account) error
	CreateSession(ctx context.Context, session *db_models.Session) error
	SaveSession(ctx context.Context, session *db_models.Session) error

	// Transaction runs fn with a repository bound to one serializable transaction.
	Transaction(ctx context.Context, fn func(repo IdentityRepository) error) error
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// Errors returned by fn pass through untouched; only begin, commit and cancellation
// failures are classified here.
func (r *identityRepository) Transaction(ctx context.Context, fn func(repo IdentityRepository) error) error {
	var fnErr error
	err := infra.Transaction(ctx, r.db, serializable, func(tx *gorm.DB) error {
		fnErr = fn(&identityRepository{db: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return storeError(err)
}

func (r *identityRepository) FindUserByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	return firstOrNil(r.db.WithContext(ctx).Where("email = ?", email).First(&user), &user)
}

func (r *identityRepository) FindUserWithAccountByEmail(ctx context.Context, email, provider string) (*db_models.User, error) {
	var user db_models.User
	result := r.db.WithContext(ctx).
		Preload("Account", func(db *gorm.DB) *gorm.DB {
			return db.Where("provider = ?", provider)
		}).
		Preload("Account.Role").
		Where("email = ?", email).
		First(&user)
	return firstOrNil(result, &user)
}

func (r *identityRepository) FindAccountByProviderAndUser(ctx context.Context, provider string, userID uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	result := r.db.WithContext(ctx).
		Preload("Role").
		Where("provider = ? AND user_id = ?", provider, userID).
		First(&account)
	return firstOrNil(result, &account)
}

func (r *identityRepository) FindSessionByUser(ctx context.Context, userID uuid.UUID) (*db_models.Session, error) {
	var session db_models.Session
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Take(&session)
	return firstOrNil(result, &session)
}

func (r *identityRepository) FindRoleByID(ctx context.Context, id uint) (*db_models.Role, error) {
	var role db_models.Role
	return firstOrNil(r.db.WithContext(ctx).First(&role, id), &role)
}

// Associations are written by their own Save* calls, never cascaded.
func (r *identityRepository) SaveUser(ctx context.Context, user *db_models.User) error {
	return storeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

func (r *identityRepository) SaveAccount(ctx context.Context, account *db_models.Account) error {
	return storeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(account).Error)
}

func (r *identityRepository) CreateSession(ctx context.Context, session *db_models.Session) error {
	return storeError(r.db.WithContext(ctx).Create(session).Error)
}

// SaveSession updates by id when the id is set and inserts otherwise.
func (r *identityRepository) SaveSession(ctx context.Context, session *db_models.Session) error {
	return storeError(r.db.WithContext(ctx).Save(session).Error)
}
