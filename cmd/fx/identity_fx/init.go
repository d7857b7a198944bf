package identity_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"identity/internal/config"
	"identity/internal/repositories"
	"identity/internal/services"
	mem "identity/pkg/memcache"
	"identity/pkg/utils"
)

var Module = fx.Provide(
	provideTokenCodec,
	providePasswordHasher,
	provideIdentityRepo,
	provideRoleRepo,
	provideSessionIssuer,
	providePictureStore,
	provideDefaultRoles,
	provideIdentityService,
	provideRoleAuthorizer,
)

// The key pair is read once here and shared read-only by every request.
func provideTokenCodec(cfg config.Config) (*utils.TokenCodec, error) {
	return utils.NewTokenCodecFromFiles(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.SessionTTL)
}

func providePasswordHasher(cfg config.Config) *utils.PasswordHasher {
	return utils.NewPasswordHasher(cfg.BcryptCost)
}

func provideIdentityRepo(db *gorm.DB) repositories.IdentityRepository {
	return repositories.NewIdentityRepository(db)
}

func provideRoleRepo(db *gorm.DB) repositories.RoleRepository {
	return repositories.NewRoleRepository(db)
}

func provideSessionIssuer(codec *utils.TokenCodec) services.SessionIssuer {
	return services.NewSessionIssuer(codec)
}

func providePictureStore(cfg config.Config) services.PictureStore {
	fetcher := services.NewHTTPImageFetcher(cfg.PictureFetchTimeout)
	return services.NewFilePictureStore(fetcher, cfg.PublicDir, cfg.BaseURL)
}

func provideDefaultRoles(cfg config.Config, roles repositories.RoleRepository) (services.DefaultRoles, error) {
	ctx := context.Background()

	signup, err := roles.FindByName(ctx, cfg.DefaultSignupRole)
	if err != nil {
		return services.DefaultRoles{}, err
	}
	if signup == nil {
		return services.DefaultRoles{}, fmt.Errorf("signup role %q is not seeded", cfg.DefaultSignupRole)
	}

	admin, err := roles.FindByName(ctx, cfg.DefaultAdminRole)
	if err != nil {
		return services.DefaultRoles{}, err
	}
	if admin == nil {
		return services.DefaultRoles{}, fmt.Errorf("admin role %q is not seeded", cfg.DefaultAdminRole)
	}

	return services.DefaultRoles{SignupRoleID: signup.ID, AdminRoleID: admin.ID}, nil
}

func provideIdentityService(
	repo repositories.IdentityRepository,
	issuer services.SessionIssuer,
	hasher *utils.PasswordHasher,
	pictures services.PictureStore,
	roles services.DefaultRoles,
	logger *zap.Logger,
) (services.IdentityServiceInterface, error) {
	return services.NewIdentityService(repo, issuer, hasher, pictures, roles, logger.Named("identity"))
}

func provideRoleAuthorizer(cfg config.Config, roles repositories.RoleRepository, cache mem.RoleCache, logger *zap.Logger) services.RoleAuthorizer {
	lookup := services.NewRepositoryRoleLookup(roles)
	if cfg.RoleCacheTTL > 0 {
		lookup = services.NewCachedRoleLookup(lookup, cache, cfg.RoleCacheTTL)
	}
	return services.NewRoleAuthorizer(lookup, logger.Named("authz"))
}
