package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"identity/internal/repositories"
	mem "identity/pkg/memcache"
	"identity/pkg/utils"
)

// RoleLookup resolves the role name attached to a user's account.
type RoleLookup interface {
	LookupRole(ctx context.Context, userID string) (string, bool, error)
}

type RoleAuthorizer interface {
	Authorize(ctx context.Context, userID string, requiredRoles []string) error
}

type repositoryRoleLookup struct {
	roles repositories.RoleRepository
}

func NewRepositoryRoleLookup(roles repositories.RoleRepository) RoleLookup {
	return &repositoryRoleLookup{roles: roles}
}

func (l *repositoryRoleLookup) LookupRole(ctx context.Context, userID string) (string, bool, error) {
	return l.roles.FindUserRole(ctx, userID)
}

type cachedRoleLookup struct {
	next  RoleLookup
	cache mem.RoleCache
	ttl   time.Duration
}

// NewCachedRoleLookup memoizes hits of next for ttl. Misses are never cached.
func NewCachedRoleLookup(next RoleLookup, cache mem.RoleCache, ttl time.Duration) RoleLookup {
	return &cachedRoleLookup{next: next, cache: cache, ttl: ttl}
}

func (l *cachedRoleLookup) LookupRole(ctx context.Context, userID string) (string, bool, error) {
	if role, ok := l.cache.Get(userID); ok {
		return role, true, nil
	}
	role, found, err := l.next.LookupRole(ctx, userID)
	if err != nil || !found {
		return role, found, err
	}
	l.cache.Set(userID, role, l.ttl)
	return role, true, nil
}

type roleAuthorizer struct {
	lookup RoleLookup
	logger *zap.Logger
}

func NewRoleAuthorizer(lookup RoleLookup, logger *zap.Logger) RoleAuthorizer {
	return &roleAuthorizer{lookup: lookup, logger: logger}
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

func (a *roleAuthorizer) Authorize(ctx context.Context, userID string, requiredRoles []string) error {
	role, found, err := a.lookup.LookupRole(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		a.logger.Debug("no account linked to user", zap.String("user_id", userID))
		return utils.Unauthorized(utils.MsgForbiddenResource)
	}

	role = normalizeRole(role)
	for _, required := range requiredRoles {
		if normalizeRole(required) == role {
			return nil
		}
	}
	return utils.Unauthorized(utils.MsgForbiddenResource)
}
