package memcache_fx

import (
	"go.uber.org/fx"

	mem "identity/pkg/memcache"
)

var Module = fx.Provide(provideRoleCache)

func provideRoleCache() mem.RoleCache {
	return mem.NewRoleEntries()
}
