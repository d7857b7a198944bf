package controllers_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"identity/internal/api/controllers"
	"identity/internal/models/db_models"
	"identity/internal/repositories"
	"identity/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideUserRepo),
	fx.Provide(services.NewUserService),
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewUserController))

func provideUserRepo(db *gorm.DB) *repositories.CrudRepository[db_models.User] {
	return repositories.NewCrudRepository[db_models.User](db)
}
