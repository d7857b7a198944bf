package controllers

import (
	"github.com/gin-gonic/gin"

	"identity/internal/models/request_models"
	"identity/internal/services"
	"identity/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface) *UserController {
	return &UserController{userService: userService}
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/users [get]
func (u *UserController) ListUsers(c *gin.Context) {
	var query request_models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.HandleServiceError(c, utils.Validation("Invalid pagination parameters"))
		return
	}

	page, err := u.userService.ListUsers(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Users fetched successfully")
}

// GetUser godoc
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (u *UserController) GetUser(c *gin.Context) {
	user, err := u.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User fetched successfully")
}

// DeleteUser godoc
// @Summary Soft delete a user
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/users/{id} [delete]
func (u *UserController) DeleteUser(c *gin.Context) {
	if err := u.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deleted successfully")
}
