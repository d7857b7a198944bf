package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity/internal/models/request_models"
	"identity/internal/models/response_models"
	"identity/internal/services"
	"identity/pkg/middleware"
	"identity/pkg/utils"
)

type AuthController struct {
	identityService services.IdentityServiceInterface
}

func NewAuthController(identityService services.IdentityServiceInterface) *AuthController {
	return &AuthController{
		identityService: identityService,
	}
}

// HealthCheck godoc
// @Summary Health check
// @Tags Auth
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /api/auth/health [get]
func (a *AuthController) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Authorize godoc
// @Summary Authorize user to access the application
// @Description Sign up or sign in with a provider identity
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.AuthorizeRequest true "Identity claim"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/auth/authorize [post]
func (a *AuthController) Authorize(c *gin.Context) {
	var req request_models.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.Validation(err.Error()))
		return
	}

	result, err := a.identityService.Authorize(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Authorized successfully")
}

// RegisterAdmin godoc
// @Summary Register an admin user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/auth/admin/register [post]
func (a *AuthController) RegisterAdmin(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.Validation(err.Error()))
		return
	}

	result, err := a.identityService.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Account created successfully")
}

// LoginAdmin godoc
// @Summary Login as an admin user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/admin/login [post]
func (a *AuthController) LoginAdmin(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.Validation(err.Error()))
		return
	}

	result, err := a.identityService.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Login successful")
}

// Me godoc
// @Summary Current session claims
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/auth/me [get]
func (a *AuthController) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.Unauthorized(utils.MsgForbiddenResource))
		return
	}

	utils.RespondSuccess(c, response_models.CurrentUser{
		ID:    claims.ID,
		Role:  claims.As,
		Name:  claims.Name,
		Email: claims.Email,
	}, "")
}
