package response_models

import (
	"identity/internal/models/db_models"
	"identity/pkg/utils"
)

// AuthResult is returned by authorize, admin register and admin login alike.
type AuthResult struct {
	User      *db_models.User    `json:"user"`
	Account   *db_models.Account `json:"account"`
	Session   *db_models.Session `json:"session"`
	Token     string             `json:"token"`
	IsNewUser bool               `json:"isNewUser"`
}

type UserPage struct {
	Result     []db_models.User `json:"result"`
	Pagination utils.Pagination `json:"pagination"`
}

type CurrentUser struct {
	ID    string `json:"id"`
	Role  string `json:"_as"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
