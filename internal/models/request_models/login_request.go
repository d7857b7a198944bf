package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// AuthorizeRequest is the identity claim presented by a sign-in provider.
type AuthorizeRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Provider string `json:"provider" binding:"required"`
	Picture  string `json:"picture" binding:"omitempty,url"`

	Password          string `json:"password"`
	EmailVerified     *bool  `json:"emailVerified"`
	ExpiresAt         int64  `json:"expiresAt"`
	ProviderAccountID string `json:"providerAccountId"`
	RefreshToken      string `json:"refreshToken"`
	AccessToken       string `json:"accessToken"`
	TokenType         string `json:"tokenType"`
	Scope             string `json:"scope"`
	IDToken           string `json:"idToken"`
}
