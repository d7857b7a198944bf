package services

import (
	"time"

	"identity/internal/models/db_models"
	"identity/pkg/utils"
)

type TokenSigner interface {
	Sign(claims utils.SessionClaims) (string, time.Time, error)
}

// SessionIssuer mints an unsaved Session for a user. It never touches the database.
type SessionIssuer interface {
	Issue(user *db_models.User) (*db_models.Session, error)
}

type sessionIssuer struct {
	signer TokenSigner
}

func NewSessionIssuer(signer TokenSigner) SessionIssuer {
	return &sessionIssuer{signer: signer}
}

func ClaimsForUser(user *db_models.User) utils.SessionClaims {
	return utils.SessionClaims{
		ID:    user.ID.String(),
		As:    user.Account.RoleName(),
		Name:  user.FullName(),
		Email: user.Email,
	}
}

func (s *sessionIssuer) Issue(user *db_models.User) (*db_models.Session, error) {
	token, expires, err := s.signer.Sign(ClaimsForUser(user))
	if err != nil {
		return nil, err
	}

	return &db_models.Session{
		SessionToken: token,
		UserID:       user.ID,
		Expires:      expires,
	}, nil
}
