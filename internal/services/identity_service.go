package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"identity/internal/models/db_models"
	"identity/internal/models/request_models"
	"identity/internal/models/response_models"
	"identity/internal/repositories"
	"identity/pkg/metrics"
	"identity/pkg/utils"
)

type IdentityServiceInterface interface {
	Authorize(ctx context.Context, request request_models.AuthorizeRequest) (*response_models.AuthResult, error)
	RegisterAdmin(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResult, error)
	LoginAdmin(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResult, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashed string) bool
}

// DefaultRoles holds the role ids new accounts receive, resolved from role names at startup.
type DefaultRoles struct {
	SignupRoleID uint
	AdminRoleID  uint
}

type IdentityService struct {
	repo      repositories.IdentityRepository
	issuer    SessionIssuer
	hasher    PasswordHasher
	pictures  PictureStore
	roles     DefaultRoles
	logger    *zap.Logger
	tracer    trace.Tracer
	dummyHash string
	now       func() time.Time
}

func NewIdentityService(
	repo repositories.IdentityRepository,
	issuer SessionIssuer,
	hasher PasswordHasher,
	pictures PictureStore,
	roles DefaultRoles,
	logger *zap.Logger,
) (IdentityServiceInterface, error) {
	// compared against when the email is unknown so both login failures cost the same
	dummyHash, err := hasher.Hash("identity-timing-equalizer")
	if err != nil {
		return nil, err
	}

	return &IdentityService{
		repo:      repo,
		issuer:    issuer,
		hasher:    hasher,
		pictures:  pictures,
		roles:     roles,
		logger:    logger,
		tracer:    otel.Tracer("identity/services"),
		dummyHash: dummyHash,
		now:       time.Now,
	}, nil
}

func (s *IdentityService) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "identity."+operation, trace.WithAttributes(attrs...))
}

func (s *IdentityService) finish(span trace.Span, operation string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, utils.KindOf(err).String())
	}
	span.End()
	metrics.ObserveOperation(operation, err)
}

// Authorize signs a provider identity up or in.
//
// A user that already has an account for the provider gets the stored session token back;
// no new token is minted in that case. Otherwise an account and session are created, and the
// user row too when the email is unknown. IsNewUser is true whenever an account was created.
func (s *IdentityService) Authorize(ctx context.Context, request request_models.AuthorizeRequest) (result *response_models.AuthResult, err error) {
	ctx, span := s.start(ctx, "authorize", attribute.String("provider", request.Provider))
	defer func() { s.finish(span, "authorize", err) }()

	var passwordHash *string
	if request.Provider == db_models.ProviderCredential && request.Password != "" {
		hashed, hashErr := s.hasher.Hash(request.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		passwordHash = &hashed
	}

	err = s.repo.Transaction(ctx, func(repo repositories.IdentityRepository) error {
		existing, findErr := repo.FindUserByEmail(ctx, request.Email)
		if findErr != nil {
			return findErr
		}

		if existing != nil {
			if request.Picture != "" {
				if picErr := s.storePicture(ctx, repo, existing, request.Picture); picErr != nil {
					return picErr
				}
			}

			account, accErr := repo.FindAccountByProviderAndUser(ctx, request.Provider, existing.ID)
			if accErr != nil {
				return accErr
			}
			if account != nil {
				var reuseErr error
				result, reuseErr = s.reuseSession(ctx, repo, existing, account)
				return reuseErr
			}
		}

		var createErr error
		result, createErr = s.createIdentity(ctx, repo, existing, request, passwordHash)
		return createErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *IdentityService) reuseSession(ctx context.Context, repo repositories.IdentityRepository, user *db_models.User, account *db_models.Account) (*response_models.AuthResult, error) {
	user.Account = account

	session, err := repo.FindSessionByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		s.logger.Info("linked account has no session, issuing one", zap.String("user_id", user.ID.String()))
		if session, err = s.issuer.Issue(user); err != nil {
			return nil, err
		}
		if err := repo.CreateSession(ctx, session); err != nil {
			return nil, err
		}
	}

	return &response_models.AuthResult{
		User:      user,
		Account:   account,
		Session:   session,
		Token:     session.SessionToken,
		IsNewUser: false,
	}, nil
}

func (s *IdentityService) createIdentity(ctx context.Context, repo repositories.IdentityRepository, existing *db_models.User, request request_models.AuthorizeRequest, passwordHash *string) (*response_models.AuthResult, error) {
	user := existing
	createdUser := user == nil
	if createdUser {
		user = BuildUser(request.Name, request.Email)
		if request.EmailVerified != nil && *request.EmailVerified {
			verifiedAt := s.now()
			user.EmailVerified = &verifiedAt
		}
		if err := repo.SaveUser(ctx, user); err != nil {
			return nil, err
		}
	}

	role, err := s.resolveRole(ctx, repo, s.roles.SignupRoleID)
	if err != nil {
		return nil, err
	}

	account := BuildAccount(request, user, role)
	account.Password = passwordHash
	user.Account = account

	session, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	if err := repo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	if createdUser {
		err = repo.CreateSession(ctx, session)
	} else {
		err = s.replaceSession(ctx, repo, session)
	}
	if err != nil {
		return nil, err
	}

	if createdUser && request.Picture != "" {
		if err := s.storePicture(ctx, repo, user, request.Picture); err != nil {
			return nil, err
		}
	}

	s.logger.Info("identity created",
		zap.String("user_id", user.ID.String()),
		zap.String("provider", account.Provider),
		zap.Bool("new_user", createdUser))

	return &response_models.AuthResult{
		User:      user,
		Account:   account,
		Session:   session,
		Token:     session.SessionToken,
		IsNewUser: true,
	}, nil
}

// RegisterAdmin always creates a user with a credential account.
func (s *IdentityService) RegisterAdmin(ctx context.Context, request request_models.RegisterRequest) (result *response_models.AuthResult, err error) {
	ctx, span := s.start(ctx, "registerAdmin")
	defer func() { s.finish(span, "registerAdmin", err) }()

	// hashing is slow, keep it outside the transaction
	hashed, err := s.hasher.Hash(request.Password)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(repo repositories.IdentityRepository) error {
		verifiedAt := s.now()
		user := &db_models.User{
			Email:         request.Email,
			EmailVerified: &verifiedAt,
			FirstName:     request.FirstName,
			LastName:      request.LastName,
		}
		if err := repo.SaveUser(ctx, user); err != nil {
			return err
		}

		role, err := s.resolveRole(ctx, repo, s.roles.AdminRoleID)
		if err != nil {
			return err
		}

		account := &db_models.Account{
			UserID:   user.ID,
			RoleID:   role.ID,
			Role:     role,
			Provider: db_models.ProviderCredential,
			Password: &hashed,
		}
		if err := repo.SaveAccount(ctx, account); err != nil {
			return err
		}
		user.Account = account

		session, err := s.issuer.Issue(user)
		if err != nil {
			return err
		}
		if err := repo.CreateSession(ctx, session); err != nil {
			return err
		}

		result = &response_models.AuthResult{
			User:      user,
			Account:   account,
			Session:   session,
			Token:     session.SessionToken,
			IsNewUser: true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LoginAdmin verifies credentials against the user's credential account and refreshes the
// session row in place. Unknown email and wrong password fail with the same error.
func (s *IdentityService) LoginAdmin(ctx context.Context, request request_models.LoginRequest) (result *response_models.AuthResult, err error) {
	ctx, span := s.start(ctx, "loginAdmin")
	defer func() { s.finish(span, "loginAdmin", err) }()

	err = s.repo.Transaction(ctx, func(repo repositories.IdentityRepository) error {
		user, err := repo.FindUserWithAccountByEmail(ctx, request.Email, db_models.ProviderCredential)
		if err != nil {
			return err
		}
		if !s.checkPassword(user, request.Password) {
			return utils.Unauthorized(utils.MsgInvalidCredentials)
		}

		session, err := s.issuer.Issue(user)
		if err != nil {
			return err
		}
		if err := s.replaceSession(ctx, repo, session); err != nil {
			return err
		}

		result = &response_models.AuthResult{
			User:      user,
			Account:   user.Account,
			Session:   session,
			Token:     session.SessionToken,
			IsNewUser: false,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *IdentityService) checkPassword(user *db_models.User, password string) bool {
	if user == nil || user.Account == nil || user.Account.Password == nil {
		s.hasher.Verify(password, s.dummyHash)
		return false
	}
	return s.hasher.Verify(password, *user.Account.Password)
}

// replaceSession keeps one session row per user: an existing row is overwritten by id.
func (s *IdentityService) replaceSession(ctx context.Context, repo repositories.IdentityRepository, fresh *db_models.Session) error {
	prior, err := repo.FindSessionByUser(ctx, fresh.UserID)
	if err != nil {
		return err
	}
	if prior == nil {
		return repo.CreateSession(ctx, fresh)
	}

	fresh.ID = prior.ID
	fresh.CreatedAt = prior.CreatedAt
	s.logger.Debug("session replaced", zap.String("user_id", fresh.UserID.String()), zap.String("session_id", prior.ID.String()))
	return repo.SaveSession(ctx, fresh)
}

func (s *IdentityService) resolveRole(ctx context.Context, repo repositories.IdentityRepository, id uint) (*db_models.Role, error) {
	role, err := repo.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		s.logger.Error("default role missing", zap.Uint("role_id", id))
		return nil, utils.Unauthorized(utils.MsgForbiddenResource)
	}
	return role, nil
}

// storePicture is best effort: a failed download is logged and the flow continues.
func (s *IdentityService) storePicture(ctx context.Context, repo repositories.IdentityRepository, user *db_models.User, pictureURL string) error {
	publicURL, err := s.pictures.Save(ctx, pictureURL, user.ID)
	if err != nil {
		s.logger.Warn("profile picture download failed",
			zap.String("user_id", user.ID.String()),
			zap.String("url", pictureURL),
			zap.Error(err))
		return nil
	}

	user.Image = &publicURL
	return repo.SaveUser(ctx, user)
}

// BuildUser splits name on whitespace: the first token is the first name, the rest the last.
func BuildUser(name, email string) *db_models.User {
	user := &db_models.User{Email: email}

	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		user.FirstName = strings.TrimSpace(name)
	case 1:
		user.FirstName = fields[0]
	default:
		user.FirstName = fields[0]
		user.LastName = strings.Join(fields[1:], " ")
	}
	return user
}

// BuildAccount copies only the provider fields present on the request.
func BuildAccount(request request_models.AuthorizeRequest, user *db_models.User, role *db_models.Role) *db_models.Account {
	account := &db_models.Account{
		UserID:   user.ID,
		RoleID:   role.ID,
		Role:     role,
		Provider: request.Provider,
	}

	optional := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}

	account.Type = optional(request.Type)
	account.AccessToken = optional(request.AccessToken)
	account.ProviderAccountID = optional(request.ProviderAccountID)
	account.RefreshToken = optional(request.RefreshToken)
	account.Scope = optional(request.Scope)
	account.TokenType = optional(request.TokenType)
	account.IDToken = optional(request.IDToken)
	if request.ExpiresAt > 0 {
		expiresAt := request.ExpiresAt
		account.ExpiresAt = &expiresAt
	}
	return account
}
