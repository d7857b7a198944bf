package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"identity/internal/models/db_models"
	"identity/internal/repositories"
	"identity/pkg/utils"
)

// memoryTables is the committed state behind memoryRepo.
type memoryTables struct {
	users    map[uuid.UUID]db_models.User
	accounts map[uuid.UUID]db_models.Account
	sessions map[uuid.UUID]db_models.Session
	roles    map[uint]db_models.Role
}

func (t memoryTables) clone() memoryTables {
	c := memoryTables{
		users:    make(map[uuid.UUID]db_models.User, len(t.users)),
		accounts: make(map[uuid.UUID]db_models.Account, len(t.accounts)),
		sessions: make(map[uuid.UUID]db_models.Session, len(t.sessions)),
		roles:    make(map[uint]db_models.Role, len(t.roles)),
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.accounts {
		c.accounts[k] = v
	}
	for k, v := range t.sessions {
		c.sessions[k] = v
	}
	for k, v := range t.roles {
		c.roles[k] = v
	}
	return c
}

// memoryRepo is a transactional in-memory IdentityRepository.
// Writes inside Transaction are discarded when fn fails.
type memoryRepo struct {
	mu     *sync.Mutex
	tables *memoryTables
	clock  *time.Time

	sessionInserts int
	sessionUpdates int

	failCreateSession error
	failSaveAccount   error
	failFindUser      error
}

func newMemoryRepo(roles ...db_models.Role) *memoryRepo {
	tables := memoryTables{
		users:    map[uuid.UUID]db_models.User{},
		accounts: map[uuid.UUID]db_models.Account{},
		sessions: map[uuid.UUID]db_models.Session{},
		roles:    map[uint]db_models.Role{},
	}
	for _, role := range roles {
		tables.roles[role.ID] = role
	}
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &memoryRepo{mu: &sync.Mutex{}, tables: &tables, clock: &clock}
}

func defaultRoles() []db_models.Role {
	return []db_models.Role{
		{ID: 1, Name: db_models.RoleSuperAdmin},
		{ID: 2, Name: db_models.RoleCustomer},
	}
}

// tick hands out strictly increasing timestamps so created_at ordering is stable.
func (r *memoryRepo) tick() time.Time {
	*r.clock = r.clock.Add(time.Second)
	return *r.clock
}

func (r *memoryRepo) Transaction(ctx context.Context, fn func(repo repositories.IdentityRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.tables.clone()
	tx := &memoryRepo{
		mu:                &sync.Mutex{},
		tables:            &working,
		clock:             r.clock,
		failCreateSession: r.failCreateSession,
		failSaveAccount:   r.failSaveAccount,
		failFindUser:      r.failFindUser,
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return utils.Persistence(err)
	}

	*r.tables = working
	r.sessionInserts += tx.sessionInserts
	r.sessionUpdates += tx.sessionUpdates
	return nil
}

func (r *memoryRepo) FindUserByEmail(_ context.Context, email string) (*db_models.User, error) {
	if r.failFindUser != nil {
		return nil, utils.Persistence(r.failFindUser)
	}
	for _, user := range r.tables.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) FindUserWithAccountByEmail(ctx context.Context, email, provider string) (*db_models.User, error) {
	user, err := r.FindUserByEmail(ctx, email)
	if err != nil || user == nil {
		return user, err
	}
	account, err := r.FindAccountByProviderAndUser(ctx, provider, user.ID)
	if err != nil {
		return nil, err
	}
	user.Account = account
	return user, nil
}

func (r *memoryRepo) FindAccountByProviderAndUser(_ context.Context, provider string, userID uuid.UUID) (*db_models.Account, error) {
	for _, account := range r.accountsOf(userID) {
		if account.Provider == provider {
			a := account
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) FindSessionByUser(_ context.Context, userID uuid.UUID) (*db_models.Session, error) {
	sessions := r.sessionsOf(userID)
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func (r *memoryRepo) FindRoleByID(_ context.Context, id uint) (*db_models.Role, error) {
	role, ok := r.tables.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *memoryRepo) SaveUser(_ context.Context, user *db_models.User) error {
	for id, other := range r.tables.users {
		if other.Email == user.Email && id != user.ID {
			return utils.PersistenceMsg("duplicate record", errors.New("user_email_key"))
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
		user.CreatedAt = r.tick()
	}
	user.UpdatedAt = r.tick()

	row := *user
	row.Account = nil
	row.Sessions = nil
	r.tables.users[row.ID] = row
	return nil
}

func (r *memoryRepo) SaveAccount(_ context.Context, account *db_models.Account) error {
	if r.failSaveAccount != nil {
		return utils.Persistence(r.failSaveAccount)
	}
	if _, ok := r.tables.users[account.UserID]; !ok {
		return utils.Persistence(errors.New("user_account_user_id_fkey"))
	}
	for id, other := range r.tables.accounts {
		if other.UserID == account.UserID && other.Provider == account.Provider && id != account.ID {
			return utils.PersistenceMsg("duplicate record", errors.New("idx_user_account_provider"))
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
		account.CreatedAt = r.tick()
	}
	account.UpdatedAt = r.tick()

	row := *account
	row.Role = nil
	r.tables.accounts[row.ID] = row
	return nil
}

func (r *memoryRepo) CreateSession(_ context.Context, session *db_models.Session) error {
	if r.failCreateSession != nil {
		return utils.Persistence(r.failCreateSession)
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if _, exists := r.tables.sessions[session.ID]; exists {
		return utils.PersistenceMsg("duplicate record", errors.New("user_session_pkey"))
	}
	for _, other := range r.tables.sessions {
		if other.SessionToken == session.SessionToken {
			return utils.PersistenceMsg("duplicate record", errors.New("user_session_session_token_key"))
		}
	}
	session.CreatedAt = r.tick()
	session.UpdatedAt = session.CreatedAt
	r.tables.sessions[session.ID] = *session
	r.sessionInserts++
	return nil
}

func (r *memoryRepo) SaveSession(ctx context.Context, session *db_models.Session) error {
	if session.ID == uuid.Nil {
		return r.CreateSession(ctx, session)
	}
	session.UpdatedAt = r.tick()
	r.tables.sessions[session.ID] = *session
	r.sessionUpdates++
	return nil
}

func (r *memoryRepo) accountsOf(userID uuid.UUID) []db_models.Account {
	var out []db_models.Account
	for _, account := range r.tables.accounts {
		if account.UserID != userID {
			continue
		}
		if role, ok := r.tables.roles[account.RoleID]; ok {
			account.Role = &role
		}
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memoryRepo) sessionsOf(userID uuid.UUID) []db_models.Session {
	var out []db_models.Session
	for _, session := range r.tables.sessions {
		if session.UserID == userID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// committed reads outside any transaction.
func (r *memoryRepo) committed() memoryTables {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tables.clone()
}

type stubPictureStore struct {
	url    string
	err    error
	calls  []string
	onSave func()
}

func (s *stubPictureStore) Save(_ context.Context, url string, userID uuid.UUID) (string, error) {
	s.calls = append(s.calls, url)
	if s.onSave != nil {
		s.onSave()
	}
	if s.err != nil {
		return "", s.err
	}
	if s.url != "" {
		return s.url, nil
	}
	return "http://localhost:8080/static/" + ProfilePicturePath(userID), nil
}
