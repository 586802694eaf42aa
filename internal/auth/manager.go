package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
	"github.com/eyfs-nursery/eyfs-nursery/internal/users"
)

// Session is the result of a successful login.
type Session struct {
	User  users.User
	Token string
}

// Manager owns the authentication lifecycle: login with lockout, logout,
// password changes, account administration and rehydration of stored
// sessions. The role table is injected so permission checks have no ambient
// state.
type Manager struct {
	dir    users.Directory
	roles  rbac.Roles
	store  SessionStore
	signer *TokenSigner

	mu       sync.Mutex
	lockouts map[string]*lockout

	maxAttempts  int
	lockDuration time.Duration
	now          func() time.Time
	onLockout    func()
}

// OnLockout registers a callback fired when an identifier becomes locked.
func (m *Manager) OnLockout(fn func()) {
	m.onLockout = fn
}

// NewManager constructs a Manager with default lockout tunables.
func NewManager(dir users.Directory, roles rbac.Roles, store SessionStore, signer *TokenSigner) *Manager {
	return &Manager{
		dir:          dir,
		roles:        roles,
		store:        store,
		signer:       signer,
		lockouts:     make(map[string]*lockout),
		maxAttempts:  DefaultMaxAttempts,
		lockDuration: DefaultLockDuration,
		now:          time.Now,
	}
}

// Login authenticates the identifier (username or email, exact match) and
// password against the directory. All credential failures collapse into
// ErrInvalidCredentials; which factor failed is never revealed.
func (m *Manager) Login(ctx context.Context, identifier, password string) (*Session, error) {
	if err := m.gateAttempt(identifier); err != nil {
		return nil, err
	}

	user, err := m.dir.ByIdentifier(ctx, identifier)
	if err != nil || !user.IsActive() ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		m.recordFailure(identifier)
		return nil, shared.ErrInvalidCredentials
	}

	user.LastLogin = m.now()
	if err := m.dir.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("auth: stamp last login: %w", err)
	}

	token, sessionID, err := m.signer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	identity := Identity{UserID: user.ID, Name: user.DisplayName(), Role: user.Role}
	if err := m.store.Save(ctx, sessionID, identity, token, m.signer.TTL()); err != nil {
		return nil, err
	}

	m.clearLockout(identifier)
	return &Session{User: *user, Token: token}, nil
}

// Logout clears the persisted session records. It has no preconditions and
// always succeeds, even for garbage tokens.
func (m *Manager) Logout(ctx context.Context, token string) {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return
	}
	_ = m.store.Delete(ctx, claims.ID)
}

// Rehydrate resolves a stored session back into a live user. The token must
// verify, the stored records must match, and the referenced user must still
// exist and be active; otherwise the records are cleared and the caller is
// unauthenticated. Failures are never surfaced to the user.
func (m *Manager) Rehydrate(ctx context.Context, token string) (*users.User, error) {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	identity, storedToken, err := m.store.Load(ctx, claims.ID)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	if storedToken != token || identity.UserID != claims.Subject {
		_ = m.store.Delete(ctx, claims.ID)
		return nil, shared.ErrUnauthenticated
	}
	user, err := m.dir.ByID(ctx, identity.UserID)
	if err != nil || !user.IsActive() {
		_ = m.store.Delete(ctx, claims.ID)
		return nil, shared.ErrUnauthenticated
	}
	return user, nil
}

// ChangePassword verifies the caller's current password against the canonical
// directory record and stores the new one. Strength rules are enforced at the
// boundary, not here.
func (m *Manager) ChangePassword(ctx context.Context, caller *shared.Principal, current, next string) error {
	if caller == nil {
		return shared.ErrUnauthenticated
	}
	user, err := m.dir.ByID(ctx, caller.UserID)
	if err != nil {
		return shared.ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return shared.ErrPasswordMismatch
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return m.dir.Update(ctx, *user)
}

// ResetPassword sets a new password for another account without the old one.
// The caller must hold the users:edit permission.
func (m *Manager) ResetPassword(ctx context.Context, caller *shared.Principal, targetID, next string) error {
	if caller == nil || !m.roles.HasPermission(caller.Role, rbac.PermUsersEdit) {
		return shared.ErrPermissionDenied
	}
	user, err := m.dir.ByID(ctx, targetID)
	if err != nil {
		return shared.ErrNotFound
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return m.dir.Update(ctx, *user)
}

// AddUser creates a new directory entry. The new account is not logged in.
func (m *Manager) AddUser(ctx context.Context, input users.NewUser) (*users.User, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = users.StatusActive
	}
	user := users.User{
		ID:             uuid.NewString(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Username:       input.Username,
		PasswordHash:   hash,
		Phone:          input.Phone,
		Role:           input.Role,
		Status:         status,
		Avatar:         input.Avatar,
		CreatedAt:      m.now(),
		Qualifications: input.Qualifications,
		Rooms:          input.Rooms,
		ContractType:   input.ContractType,
	}
	if err := m.dir.Insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. Deleting the caller's own account is always
// rejected, regardless of permission level.
func (m *Manager) DeleteUser(ctx context.Context, caller *shared.Principal, targetID string) error {
	if caller == nil {
		return shared.ErrUnauthenticated
	}
	if caller.UserID == targetID {
		return shared.ErrSelfDelete
	}
	return m.dir.Delete(ctx, targetID)
}

// HasPermission reports whether the user's role grants the permission. A nil
// user has no role and therefore no permissions.
func (m *Manager) HasPermission(user *users.User, p rbac.Permission) bool {
	if user == nil {
		return false
	}
	return m.roles.HasPermission(user.Role, p)
}

// HasAnyPermission reports whether the user's role grants at least one of the
// permissions. An empty list is never satisfied.
func (m *Manager) HasAnyPermission(user *users.User, perms []rbac.Permission) bool {
	if user == nil {
		return false
	}
	return m.roles.HasAnyPermission(user.Role, perms)
}

// HasAllPermissions reports whether the user's role grants every permission.
func (m *Manager) HasAllPermissions(user *users.User, perms []rbac.Permission) bool {
	if user == nil {
		return len(perms) == 0
	}
	return m.roles.HasAllPermissions(user.Role, perms)
}

// gateAttempt applies the lockout gate for the identifier before any
// directory lookup happens.
func (m *Manager) gateAttempt(identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.lockouts[identifier]
	if !ok {
		return nil
	}
	return state.check(m.now())
}

func (m *Manager) recordFailure(identifier string) {
	m.mu.Lock()
	state, ok := m.lockouts[identifier]
	if !ok {
		state = &lockout{}
		m.lockouts[identifier] = state
	}
	locked := state.fail(m.now(), m.maxAttempts, m.lockDuration)
	m.mu.Unlock()
	if locked && m.onLockout != nil {
		m.onLockout()
	}
}

func (m *Manager) clearLockout(identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.lockouts[identifier]; ok {
		state.reset()
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}
