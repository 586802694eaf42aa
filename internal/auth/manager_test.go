package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
	"github.com/eyfs-nursery/eyfs-nursery/internal/users"
	_ "github.com/eyfs-nursery/eyfs-nursery/testing"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// countingDirectory records lookups so tests can assert the locked path never
// touches the directory.
type countingDirectory struct {
	users.Directory
	lookups int
}

func (d *countingDirectory) ByIdentifier(ctx context.Context, identifier string) (*users.User, error) {
	d.lookups++
	return d.Directory.ByIdentifier(ctx, identifier)
}

func seedDirectory(t *testing.T) *users.MemoryDirectory {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	inactiveHash, err := bcrypt.GenerateFromPassword([]byte("leader123"), bcrypt.MinCost)
	require.NoError(t, err)
	return users.NewMemoryDirectory([]users.User{
		{
			ID:           "u-sarah",
			FirstName:    "Sarah",
			LastName:     "Johnson",
			Email:        "sarah.johnson@brightsprouts.co.uk",
			Username:     "sarah.johnson",
			PasswordHash: string(hash),
			Role:         rbac.RoleAdministrator,
			Status:       users.StatusActive,
			CreatedAt:    time.Date(2023, 9, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           "u-tom",
			FirstName:    "Tom",
			LastName:     "Harris",
			Email:        "tom.harris@brightsprouts.co.uk",
			Username:     "tom.harris",
			PasswordHash: string(inactiveHash),
			Role:         rbac.RoleRoomLeader,
			Status:       users.StatusInactive,
			CreatedAt:    time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		},
	})
}

func newTestManager(t *testing.T, dir users.Directory) (*Manager, *fakeClock, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clock := &fakeClock{now: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)}
	signer := NewTokenSigner("test-secret", time.Hour)
	signer.now = clock.Now
	m := NewManager(dir, rbac.DefaultRoles(), NewRedisSessionStore(client), signer)
	m.now = clock.Now
	return m, clock, client
}

func TestLoginSuccessStampsLastLogin(t *testing.T) {
	dir := seedDirectory(t)
	m, clock, client := newTestManager(t, dir)

	session, err := m.Login(context.Background(), "sarah.johnson", "admin123")
	require.NoError(t, err)
	require.Equal(t, "u-sarah", session.User.ID)
	require.Equal(t, clock.Now(), session.User.LastLogin)
	require.NotEmpty(t, session.Token)

	// Both storage records must exist.
	keys, err := client.Keys(context.Background(), "eyfs_*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 2)

	// The directory record was updated too, not just the returned copy.
	stored, err := dir.ByID(context.Background(), "u-sarah")
	require.NoError(t, err)
	require.Equal(t, clock.Now(), stored.LastLogin)
}

func TestLoginByEmail(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	_, err := m.Login(context.Background(), "sarah.johnson@brightsprouts.co.uk", "admin123")
	require.NoError(t, err)
}

func TestLoginFailuresAreUndifferentiated(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	// Wrong password, unknown user and inactive account all read the same.
	_, wrongPass := m.Login(ctx, "sarah.johnson", "nope")
	_, unknown := m.Login(ctx, "nobody", "nope")
	_, inactive := m.Login(ctx, "tom.harris", "leader123")

	for _, err := range []error{wrongPass, unknown, inactive} {
		require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	}
}

func TestLockoutAfterThreeFailures(t *testing.T) {
	seeded := seedDirectory(t)
	dir := &countingDirectory{Directory: seeded}
	m, clock, _ := newTestManager(t, dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.Login(ctx, "sarah.johnson", "wrong")
		require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	}
	require.Equal(t, 3, dir.lookups)

	// Fourth attempt is rejected before the directory is consulted and does
	// not advance the counter.
	_, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.ErrorIs(t, err, shared.ErrAccountLocked)
	require.Contains(t, err.Error(), "15 minutes")
	require.Equal(t, 3, dir.lookups)

	_, err = m.Login(ctx, "sarah.johnson", "admin123")
	require.ErrorIs(t, err, shared.ErrAccountLocked)
	require.Equal(t, 3, dir.lookups)

	// Remaining minutes round up.
	clock.Advance(14*time.Minute + 30*time.Second)
	_, err = m.Login(ctx, "sarah.johnson", "admin123")
	require.ErrorIs(t, err, shared.ErrAccountLocked)
	require.Contains(t, err.Error(), "1 minutes")

	// After the window the attempt is evaluated fresh on credentials alone.
	clock.Advance(time.Minute)
	session, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)
	require.Equal(t, "u-sarah", session.User.ID)
}

func TestLockoutExpiryResetsCounter(t *testing.T) {
	m, clock, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = m.Login(ctx, "sarah.johnson", "wrong")
	}
	clock.Advance(16 * time.Minute)

	// One failure in the fresh window must not re-lock immediately.
	_, err := m.Login(ctx, "sarah.johnson", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	_, err = m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)
}

func TestSuccessfulLoginResetsAttempts(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	_, _ = m.Login(ctx, "sarah.johnson", "wrong")
	_, _ = m.Login(ctx, "sarah.johnson", "wrong")

	// Success in Normal(2) returns to Normal(0): two more failures do not lock.
	_, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)

	_, _ = m.Login(ctx, "sarah.johnson", "wrong")
	_, _ = m.Login(ctx, "sarah.johnson", "wrong")
	_, err = m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)
}

func TestLoginTwiceIsIdempotentOnState(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	first, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)
	second, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)

	// Both sessions rehydrate independently; last write wins on nothing.
	_, err = m.Rehydrate(ctx, first.Token)
	require.NoError(t, err)
	_, err = m.Rehydrate(ctx, second.Token)
	require.NoError(t, err)
}

func TestLogoutClearsStorage(t *testing.T) {
	m, _, client := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	session, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)

	m.Logout(ctx, session.Token)
	keys, err := client.Keys(ctx, "eyfs_*").Result()
	require.NoError(t, err)
	require.Empty(t, keys)

	_, err = m.Rehydrate(ctx, session.Token)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)

	// Logging out garbage never fails.
	m.Logout(ctx, "not-a-token")
}

func TestRehydrateClearsStorageWhenUserDeactivated(t *testing.T) {
	dir := seedDirectory(t)
	m, _, client := newTestManager(t, dir)
	ctx := context.Background()

	session, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)

	user, err := dir.ByID(ctx, "u-sarah")
	require.NoError(t, err)
	user.Status = users.StatusInactive
	require.NoError(t, dir.Update(ctx, *user))

	_, err = m.Rehydrate(ctx, session.Token)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)

	keys, err := client.Keys(ctx, "eyfs_*").Result()
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestRehydrateRejectsTamperedToken(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	session, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)

	parts := strings.Split(session.Token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA"
	_, err = m.Rehydrate(ctx, tampered)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestRehydrateRejectsExpiredToken(t *testing.T) {
	m, clock, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	session, err := m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = m.Rehydrate(ctx, session.Token)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	dir := seedDirectory(t)
	m, _, _ := newTestManager(t, dir)
	ctx := context.Background()
	caller := &shared.Principal{UserID: "u-sarah", Role: rbac.RoleAdministrator}

	err := m.ChangePassword(ctx, caller, "wrong", "NewPass1!")
	require.ErrorIs(t, err, shared.ErrPasswordMismatch)

	require.NoError(t, m.ChangePassword(ctx, caller, "admin123", "NewPass1!"))

	_, err = m.Login(ctx, "sarah.johnson", "admin123")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	_, err = m.Login(ctx, "sarah.johnson", "NewPass1!")
	require.NoError(t, err)

	require.ErrorIs(t, m.ChangePassword(ctx, nil, "x", "y"), shared.ErrUnauthenticated)
}

func TestResetPasswordRequiresUsersEdit(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	practitioner := &shared.Principal{UserID: "u-x", Role: rbac.RolePractitioner}
	err := m.ResetPassword(ctx, practitioner, "u-tom", "NewPass1!")
	require.ErrorIs(t, err, shared.ErrPermissionDenied)

	admin := &shared.Principal{UserID: "u-sarah", Role: rbac.RoleAdministrator}
	err = m.ResetPassword(ctx, admin, "missing", "NewPass1!")
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, m.ResetPassword(ctx, admin, "u-tom", "NewPass1!"))
}

func TestAddUserDoesNotLogIn(t *testing.T) {
	dir := seedDirectory(t)
	m, clock, client := newTestManager(t, dir)
	ctx := context.Background()

	user, err := m.AddUser(ctx, users.NewUser{
		FirstName: "Amy",
		LastName:  "Brown",
		Email:     "amy.brown@brightsprouts.co.uk",
		Username:  "amy.brown",
		Password:  "Sunshine1!",
		Role:      rbac.RolePractitioner,
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, clock.Now(), user.CreatedAt)
	require.True(t, user.LastLogin.IsZero())
	require.Equal(t, users.StatusActive, user.Status)

	// No session material was created for the new account.
	keys, err := client.Keys(ctx, "eyfs_*").Result()
	require.NoError(t, err)
	require.Empty(t, keys)

	_, err = m.Login(ctx, "amy.brown", "Sunshine1!")
	require.NoError(t, err)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	dir := seedDirectory(t)
	m, _, _ := newTestManager(t, dir)
	ctx := context.Background()

	admin := &shared.Principal{UserID: "u-sarah", Role: rbac.RoleAdministrator}
	err := m.DeleteUser(ctx, admin, "u-sarah")
	require.ErrorIs(t, err, shared.ErrSelfDelete)

	require.NoError(t, m.DeleteUser(ctx, admin, "u-tom"))
	_, err = dir.ByID(ctx, "u-tom")
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.ErrorIs(t, m.DeleteUser(ctx, nil, "u-sarah"), shared.ErrUnauthenticated)
}

func TestBoundPermissionChecks(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))

	admin := &users.User{ID: "u-sarah", Role: rbac.RoleAdministrator}
	practitioner := &users.User{ID: "u-p", Role: rbac.RolePractitioner}

	require.True(t, m.HasPermission(admin, rbac.PermUsersDelete))
	require.False(t, m.HasPermission(practitioner, rbac.PermUsersDelete))
	require.False(t, m.HasPermission(nil, rbac.PermChildrenView))

	require.False(t, m.HasAnyPermission(admin, nil))
	require.True(t, m.HasAllPermissions(admin, nil))
	require.True(t, m.HasAllPermissions(nil, nil))

	var unknown users.User
	unknown.Role = "visitor"
	require.False(t, m.HasPermission(&unknown, rbac.PermChildrenView))
}

func TestLockoutErrorDoesNotLeakIntoOtherIdentifiers(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = m.Login(ctx, "nobody", "wrong")
	}
	_, err := m.Login(ctx, "nobody", "wrong")
	require.ErrorIs(t, err, shared.ErrAccountLocked)

	// Another identifier is unaffected.
	_, err = m.Login(ctx, "sarah.johnson", "admin123")
	require.NoError(t, err)
}

func TestRehydrateUnknownErrors(t *testing.T) {
	m, _, _ := newTestManager(t, seedDirectory(t))
	_, err := m.Rehydrate(context.Background(), "")
	require.True(t, errors.Is(err, shared.ErrUnauthenticated))
}
