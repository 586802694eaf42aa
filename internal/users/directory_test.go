package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

func fixtureUser(id, username, email string) User {
	return User{
		ID:       id,
		Username: username,
		Email:    email,
		Role:     "practitioner",
		Status:   StatusActive,
	}
}

func TestByIdentifierMatchesUsernameOrEmailExactly(t *testing.T) {
	dir := NewMemoryDirectory([]User{
		fixtureUser("u-1", "kate.moss", "kate.moss@nursery.test"),
	})
	ctx := context.Background()

	byUsername, err := dir.ByIdentifier(ctx, "kate.moss")
	require.NoError(t, err)
	require.Equal(t, "u-1", byUsername.ID)

	byEmail, err := dir.ByIdentifier(ctx, "kate.moss@nursery.test")
	require.NoError(t, err)
	require.Equal(t, "u-1", byEmail.ID)

	// No partial or case-folded matching.
	_, err = dir.ByIdentifier(ctx, "kate")
	require.ErrorIs(t, err, shared.ErrNotFound)
	_, err = dir.ByIdentifier(ctx, "Kate.Moss")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInsertRejectsDuplicates(t *testing.T) {
	dir := NewMemoryDirectory([]User{
		fixtureUser("u-1", "kate.moss", "kate.moss@nursery.test"),
	})
	ctx := context.Background()

	require.ErrorIs(t, dir.Insert(ctx, fixtureUser("u-2", "kate.moss", "other@nursery.test")), shared.ErrDuplicate)
	require.ErrorIs(t, dir.Insert(ctx, fixtureUser("u-2", "other", "kate.moss@nursery.test")), shared.ErrDuplicate)
	require.NoError(t, dir.Insert(ctx, fixtureUser("u-2", "other", "other@nursery.test")))

	list, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestUpdateAndDeleteUnknownUser(t *testing.T) {
	dir := NewMemoryDirectory(nil)
	ctx := context.Background()

	require.ErrorIs(t, dir.Update(ctx, fixtureUser("ghost", "g", "g@nursery.test")), shared.ErrNotFound)
	require.ErrorIs(t, dir.Delete(ctx, "ghost"), shared.ErrNotFound)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	dir := NewMemoryDirectory([]User{
		fixtureUser("u-1", "kate.moss", "kate.moss@nursery.test"),
	})
	ctx := context.Background()

	got, err := dir.ByID(ctx, "u-1")
	require.NoError(t, err)
	got.Username = "mutated"

	again, err := dir.ByID(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, "kate.moss", again.Username)
}

func TestSeedUsersShapes(t *testing.T) {
	seed := SeedUsers()
	require.Len(t, seed, 5)

	var inactive int
	for _, u := range seed {
		require.NotEmpty(t, u.ID)
		require.NotEmpty(t, u.PasswordHash)
		require.True(t, strings.HasPrefix(u.PasswordHash, "$2"), "seed passwords must be bcrypt hashes")
		if !u.IsActive() {
			inactive++
		}
	}
	require.Equal(t, 1, inactive)
}
