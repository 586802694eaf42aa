package children

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

func TestCreateNormalisesNames(t *testing.T) {
	svc := NewService(NewMemoryStore(nil))
	ctx := context.Background()

	child, err := svc.Create(ctx, NewChild{
		FirstName:   "  oLIVER ",
		LastName:    "bENNETT",
		DateOfBirth: time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "Oliver", child.FirstName)
	require.Equal(t, "Bennett", child.LastName)
	require.Equal(t, "Oliver Bennett", child.DisplayName())
	require.False(t, child.CreatedAt.IsZero())

	stored, err := svc.Get(ctx, child.ID)
	require.NoError(t, err)
	require.Equal(t, child.ID, stored.ID)
}

func TestUpdatePreservesIDAndCreatedAt(t *testing.T) {
	svc := NewService(NewMemoryStore(nil))
	ctx := context.Background()

	child, err := svc.Create(ctx, NewChild{FirstName: "Amelia", LastName: "Okafor"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, child.ID, NewChild{
		FirstName: "Amelia",
		LastName:  "Okafor",
		ClassID:   "butterflies",
		Allergies: []string{"peanuts"},
	})
	require.NoError(t, err)
	require.Equal(t, child.ID, updated.ID)
	require.Equal(t, child.CreatedAt, updated.CreatedAt)
	require.Equal(t, "butterflies", updated.ClassID)
	require.Equal(t, []string{"peanuts"}, updated.Allergies)

	_, err = svc.Update(ctx, "missing", NewChild{FirstName: "x", LastName: "y"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteRemovesFromRoll(t *testing.T) {
	svc := NewService(NewMemoryStore(SeedChildren()))
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	require.NoError(t, svc.Delete(ctx, list[0].ID))
	_, err = svc.Get(ctx, list[0].ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, list[0].ID), shared.ErrNotFound)
}
