package classes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

func TestSeededRooms(t *testing.T) {
	svc := NewService(SeedClasses())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	require.ElementsMatch(t, []string{"Caterpillars", "Butterflies", "Bumblebees"}, names)
}

func TestCreateAndUpdate(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Class{Name: "   "})
	require.Error(t, err)

	created, err := svc.Create(ctx, Class{Name: " Ladybirds ", AgeRange: "2-3", Capacity: 10})
	require.NoError(t, err)
	require.Equal(t, "Ladybirds", created.Name)
	require.NotEmpty(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, Class{Name: "Ladybirds", AgeRange: "2-3", Capacity: 12})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, 12, updated.Capacity)

	_, err = svc.Update(ctx, "missing", Class{Name: "x"})
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
}
