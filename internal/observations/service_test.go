package observations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

func TestRecordRequiresNote(t *testing.T) {
	svc := NewService()

	_, err := svc.Record(context.Background(), NewObservation{ChildID: "c-1", Note: "   "})
	require.Error(t, err)
}

func TestRecordDefaultsObservedAt(t *testing.T) {
	svc := NewService()

	obs, err := svc.Record(context.Background(), NewObservation{
		ChildID:  "c-1",
		AuthorID: "u-1",
		Area:     AreaCommunication,
		Note:     "Retold the story in her own words.",
	})
	require.NoError(t, err)
	require.False(t, obs.ObservedAt.IsZero())
	require.Equal(t, obs.CreatedAt, obs.ObservedAt)

	dated, err := svc.Record(context.Background(), NewObservation{
		ChildID:    "c-1",
		Note:       "Counted to ten unprompted.",
		Area:       AreaMathematics,
		ObservedAt: time.Date(2026, time.June, 3, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, 2026, dated.ObservedAt.Year())
}

func TestListForChildNewestFirst(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	first, err := svc.Record(ctx, NewObservation{ChildID: "c-1", Note: "first"})
	require.NoError(t, err)
	second, err := svc.Record(ctx, NewObservation{ChildID: "c-1", Note: "second"})
	require.NoError(t, err)
	_, err = svc.Record(ctx, NewObservation{ChildID: "c-other", Note: "other child"})
	require.NoError(t, err)

	list, err := svc.ListForChild(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestAmendAndDelete(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	obs, err := svc.Record(ctx, NewObservation{ChildID: "c-1", Note: "original"})
	require.NoError(t, err)

	amended, err := svc.Amend(ctx, obs.ID, "revised", "model counting games")
	require.NoError(t, err)
	require.Equal(t, "revised", amended.Note)
	require.Equal(t, "model counting games", amended.NextSteps)

	// A blank note keeps the existing text.
	kept, err := svc.Amend(ctx, obs.ID, "  ", "")
	require.NoError(t, err)
	require.Equal(t, "revised", kept.Note)

	_, err = svc.Amend(ctx, "missing", "x", "")
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, obs.ID))
	require.ErrorIs(t, svc.Delete(ctx, obs.ID), shared.ErrNotFound)
}
