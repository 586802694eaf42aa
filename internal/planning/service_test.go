package planning

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

var monday = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func TestPlanAndWeekFilterByClass(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.Plan(ctx, NewActivity{Title: "Water play", ClassID: "caterpillars", WeekStart: monday, Day: time.Monday, Slot: SlotMorning})
	require.NoError(t, err)
	_, err = svc.Plan(ctx, NewActivity{Title: "Phonics", ClassID: "bumblebees", WeekStart: monday, Day: time.Tuesday, Slot: SlotAfternoon})
	require.NoError(t, err)

	all, err := svc.Week(ctx, monday, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := svc.Week(ctx, monday, "bumblebees")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "Phonics", filtered[0].Title)

	otherWeek, err := svc.Week(ctx, monday.AddDate(0, 0, 7), "")
	require.NoError(t, err)
	require.Empty(t, otherWeek)
}

func TestPlanRejectsWeekendAndBadSlot(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.Plan(ctx, NewActivity{Title: "Forest school", WeekStart: monday, Day: time.Saturday, Slot: SlotMorning})
	require.Error(t, err)

	_, err = svc.Plan(ctx, NewActivity{Title: "Forest school", WeekStart: monday, Day: time.Monday, Slot: "evening"})
	require.Error(t, err)

	_, err = svc.Plan(ctx, NewActivity{Title: "   ", WeekStart: monday, Day: time.Monday, Slot: SlotMorning})
	require.Error(t, err)
}

func TestMoveKeepsIdentityAndCreatedAt(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	planned, err := svc.Plan(ctx, NewActivity{Title: "Story time", WeekStart: monday, Day: time.Monday, Slot: SlotMorning})
	require.NoError(t, err)

	moved, err := svc.Move(ctx, planned.ID, NewActivity{Title: "Story time", WeekStart: monday, Day: time.Thursday, Slot: SlotAfternoon})
	require.NoError(t, err)
	require.Equal(t, planned.ID, moved.ID)
	require.Equal(t, planned.CreatedAt, moved.CreatedAt)
	require.Equal(t, time.Thursday, moved.Day)
	require.Equal(t, SlotAfternoon, moved.Slot)

	_, err = svc.Move(ctx, "missing", NewActivity{Title: "x", WeekStart: monday, Day: time.Monday, Slot: SlotMorning})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRemove(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	planned, err := svc.Plan(ctx, NewActivity{Title: "Messy play", WeekStart: monday, Day: time.Friday, Slot: SlotMorning})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, planned.ID))
	require.ErrorIs(t, svc.Remove(ctx, planned.ID), shared.ErrNotFound)
}

func TestCSVExportFeedsImport(t *testing.T) {
	src := NewService()
	ctx := context.Background()

	_, err := src.Plan(ctx, NewActivity{
		Title: "Junk modelling", Area: "expressive-arts", ClassID: "butterflies",
		WeekStart: monday, Day: time.Wednesday, Slot: SlotMorning,
		Resources: "boxes, glue", Notes: "small groups",
	})
	require.NoError(t, err)

	week, err := src.Week(ctx, monday, "")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, week))

	inputs, err := ReadCSV(strings.NewReader(buf.String()))
	require.NoError(t, err)

	dst := NewService()
	count, err := dst.Import(ctx, inputs)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	imported, err := dst.Week(ctx, monday, "butterflies")
	require.NoError(t, err)
	require.Len(t, imported, 1)
	require.Equal(t, "Junk modelling", imported[0].Title)
	require.Equal(t, time.Wednesday, imported[0].Day)
	require.Equal(t, "boxes, glue", imported[0].Resources)
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name,when\nfoo,bar\n"))
	require.Error(t, err)

	bad := "title,area,class_id,week_start,day,slot,resources,notes\n" +
		"Sand play,,,2026-09-07,sunday,am,,\n"
	_, err = ReadCSV(strings.NewReader(bad))
	require.ErrorContains(t, err, "line 2")

	badDate := "title,area,class_id,week_start,day,slot,resources,notes\n" +
		"Sand play,,,next week,monday,am,,\n"
	_, err = ReadCSV(strings.NewReader(badDate))
	require.ErrorContains(t, err, "week_start")
}
