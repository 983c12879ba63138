package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a migrated in-memory Store for testing.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// --- CreateEvent + GetEvent roundtrip ---

func TestCreateEvent_GetEvent_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	event := &Event{
		Date:    "2024-01-01T00:00:00.000Z",
		Type:    "note",
		RouteTo: "inbox",
		Body:    "<i>hello</i>",
		Tags:    []string{"go", "sqlite"},
		Summary: "a summary",
		Title:   "a title",
	}

	id, err := store.CreateEvent(ctx, event)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0), "row id should be assigned")
	assert.Equal(t, id, event.ID)

	got, err := store.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", got.Date)
	assert.Equal(t, "note", got.Type)
	assert.Equal(t, "inbox", got.RouteTo)
	// The store never alters free text; sanitization is an API concern.
	assert.Equal(t, "<i>hello</i>", got.Body)
	assert.Equal(t, []string{"go", "sqlite"}, got.Tags)
	assert.Equal(t, "a summary", got.Summary)
	assert.Equal(t, "a title", got.Title)
}

func TestCreateEvent_AssignsUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id1, err := store.CreateEvent(ctx, &Event{Date: "2024-01-01", Type: "a", Body: "x"})
	require.NoError(t, err)
	id2, err := store.CreateEvent(ctx, &Event{Date: "2024-01-02", Type: "b", Body: "y"})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "ids should be unique")
}

func TestCreateEvent_AbsentTagsReadBackNil(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEvent(ctx, &Event{Date: "2024-01-01", Type: "note", Body: "x"})
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Tags, "absent tags must read back as nil, not empty slice")
}

func TestGetEvent_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetEvent(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- ListEvents ---

func TestListEvents_OrderedByDateDescending(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	dates := []string{
		"2023-06-15T12:00:00.000Z",
		"2024-03-01T08:30:00.000Z",
		"2022-11-20T23:59:59.000Z",
	}
	for _, d := range dates {
		_, err := store.CreateEvent(ctx, &Event{Date: d, Type: "note", Body: "x"})
		require.NoError(t, err)
	}

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "2024-03-01T08:30:00.000Z", events[0].Date)
	assert.Equal(t, "2023-06-15T12:00:00.000Z", events[1].Date)
	assert.Equal(t, "2022-11-20T23:59:59.000Z", events[2].Date)
}

func TestListEvents_EmptyTableReturnsEmptySlice(t *testing.T) {
	store := openTestStore(t)

	events, err := store.ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

// --- UpdateEvent ---

func TestUpdateEvent_OverwritesAllFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEvent(ctx, &Event{
		Date: "2024-01-01T00:00:00.000Z", Type: "note", Body: "old",
		Tags: []string{"old"},
	})
	require.NoError(t, err)

	err = store.UpdateEvent(ctx, id, &Event{
		Date:    "2024-02-02T00:00:00.000Z",
		Type:    "update",
		RouteTo: "archive",
		Body:    "new body",
		Tags:    []string{"new", "tags"},
		Summary: "new summary",
		Title:   "new title",
	})
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-02T00:00:00.000Z", got.Date)
	assert.Equal(t, "update", got.Type)
	assert.Equal(t, "archive", got.RouteTo)
	assert.Equal(t, "new body", got.Body)
	assert.Equal(t, []string{"new", "tags"}, got.Tags)
	assert.Equal(t, "new summary", got.Summary)
	assert.Equal(t, "new title", got.Title)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	store := openTestStore(t)

	err := store.UpdateEvent(context.Background(), 424242, &Event{
		Date: "2024-01-01T00:00:00.000Z", Type: "note", Body: "x",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- DeleteEvent ---

func TestDeleteEvent_ThenGetNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEvent(ctx, &Event{Date: "2024-01-01", Type: "note", Body: "x"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteEvent(ctx, id))

	_, err = store.GetEvent(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	store := openTestStore(t)

	err := store.DeleteEvent(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- Stats ---

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, e := range []Event{
		{Date: "2024-01-01", Type: "note", Body: "a"},
		{Date: "2024-01-05", Type: "note", Body: "b"},
		{Date: "2024-01-03", Type: "release", Body: "c"},
	} {
		e := e
		_, err := store.CreateEvent(ctx, &e)
		require.NoError(t, err)
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalEvents)
	assert.Equal(t, "2024-01-01", stats.OldestDate)
	assert.Equal(t, "2024-01-05", stats.NewestDate)
	require.NotEmpty(t, stats.TopTypes)
	assert.Equal(t, "note", stats.TopTypes[0].Type)
	assert.Equal(t, int64(2), stats.TopTypes[0].Count)
}

func TestStats_EmptyTable(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalEvents)
	assert.Empty(t, stats.OldestDate)
	assert.Empty(t, stats.NewestDate)
}
