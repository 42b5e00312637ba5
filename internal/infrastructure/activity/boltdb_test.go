package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, action := range []string{domain.ActionTaskCreated, domain.ActionTaskMoved, domain.ActionTaskDeleted} {
		require.NoError(t, store.Append(domain.Activity{
			ProjectID: "p1",
			ActorID:   "u1",
			Action:    action,
			At:        base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := store.Recent("p1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.ActionTaskDeleted, entries[0].Action)
	assert.Equal(t, domain.ActionTaskCreated, entries[2].Action)
	assert.NotEmpty(t, entries[0].ID, "append must assign an id")
}

func TestRecentScopedToProject(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Append(domain.Activity{ProjectID: "p1", Action: domain.ActionTaskCreated, At: now}))
	require.NoError(t, store.Append(domain.Activity{ProjectID: "p2", Action: domain.ActionTaskCreated, At: now}))

	entries, err := store.Recent("p1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].ProjectID)
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(domain.Activity{
			ProjectID: "p1",
			Action:    domain.ActionTaskCreated,
			At:        base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.Recent("p1", 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCleanupDropsOldEntries(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Append(domain.Activity{ProjectID: "p1", Action: domain.ActionTaskCreated, At: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.Append(domain.Activity{ProjectID: "p1", Action: domain.ActionTaskMoved, At: now}))

	require.NoError(t, store.Cleanup(now.Add(-24*time.Hour)))

	entries, err := store.Recent("p1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionTaskMoved, entries[0].Action)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}
