package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoualamHamza/InterviewSim/internal/models"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	created, err := store.Create(context.Background(), "id-1", "job text", models.RoleHR)
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Empty(t, created.Log)

	got, err := store.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCreateOverwrites(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	_, err := store.Create(context.Background(), "id-1", "first", models.RoleHR)
	require.NoError(t, err)
	_, err = store.Create(context.Background(), "id-1", "second", models.RoleTechnicalManager)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.JobDescription)
	assert.Equal(t, models.RoleTechnicalManager, got.Role)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	_, err := store.Create(context.Background(), "id-1", "job", models.RoleHR)
	require.NoError(t, err)
	require.NoError(t, store.Delete(context.Background(), "id-1"))

	_, err = store.Get(context.Background(), "id-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting again is a no-op
	assert.NoError(t, store.Delete(context.Background(), "id-1"))
}

func TestMemoryStoreSaveUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	err := store.Save(context.Background(), &models.Session{ID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()

	_, err := store.Create(context.Background(), "id-1", "job", models.RoleHR)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, err = store.Get(context.Background(), "id-1")
	assert.ErrorIs(t, err, ErrNotFound)

	store.sweep()
	assert.Equal(t, 0, store.Size())
}

func TestMemoryStoreSaveRefreshesTTL(t *testing.T) {
	store := NewMemoryStore(50 * time.Millisecond)
	defer store.Close()

	sess, err := store.Create(context.Background(), "id-1", "job", models.RoleHR)
	require.NoError(t, err)

	// keep writing within the TTL window; the session must stay alive
	for i := 0; i < 3; i++ {
		time.Sleep(30 * time.Millisecond)
		require.NoError(t, store.Save(context.Background(), sess))
	}

	_, err = store.Get(context.Background(), "id-1")
	assert.NoError(t, err)
}
