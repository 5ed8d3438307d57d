package store

import (
	"context"
	"testing"
	"time"

	"excel-interviewer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()

	missing, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	session := &model.Session{
		ID:     "sess-1",
		Status: model.SessionInProgress,
		Scores: []float64{70},
	}
	require.NoError(t, s.Put(ctx, session, time.Hour))

	loaded, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, model.SessionInProgress, loaded.Status)
	assert.Equal(t, []float64{70.0}, loaded.Scores)
}

func TestMemoryStoreSnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()

	session := &model.Session{ID: "sess-1", Scores: []float64{70}}
	require.NoError(t, s.Put(ctx, session, time.Hour))

	// Caller keeps mutating its copy after Put; the snapshot must not move.
	session.Scores = append(session.Scores, 99)
	loaded, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []float64{70.0}, loaded.Scores)

	// Same for mutations of a loaded copy.
	loaded.Scores[0] = 1
	reloaded, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []float64{70.0}, reloaded.Scores)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore().(*memorySessionStore)

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, &model.Session{ID: "sess-1"}, time.Hour))

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	expired, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()

	require.NoError(t, s.Put(ctx, &model.Session{ID: "sess-1"}, time.Hour))
	require.NoError(t, s.Delete(ctx, "sess-1"))

	gone, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
