package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiredByOnlyForLiveSessions(t *testing.T) {
	start := time.Now().Add(-2 * time.Hour)
	limit := 45 * time.Minute

	session := &Session{Status: SessionInProgress, StartTime: start}
	assert.True(t, session.ExpiredBy(time.Now(), limit))

	session.Status = SessionPaused
	assert.True(t, session.ExpiredBy(time.Now(), limit))

	// Terminal and pending sessions never expire again.
	for _, status := range []SessionStatus{SessionPending, SessionCompleted, SessionCancelled, SessionExpired} {
		session.Status = status
		assert.False(t, session.ExpiredBy(time.Now(), limit), string(status))
	}
}

func TestAverageScore(t *testing.T) {
	session := &Session{}
	assert.Equal(t, 0.0, session.AverageScore())

	session.Scores = []float64{60, 80}
	assert.Equal(t, 70.0, session.AverageScore())
}

func TestAsked(t *testing.T) {
	session := &Session{QuestionsAsked: []string{"basic_001", "inter_002"}}
	assert.True(t, session.Asked("inter_002"))
	assert.False(t, session.Asked("adv_001"))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, SessionCompleted.Terminal())
	assert.True(t, SessionCancelled.Terminal())
	assert.True(t, SessionExpired.Terminal())
	assert.False(t, SessionInProgress.Terminal())
	assert.False(t, SessionPaused.Terminal())
	assert.False(t, SessionPending.Terminal())
}
