package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusFinalized, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusUploading, false},
		{StatusUploading, StatusPending, true},
		{StatusUploading, StatusFinalized, false},
		{StatusProcessing, StatusFinalized, true},
		{StatusProcessing, StatusUploading, false},
		{StatusFinalized, StatusPending, false},
		{StatusFinalized, StatusExpired, false},
		{StatusExpired, StatusPending, false},
		{StatusFailed, StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusFinalized.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusUploading.Terminal())
	assert.False(t, StatusProcessing.Terminal())
}

func TestDataset_TransitionToFinalized(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	d := &Dataset{Status: StatusPending, ExpiresAt: &expiresAt}

	now := time.Now().UTC()
	err := d.Transition(StatusFinalized, now)
	assert.NoError(t, err)
	assert.Equal(t, StatusFinalized, d.Status)
	assert.NotNil(t, d.FinalizedAt)
	assert.Equal(t, now, *d.FinalizedAt)
	assert.Nil(t, d.ExpiresAt, "finalized records never expire")
	assert.Equal(t, now, d.UpdatedAt)
}

func TestDataset_TransitionToExpired(t *testing.T) {
	d := &Dataset{Status: StatusPending}

	now := time.Now().UTC()
	assert.NoError(t, d.Transition(StatusExpired, now))
	assert.Equal(t, StatusExpired, d.Status)
	assert.NotNil(t, d.ExpiresAt)
}

func TestDataset_TransitionRejectsIllegalEdge(t *testing.T) {
	d := &Dataset{Status: StatusFinalized}

	err := d.Transition(StatusPending, time.Now())
	assert.Error(t, err)
	assert.Equal(t, StatusFinalized, d.Status, "failed transition must not mutate")
}

func TestDataset_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, (&Dataset{Status: StatusPending, ExpiresAt: &past}).IsExpired(now))
	assert.False(t, (&Dataset{Status: StatusPending, ExpiresAt: &future}).IsExpired(now))
	assert.False(t, (&Dataset{Status: StatusFinalized}).IsExpired(now))
	assert.True(t, (&Dataset{Status: StatusExpired}).IsExpired(now), "explicit status wins without a timestamp")
}
