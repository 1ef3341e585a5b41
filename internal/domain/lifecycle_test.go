package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeRequest(expiresOn time.Time) *Request {
	return &Request{
		Token:     "tok",
		Status:    RequestStatusActive,
		CreatedOn: expiresOn.AddDate(0, 0, -30),
		ExpiresOn: expiresOn,
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("BeforeExpiry", func(t *testing.T) {
		assert.False(t, IsExpired(activeRequest(now.Add(time.Hour)), now))
	})

	t.Run("ExactlyAtExpiry", func(t *testing.T) {
		// now > expiryDate is strict; the boundary instant is still valid.
		assert.False(t, IsExpired(activeRequest(now), now))
	})

	t.Run("AfterExpiry", func(t *testing.T) {
		assert.True(t, IsExpired(activeRequest(now.Add(-time.Second)), now))
	})

	t.Run("IndependentOfStoredStatus", func(t *testing.T) {
		req := activeRequest(now.Add(-time.Hour))
		req.Status = RequestStatusDone
		assert.True(t, IsExpired(req, now))
	})
}

func TestCanTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ActiveWithinWindow", func(t *testing.T) {
		allowed, reason := CanTransition(activeRequest(now.Add(24*time.Hour)), now)
		assert.True(t, allowed)
		assert.Equal(t, DenialNone, reason)
	})

	t.Run("ActivePastExpiry", func(t *testing.T) {
		allowed, reason := CanTransition(activeRequest(now.Add(-time.Minute)), now)
		assert.False(t, allowed)
		assert.Equal(t, DenialExpired, reason)
	})

	t.Run("DoneWithinWindow", func(t *testing.T) {
		req := activeRequest(now.Add(24 * time.Hour))
		req.Status = RequestStatusDone
		allowed, reason := CanTransition(req, now)
		assert.False(t, allowed)
		assert.Equal(t, DenialTerminal, reason)
	})

	t.Run("ExpiredStatus", func(t *testing.T) {
		req := activeRequest(now.Add(24 * time.Hour))
		req.Status = RequestStatusExpired
		allowed, reason := CanTransition(req, now)
		assert.False(t, allowed)
		assert.Equal(t, DenialTerminal, reason)
	})

	t.Run("ExpiryTakesPrecedenceOverTerminal", func(t *testing.T) {
		req := activeRequest(now.Add(-time.Hour))
		req.Status = RequestStatusDone
		allowed, reason := CanTransition(req, now)
		assert.False(t, allowed)
		assert.Equal(t, DenialExpired, reason)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, RequestStatusActive.IsTerminal())
	assert.True(t, RequestStatusDone.IsTerminal())
	assert.True(t, RequestStatusExpired.IsTerminal())
}
