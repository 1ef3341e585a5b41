package domain

import "time"

// DenialReason explains why a lifecycle transition was refused.
type DenialReason string

const (
	DenialNone     DenialReason = ""
	DenialExpired  DenialReason = "expired"
	DenialTerminal DenialReason = "terminal state"
)

// IsExpired reports whether the request is past its expiry date at the given
// instant. The stored status field is deliberately ignored: an ACTIVE request
// past its date is expired even before the sweeper has caught up.
func IsExpired(r *Request, now time.Time) bool {
	return now.After(r.ExpiresOn)
}

// CanTransition decides whether a token-gated transition out of the request's
// current state is legal at the given instant. The expiry check runs before
// the terminal-status check so that a stale ACTIVE request is reported as
// expired, not as actionable.
func CanTransition(r *Request, now time.Time) (bool, DenialReason) {
	if IsExpired(r, now) {
		return false, DenialExpired
	}
	if r.Status.IsTerminal() {
		return false, DenialTerminal
	}
	return true, DenialNone
}
