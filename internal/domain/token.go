package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TokenState is the outcome of resolving a validation token. The three
// non-valid states are expected, user-facing terminal outcomes, not errors.
type TokenState string

const (
	TokenStateUnknown  TokenState = "unknown"
	TokenStateValid    TokenState = "valid"
	TokenStateExpired  TokenState = "expired"
	TokenStateConsumed TokenState = "consumed"
)

// ErrTokenConflict reports that a concurrent decision consumed the token
// first. It must be surfaced as "someone already acted on this", distinct
// from a broken or expired link.
var ErrTokenConflict = errors.New("le relevé a déjà été validé par une autre décision")

// ErrTokenExpired reports that the token passed its expiry between the
// resolve check and the decision.
var ErrTokenExpired = errors.New("le lien de validation a expiré")

// ValidationToken is a single-use capability bound to exactly one timesheet
// decision. Consumed and expired tokens are kept as an audit trail.
type ValidationToken struct {
	ID          uuid.UUID  `json:"id"`
	Token       string     `json:"token"`
	TimesheetID uuid.UUID  `json:"timesheetId"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Used        bool       `json:"used"`
	UsedAt      *time.Time `json:"usedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ResolveTokenState classifies a token record at a given instant. A nil
// record means the token string resolved to nothing. Consumption wins over
// expiry so a used token always reads as consumed, matching the original
// verification order. The check is a pure function of (now, record); the
// authoritative consumption guard runs again in the datastore when a
// decision is committed.
func ResolveTokenState(t *ValidationToken, now time.Time) TokenState {
	switch {
	case t == nil:
		return TokenStateUnknown
	case t.Used:
		return TokenStateConsumed
	case !now.Before(t.ExpiresAt):
		return TokenStateExpired
	default:
		return TokenStateValid
	}
}
