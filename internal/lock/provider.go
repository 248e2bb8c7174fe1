package lock

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrNotConfigured is returned by Authenticate when neither a pre-provisioned
// access token nor a client-credential pair is configured.
var ErrNotConfigured = errors.New("lock provider credentials not configured")

// Grant is a time-windowed keypad code issued against a physical lock.
// Handle 0 marks an unmanaged grant: the code was generated locally, the
// provider holds no record of it, and revocation must be skipped. The
// validity window is the only access boundary.
type Grant struct {
	Code   string
	Handle int64
}

// Managed reports whether the provider can revoke this grant early.
func (g Grant) Managed() bool {
	return g.Handle > 0
}

// PasscodeProvider issues and revokes keypad codes on smart locks.
//
// IssueTimedCode never fails: a rental must not be blocked by a lock-platform
// outage, so on any provider error the implementation returns a locally
// generated fallback grant with Handle 0. RevokeCode returns false, not an
// error, whenever early revocation is structurally impossible; callers treat
// false as "the grant self-expires at its window end".
type PasscodeProvider interface {
	IssueTimedCode(ctx context.Context, lockID int64, validFrom, validUntil time.Time) Grant
	RevokeCode(ctx context.Context, lockID, handle int64) bool
}

// FallbackCode draws a uniform 6-digit keypad code.
func FallbackCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
