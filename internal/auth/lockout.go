package auth

import (
	"fmt"
	"math"
	"time"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Lockout defaults.
const (
	DefaultMaxAttempts  = 3
	DefaultLockDuration = 15 * time.Minute
)

// lockout tracks consecutive failed logins for one identifier. The state
// machine is Normal(attempts 0..max-1) or Locked(until); a locked attempt is
// rejected before the directory is consulted and never advances the counter.
type lockout struct {
	attempts    int
	lockedUntil time.Time
}

func (l *lockout) locked(now time.Time) bool {
	return !l.lockedUntil.IsZero() && now.Before(l.lockedUntil)
}

// check gates a login attempt. An active lock yields ErrAccountLocked with the
// remaining whole minutes; an expired lock resets the state before the
// credentials are evaluated.
func (l *lockout) check(now time.Time) error {
	if l.locked(now) {
		minutes := int(math.Ceil(l.lockedUntil.Sub(now).Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Errorf("%w, retry in %d minutes", shared.ErrAccountLocked, minutes)
	}
	if !l.lockedUntil.IsZero() {
		l.attempts = 0
		l.lockedUntil = time.Time{}
	}
	return nil
}

// fail records a failed attempt, locking once the threshold is reached. It
// reports whether this attempt triggered the lock.
func (l *lockout) fail(now time.Time, maxAttempts int, lockFor time.Duration) bool {
	l.attempts++
	if l.attempts >= maxAttempts {
		l.lockedUntil = now.Add(lockFor)
		return true
	}
	return false
}

// reset returns the state to Normal(0) after a successful login.
func (l *lockout) reset() {
	l.attempts = 0
	l.lockedUntil = time.Time{}
}
