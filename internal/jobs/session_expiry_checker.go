package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"pressmind/internal/services"
)

// SessionExpiryChecker marks creation sessions past their maximum age as
// expired. The TTL index removes documents whose expiresAt elapsed; this job
// covers sessions that kept sliding their TTL forward but exceeded the
// absolute age cap.
type SessionExpiryChecker struct {
	store    *services.CreationSessionStore
	interval time.Duration
	log      *logrus.Entry
}

// NewSessionExpiryChecker creates a new session expiry checker
func NewSessionExpiryChecker(store *services.CreationSessionStore, interval time.Duration) *SessionExpiryChecker {
	if interval == 0 {
		interval = time.Hour
	}
	return &SessionExpiryChecker{
		store:    store,
		interval: interval,
		log:      logrus.WithField("component", "session-expiry"),
	}
}

// Run expires sessions older than the configured maximum age
func (j *SessionExpiryChecker) Run(ctx context.Context) error {
	if j.store == nil {
		j.log.Warn("Session expiry checker disabled (no session store)")
		return nil
	}

	expired, err := j.store.ExpireStale(ctx)
	if err != nil {
		return err
	}

	if expired > 0 {
		j.log.WithField("expired", expired).Info("Expired stale creation sessions")
	}
	return nil
}

// GetNextRunTime returns when the job should run next
func (j *SessionExpiryChecker) GetNextRunTime() time.Time {
	return time.Now().Add(j.interval)
}
