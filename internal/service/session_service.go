package service

import (
	"sync"
	"sync/atomic"
	"time"

	"doctor-admin-dashboard/internal/dashboard"

	"github.com/sirupsen/logrus"
)

const defaultSessionCleanupInterval = time.Minute

// DashboardFactory builds the dashboard for a new session
type DashboardFactory func(sessionID string) *dashboard.Dashboard

// SessionService keeps one dashboard per operator session and unmounts
// sessions that stay idle longer than idleTimeout.
type SessionService struct {
	factory         DashboardFactory
	log             *logrus.Logger
	idleTimeout     time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	sessions sync.Map // map[string]*sessionEntry

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type sessionEntry struct {
	dashboard *dashboard.Dashboard
	lastUsed  atomic.Int64 // Unix nanoseconds
}

// NewSessionService starts the idle-session reaper. Call Stop() during graceful shutdown.
func NewSessionService(factory DashboardFactory, log *logrus.Logger, idleTimeout time.Duration) *SessionService {
	return newSessionService(factory, log, idleTimeout, defaultSessionCleanupInterval, time.Now)
}

func newSessionService(factory DashboardFactory, log *logrus.Logger, idleTimeout, cleanupInterval time.Duration, now func() time.Time) *SessionService {
	svc := &SessionService{
		factory:         factory,
		log:             log,
		idleTimeout:     idleTimeout,
		cleanupInterval: cleanupInterval,
		now:             now,
		stopChan:        make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

// Dashboard returns the session's dashboard, creating it on first use.
func (s *SessionService) Dashboard(sessionID string) *dashboard.Dashboard {
	if v, ok := s.sessions.Load(sessionID); ok {
		entry := v.(*sessionEntry)
		entry.lastUsed.Store(s.now().UnixNano())
		if !entry.dashboard.Closed() {
			return entry.dashboard
		}
		// reaped after Load; the reaper deletes before closing, so this only clears a stale pointer
		s.sessions.CompareAndDelete(sessionID, entry)
	}

	fresh := &sessionEntry{dashboard: s.factory(sessionID)}
	fresh.lastUsed.Store(s.now().UnixNano())

	v, loaded := s.sessions.LoadOrStore(sessionID, fresh)
	entry := v.(*sessionEntry)
	if loaded {
		// lost the race to a concurrent request for the same session
		fresh.dashboard.Close()
		entry.lastUsed.Store(s.now().UnixNano())
	} else {
		s.log.Debugf("Created dashboard for session %s", sessionID)
	}
	return entry.dashboard
}

// End unmounts and forgets a session.
func (s *SessionService) End(sessionID string) {
	if v, ok := s.sessions.LoadAndDelete(sessionID); ok {
		v.(*sessionEntry).dashboard.Close()
	}
}

// Stop halts the reaper and unmounts every session. Safe to call multiple times.
func (s *SessionService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.sessions.Range(func(key, _ any) bool {
			s.End(key.(string))
			return true
		})
		s.log.Info("SessionService stopped")
	}
}

func (s *SessionService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupIdleSessions()
		}
	}
}

func (s *SessionService) cleanupIdleSessions() {
	cutoff := s.now().Add(-s.idleTimeout).UnixNano()
	var cleaned int

	s.sessions.Range(func(key, value any) bool {
		entry, ok := value.(*sessionEntry)
		if !ok {
			return true
		}
		if entry.lastUsed.Load() < cutoff {
			if s.sessions.CompareAndDelete(key, entry) {
				entry.dashboard.Close()
				cleaned++
			}
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d idle dashboard sessions", cleaned)
	}
}
