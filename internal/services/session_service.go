package services

import (
	"sync"
	"time"

	"beatbattle_backend/internal/logger"
	"beatbattle_backend/internal/presentation"
	"beatbattle_backend/internal/repositories"
)

// Session bundles the per-principal state: the notification mirror, the two
// modal slots, and the poller teardown. Nothing here is shared between
// principals, so a new sign-in can never observe a previous user's state.
type Session struct {
	PrincipalID string
	Center      *NotificationCenter
	MatchModal  *presentation.ModalStore[presentation.MatchFoundPayload]
	ResultModal *presentation.ModalStore[presentation.BattleResultPayload]

	stop func()
}

// SessionService binds the notification pipeline to sign-in and sign-out.
// Guarantees: no poller survives sign-out, each sign-in owns exactly one
// poller, and per-principal state is rebuilt from scratch on every sign-in.
type SessionService struct {
	notificationRepo repositories.NotificationRepository
	battleRepo       repositories.BattleRepository
	profileRepo      repositories.ProfileRepository
	pollInterval     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionService(
	notificationRepo repositories.NotificationRepository,
	battleRepo repositories.BattleRepository,
	profileRepo repositories.ProfileRepository,
	pollInterval time.Duration,
) *SessionService {
	return &SessionService{
		notificationRepo: notificationRepo,
		battleRepo:       battleRepo,
		profileRepo:      profileRepo,
		pollInterval:     pollInterval,
		sessions:         make(map[string]*Session),
	}
}

// SignIn builds fresh per-principal state and starts its poller. An existing
// session for the same principal is torn down first.
func (s *SessionService) SignIn(principalID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[principalID]; ok {
		existing.stop()
		delete(s.sessions, principalID)
	}

	matchModal := presentation.NewModalStore[presentation.MatchFoundPayload]()
	resultModal := presentation.NewModalStore[presentation.BattleResultPayload]()
	dispatcher := NewDispatchService(s.battleRepo, s.profileRepo, matchModal, resultModal)
	center := NewNotificationCenter(StaticPrincipal(principalID), s.notificationRepo, dispatcher)

	session := &Session{
		PrincipalID: principalID,
		Center:      center,
		MatchModal:  matchModal,
		ResultModal: resultModal,
		stop:        center.Subscribe(s.pollInterval),
	}
	s.sessions[principalID] = session

	logger.Info("session started", "user_id", principalID, "poll_interval", s.pollInterval)
	return session
}

// Get returns the live session for a principal, nil when none exists.
func (s *SessionService) Get(principalID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[principalID]
}

// Obtain returns the existing session or lazily signs the principal in.
// The HTTP layer uses this so the first authenticated request starts polling.
func (s *SessionService) Obtain(principalID string) *Session {
	if session := s.Get(principalID); session != nil {
		return session
	}
	return s.SignIn(principalID)
}

// SignOut cancels the principal's poller and discards all session state.
// Signing out twice is a no-op.
func (s *SessionService) SignOut(principalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[principalID]
	if !ok {
		return
	}
	session.stop()
	delete(s.sessions, principalID)

	logger.Info("session ended", "user_id", principalID)
}

// Shutdown tears down every live session; used on server stop.
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		session.stop()
		delete(s.sessions, id)
	}
}
