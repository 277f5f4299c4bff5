package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"beatbattle_backend/internal/logger"
	"beatbattle_backend/internal/models"
	"beatbattle_backend/internal/presentation"
	"beatbattle_backend/internal/rank"
	"beatbattle_backend/internal/repositories"
)

// ConsumeFunc deletes a notification once its modal has been shown. Injected
// by the NotificationCenter so the dispatcher stays free of list bookkeeping.
type ConsumeFunc func(ctx context.Context, notificationID string) error

// errSkipDispatch marks the quiet abort path: the referenced data is not
// resolvable yet (replication lag) or the row does not belong to an actionable
// context. The notification is retained so a later poll can retry.
var errSkipDispatch = errors.New("dispatch skipped")

// DispatchService turns a pending one-shot notification into a modal payload.
// Both variants share one control flow; only the battle lookup and payload
// builder differ.
type DispatchService struct {
	battleRepo  repositories.BattleRepository
	profileRepo repositories.ProfileRepository
	matchStore  *presentation.ModalStore[presentation.MatchFoundPayload]
	resultStore *presentation.ModalStore[presentation.BattleResultPayload]

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewDispatchService(
	battleRepo repositories.BattleRepository,
	profileRepo repositories.ProfileRepository,
	matchStore *presentation.ModalStore[presentation.MatchFoundPayload],
	resultStore *presentation.ModalStore[presentation.BattleResultPayload],
) *DispatchService {
	return &DispatchService{
		battleRepo:  battleRepo,
		profileRepo: profileRepo,
		matchStore:  matchStore,
		resultStore: resultStore,
		inFlight:    make(map[string]struct{}),
	}
}

// Dispatch routes one pending notification to its modal store and consumes the
// row afterwards. A poll racing an immediate dispatch of the same row is
// deduplicated by the in-flight guard; everything else about duplicates is
// absorbed by the stores' last-write-wins slots.
func (s *DispatchService) Dispatch(ctx context.Context, n models.Notification, consume ConsumeFunc) {
	if !n.Dispatchable() {
		return
	}
	if !s.begin(n.ID) {
		logger.CtxDebug(ctx, "dispatch already in flight", "notification_id", n.ID)
		return
	}
	defer s.end(n.ID)

	var show func()
	var err error
	switch {
	case n.Kind == models.NotificationKindBattleMatched:
		show, err = s.buildMatchFound(n)
	case n.Kind.IsBattleResult():
		show, err = s.buildBattleResult(n)
	default:
		return
	}

	if err != nil {
		if errors.Is(err, errSkipDispatch) {
			// Recoverable by retry: keep the row, a later poll resolves it.
			logger.CtxDebug(ctx, "dispatch deferred", "notification_id", n.ID, "reason", err.Error())
		} else {
			logger.CtxWithError(ctx, "dispatch failed", err, "notification_id", n.ID)
		}
		return
	}

	show()

	// The modal already advanced; a delete failure only risks redelivery.
	if err := consume(ctx, n.ID); err != nil {
		logger.CtxWarn(ctx, "failed to consume dispatched notification",
			"notification_id", n.ID, "error", err.Error())
	}
}

func (s *DispatchService) begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.inFlight[id]; dup {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *DispatchService) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

func (s *DispatchService) buildMatchFound(n models.Notification) (func(), error) {
	battleID := *n.RelatedBattleID

	battle, err := s.battleRepo.GetActiveByID(battleID)
	if err != nil {
		if errors.Is(err, repositories.ErrBattleNotFound) {
			return nil, fmt.Errorf("%w: active battle %s not visible yet", errSkipDispatch, battleID)
		}
		return nil, err
	}

	var opponentID string
	switch n.UserID {
	case battle.Player1ID:
		opponentID = battle.Player2ID
	case battle.Player2ID:
		opponentID = battle.Player1ID
	default:
		return nil, fmt.Errorf("%w: user %s is not a participant of battle %s", errSkipDispatch, n.UserID, battleID)
	}

	username, avatar := s.displayIdentity(opponentID)

	payload := presentation.MatchFoundPayload{
		BattleID:         battle.ID,
		OpponentUsername: username,
		OpponentAvatar:   avatar,
		BattleFormat:     battle.Format,
		VotingEndsAt:     battle.VotingEndsAt,
		// Backend-originated notifications always describe an already-formed match.
		MatchType: presentation.MatchTypeImmediate,
	}

	return func() { s.matchStore.Show(payload) }, nil
}

func (s *DispatchService) buildBattleResult(n models.Notification) (func(), error) {
	battleID := *n.RelatedBattleID

	archived, err := s.battleRepo.GetArchivedByOriginalID(battleID)
	if err != nil {
		if errors.Is(err, repositories.ErrBattleNotFound) {
			return nil, fmt.Errorf("%w: archived battle %s not visible yet", errSkipDispatch, battleID)
		}
		return nil, err
	}

	side := archived.SideOf(n.UserID)
	if side == 0 {
		return nil, fmt.Errorf("%w: user %s is not a participant of battle %s", errSkipDispatch, n.UserID, battleID)
	}

	opponentID := archived.Player1ID
	if side == 1 {
		opponentID = archived.Player2ID
	}
	username, _ := s.displayIdentity(opponentID)

	isWin := archived.WinnerID != nil && *archived.WinnerID == n.UserID
	change, final := archived.RatingChangeFor(n.UserID)

	payload := presentation.BattleResultPayload{
		BattleID:         archived.OriginalBattleID,
		IsWin:            isWin,
		RatingChange:     change,
		NewRating:        final,
		NewRank:          rank.ForRating(final),
		OpponentUsername: username,
		BattleFormat:     archived.Format,
	}

	return func() { s.resultStore.Show(payload) }, nil
}

// displayIdentity resolves a participant's public identity. A failed lookup
// degrades to a literal fallback instead of aborting: the match happened and
// the user should still see the modal.
func (s *DispatchService) displayIdentity(userID string) (string, *string) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		logger.Warn("profile lookup failed, using fallback identity",
			"user_id", userID, "error", err.Error())
		return "Unknown", nil
	}
	return profile.Username, profile.AvatarURL
}
