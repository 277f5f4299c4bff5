// Package presentation holds the single-slot modal stores the UI reads.
// Each store keeps at most one pending payload plus an open flag; a second
// Show simply replaces the first (last write wins, no queueing).
package presentation

import (
	"sync"
	"time"

	"beatbattle_backend/internal/models"
)

type MatchType string

const (
	MatchTypeImmediate   MatchType = "immediate"
	MatchTypeProgressive MatchType = "progressive"
)

// MatchFoundPayload is everything the match-found modal needs to render.
// Ephemeral: built by the dispatcher, held by the store, never persisted.
type MatchFoundPayload struct {
	BattleID         string              `json:"battle_id"`
	OpponentUsername string              `json:"opponent_username"`
	OpponentAvatar   *string             `json:"opponent_avatar,omitempty"`
	BattleFormat     models.BattleFormat `json:"battle_format"`
	VotingEndsAt     time.Time           `json:"voting_ends_at"`
	MatchType        MatchType           `json:"match_type"`
}

// BattleResultPayload feeds the result modal. IsWin false with RatingChange 0
// is rendered as a draw by the consumer.
type BattleResultPayload struct {
	BattleID         string              `json:"battle_id"`
	IsWin            bool                `json:"is_win"`
	RatingChange     int                 `json:"rating_change"`
	NewRating        int                 `json:"new_rating"`
	NewRank          string              `json:"new_rank"`
	OpponentUsername string              `json:"opponent_username"`
	BattleFormat     models.BattleFormat `json:"battle_format"`
}

// ModalStore is a single modal slot. Only the dispatcher calls Show; only the
// UI layer calls Close. The mutex guards against a poll racing an immediate
// dispatch, nothing more.
type ModalStore[T any] struct {
	mu      sync.Mutex
	payload *T
	open    bool
}

func NewModalStore[T any]() *ModalStore[T] {
	return &ModalStore[T]{}
}

// Show stores the payload and opens the modal, overwriting any pending payload.
func (s *ModalStore[T]) Show(payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = &payload
	s.open = true
}

// SetPayload stages a payload without opening the modal.
func (s *ModalStore[T]) SetPayload(payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = &payload
}

// Close clears the slot.
func (s *ModalStore[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.payload = nil
}

// Get returns a copy of the pending payload and the open flag.
func (s *ModalStore[T]) Get() (payload *T, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return nil, s.open
	}
	p := *s.payload
	return &p, s.open
}

func (s *ModalStore[T]) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
