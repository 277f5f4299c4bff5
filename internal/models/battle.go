package models

import "time"

type BattleFormat string

const (
	BattleFormatMain BattleFormat = "MAIN_BATTLE"
	BattleFormatLoop BattleFormat = "LOOPSTATION"
)

type BattleStatus string

const (
	BattleStatusVoting BattleStatus = "voting"
	BattleStatusClosed BattleStatus = "closed"
)

// Battle is an active bout: voting still open, ratings not yet fixed.
// The notification pipeline only reads this table.
type Battle struct {
	BaseModel
	Player1ID    string       `gorm:"not null;index" json:"player1_id"`
	Player2ID    string       `gorm:"not null;index" json:"player2_id"`
	Format       BattleFormat `gorm:"not null" json:"format"`
	Status       BattleStatus `gorm:"not null;default:voting" json:"status"`
	VotingEndsAt time.Time    `json:"voting_ends_at"`
}

// ArchivedBattle is a concluded bout with final per-side ratings. Archived rows
// get their own primary key; OriginalBattleID links back to the active-table id
// the notifications reference.
type ArchivedBattle struct {
	BaseModel
	OriginalBattleID    string       `gorm:"not null;uniqueIndex" json:"original_battle_id"`
	Player1ID           string       `gorm:"not null;index" json:"player1_id"`
	Player2ID           string       `gorm:"not null;index" json:"player2_id"`
	Player1RatingChange int          `json:"player1_rating_change"`
	Player2RatingChange int          `json:"player2_rating_change"`
	Player1FinalRating  int          `json:"player1_final_rating"`
	Player2FinalRating  int          `json:"player2_final_rating"`
	WinnerID            *string      `gorm:"index" json:"winner_id,omitempty"`
	Format              BattleFormat `gorm:"not null" json:"format"`
}

// SideOf returns 1 or 2 for a participant, 0 for anyone else.
func (b *ArchivedBattle) SideOf(userID string) int {
	switch userID {
	case b.Player1ID:
		return 1
	case b.Player2ID:
		return 2
	}
	return 0
}

// RatingChangeFor returns the per-side rating delta and final rating for the
// given participant. Caller must have checked SideOf first.
func (b *ArchivedBattle) RatingChangeFor(userID string) (change, final int) {
	if userID == b.Player1ID {
		return b.Player1RatingChange, b.Player1FinalRating
	}
	return b.Player2RatingChange, b.Player2FinalRating
}
