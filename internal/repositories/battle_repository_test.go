package repositories_test

import (
	"testing"
	"time"

	"beatbattle_backend/internal/models"
	"beatbattle_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBattleRepository_GetActiveByID(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBattleRepository(db)

	battle := &models.Battle{
		Player1ID:    "user-1",
		Player2ID:    "user-2",
		Format:       models.BattleFormatMain,
		Status:       models.BattleStatusVoting,
		VotingEndsAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(battle).Error)

	got, err := repo.GetActiveByID(battle.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.Player1ID)
	assert.Equal(t, models.BattleFormatMain, got.Format)

	_, err = repo.GetActiveByID("missing")
	assert.ErrorIs(t, err, repositories.ErrBattleNotFound)
}

func TestBattleRepository_GetArchivedByOriginalID(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBattleRepository(db)

	archived := &models.ArchivedBattle{
		OriginalBattleID:    "battle-42",
		Player1ID:           "user-1",
		Player2ID:           "user-2",
		Player1RatingChange: 25,
		Player2RatingChange: -25,
		Player1FinalRating:  1225,
		Player2FinalRating:  1175,
		WinnerID:            strPtr("user-1"),
		Format:              models.BattleFormatMain,
	}
	require.NoError(t, db.Create(archived).Error)

	got, err := repo.GetArchivedByOriginalID("battle-42")
	require.NoError(t, err)
	assert.Equal(t, "battle-42", got.OriginalBattleID)
	assert.NotEqual(t, got.ID, got.OriginalBattleID, "archived rows carry their own primary key")

	// Lookups run on the original id, never the archived primary key.
	_, err = repo.GetArchivedByOriginalID(got.ID)
	assert.ErrorIs(t, err, repositories.ErrBattleNotFound)
}

func TestProfileRepository_GetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewProfileRepository(db)

	require.NoError(t, db.Create(&models.Profile{
		UserID:   "user-1",
		Username: "BeatMaster",
		Rating:   1300,
	}).Error)

	got, err := repo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Equal(t, "BeatMaster", got.Username)

	_, err = repo.GetByUserID("nobody")
	assert.ErrorIs(t, err, repositories.ErrProfileNotFound)
}

func TestArchivedBattle_SideHelpers(t *testing.T) {
	b := models.ArchivedBattle{
		Player1ID:           "user-1",
		Player2ID:           "user-2",
		Player1RatingChange: 10,
		Player2RatingChange: -10,
		Player1FinalRating:  1210,
		Player2FinalRating:  1190,
	}

	assert.Equal(t, 1, b.SideOf("user-1"))
	assert.Equal(t, 2, b.SideOf("user-2"))
	assert.Equal(t, 0, b.SideOf("user-3"))

	change, final := b.RatingChangeFor("user-2")
	assert.Equal(t, -10, change)
	assert.Equal(t, 1190, final)
}
