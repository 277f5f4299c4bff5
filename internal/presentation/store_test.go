package presentation

import (
	"testing"
	"time"

	"beatbattle_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestModalStore_ShowReplacesPayload(t *testing.T) {
	store := NewModalStore[MatchFoundPayload]()

	store.Show(MatchFoundPayload{BattleID: "battle-1", OpponentUsername: "alice"})
	store.Show(MatchFoundPayload{BattleID: "battle-2", OpponentUsername: "bob"})

	payload, open := store.Get()
	assert.True(t, open)
	if assert.NotNil(t, payload) {
		// Last write wins: no queueing of a second pending modal.
		assert.Equal(t, "battle-2", payload.BattleID)
		assert.Equal(t, "bob", payload.OpponentUsername)
	}
}

func TestModalStore_CloseClearsSlot(t *testing.T) {
	store := NewModalStore[BattleResultPayload]()
	store.Show(BattleResultPayload{BattleID: "battle-1", IsWin: true})

	store.Close()

	payload, open := store.Get()
	assert.False(t, open)
	assert.Nil(t, payload)

	// Closing an already-closed store is a no-op.
	store.Close()
	assert.False(t, store.IsOpen())
}

func TestModalStore_SetPayloadDoesNotOpen(t *testing.T) {
	store := NewModalStore[MatchFoundPayload]()

	store.SetPayload(MatchFoundPayload{
		BattleID:     "battle-3",
		BattleFormat: models.BattleFormatMain,
		VotingEndsAt: time.Now().Add(time.Hour),
	})

	payload, open := store.Get()
	assert.False(t, open)
	if assert.NotNil(t, payload) {
		assert.Equal(t, "battle-3", payload.BattleID)
	}

	store.Show(*payload)
	assert.True(t, store.IsOpen())
}

func TestModalStore_GetReturnsCopy(t *testing.T) {
	store := NewModalStore[MatchFoundPayload]()
	store.Show(MatchFoundPayload{BattleID: "battle-4", OpponentUsername: "carol"})

	payload, _ := store.Get()
	payload.OpponentUsername = "mutated"

	again, _ := store.Get()
	assert.Equal(t, "carol", again.OpponentUsername)
}
