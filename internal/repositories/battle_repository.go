package repositories

import (
	"errors"

	"beatbattle_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBattleNotFound = errors.New("battle not found")

// BattleRepository reads battle state for the notification pipeline.
// The pipeline never writes either table; matchmaking and archival are owned
// by the backend.
type BattleRepository interface {
	GetActiveByID(battleID string) (*models.Battle, error)
	// GetArchivedByOriginalID looks up a concluded bout by the id it had in
	// the active table. Archived rows are keyed separately, so the join runs
	// on original_battle_id, never on the archived primary key.
	GetArchivedByOriginalID(battleID string) (*models.ArchivedBattle, error)
}

type BattleRepositoryImpl struct {
	db *gorm.DB
}

func NewBattleRepository(db *gorm.DB) BattleRepository {
	return &BattleRepositoryImpl{db: db}
}

func (r *BattleRepositoryImpl) GetActiveByID(battleID string) (*models.Battle, error) {
	var battle models.Battle
	err := r.db.First(&battle, "id = ?", battleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return &battle, nil
}

func (r *BattleRepositoryImpl) GetArchivedByOriginalID(battleID string) (*models.ArchivedBattle, error) {
	var archived models.ArchivedBattle
	err := r.db.First(&archived, "original_battle_id = ?", battleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return &archived, nil
}
