package services_test

import (
	"fmt"
	"testing"
	"time"

	"beatbattle_backend/internal/models"
	"beatbattle_backend/internal/presentation"
	"beatbattle_backend/internal/repositories"
	"beatbattle_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionService(t *testing.T) (*services.SessionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Notification{},
		&models.Battle{},
		&models.ArchivedBattle{},
		&models.Profile{},
	))

	svc := services.NewSessionService(
		repositories.NewNotificationRepository(db),
		repositories.NewBattleRepository(db),
		repositories.NewProfileRepository(db),
		time.Hour, // keep the poller quiet during tests
	)
	t.Cleanup(svc.Shutdown)
	return svc, db
}

func TestSessionService_SignInBuildsSession(t *testing.T) {
	svc, _ := setupSessionService(t)

	session := svc.SignIn("user-a")
	require.NotNil(t, session)
	assert.Equal(t, "user-a", session.PrincipalID)
	assert.NotNil(t, session.Center)
	assert.NotNil(t, session.MatchModal)
	assert.NotNil(t, session.ResultModal)

	assert.Same(t, session, svc.Get("user-a"))
	assert.Nil(t, svc.Get("user-b"))
}

func TestSessionService_SignInReplacesExistingState(t *testing.T) {
	svc, _ := setupSessionService(t)

	first := svc.SignIn("user-a")
	first.MatchModal.Show(presentation.MatchFoundPayload{BattleID: "battle-1"})
	require.True(t, first.MatchModal.IsOpen())

	second := svc.SignIn("user-a")
	assert.NotSame(t, first, second)
	assert.False(t, second.MatchModal.IsOpen(), "a new sign-in starts from scratch")
	assert.Empty(t, second.Center.Notifications())
}

func TestSessionService_ObtainIsLazy(t *testing.T) {
	svc, _ := setupSessionService(t)

	require.Nil(t, svc.Get("user-a"))

	session := svc.Obtain("user-a")
	require.NotNil(t, session)
	assert.Same(t, session, svc.Obtain("user-a"), "repeated Obtain reuses the live session")
}

func TestSessionService_SignOutIdempotent(t *testing.T) {
	svc, _ := setupSessionService(t)

	svc.SignIn("user-a")
	svc.SignOut("user-a")
	assert.Nil(t, svc.Get("user-a"))

	svc.SignOut("user-a") // second sign-out is a no-op
	assert.Nil(t, svc.Get("user-a"))
}

func TestSessionService_SessionsAreIsolated(t *testing.T) {
	svc, _ := setupSessionService(t)

	a := svc.SignIn("user-a")
	b := svc.SignIn("user-b")

	a.MatchModal.Show(presentation.MatchFoundPayload{BattleID: "battle-1"})
	assert.True(t, a.MatchModal.IsOpen())
	assert.False(t, b.MatchModal.IsOpen())

	svc.SignOut("user-a")
	assert.Nil(t, svc.Get("user-a"))
	assert.NotNil(t, svc.Get("user-b"))
}

func TestSessionService_Shutdown(t *testing.T) {
	svc, _ := setupSessionService(t)

	svc.SignIn("user-a")
	svc.SignIn("user-b")
	svc.Shutdown()

	assert.Nil(t, svc.Get("user-a"))
	assert.Nil(t, svc.Get("user-b"))
}
