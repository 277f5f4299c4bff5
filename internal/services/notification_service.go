package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"beatbattle_backend/internal/logger"
	"beatbattle_backend/internal/models"
	"beatbattle_backend/internal/repositories"
	"beatbattle_backend/internal/services/dto"

	"github.com/google/uuid"
)

// PrincipalProvider supplies the id the center operates on behalf of.
// An empty id means "no authenticated principal".
type PrincipalProvider interface {
	CurrentPrincipalID() string
}

// StaticPrincipal pins a center to one user for its whole lifetime, which is
// how per-session instances are built.
type StaticPrincipal string

func (p StaticPrincipal) CurrentPrincipalID() string { return string(p) }

var ErrNoPrincipal = errors.New("no authenticated principal")

// NotificationCenter keeps an in-memory mirror of one principal's persisted
// notifications, recomputes the unread count on every sync, and hands pending
// one-shot rows to the dispatcher. One instance per signed-in principal; the
// session service owns construction and teardown.
type NotificationCenter struct {
	principal  PrincipalProvider
	repo       repositories.NotificationRepository
	dispatcher *DispatchService

	mu        sync.Mutex
	items     []models.Notification
	unread    int
	lastError string
}

func NewNotificationCenter(
	principal PrincipalProvider,
	repo repositories.NotificationRepository,
	dispatcher *DispatchService,
) *NotificationCenter {
	return &NotificationCenter{
		principal:  principal,
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Fetch synchronizes the mirror with persisted storage. Rows come back newest
// first. With no principal the mirror clears without error; on a query failure
// the prior mirror is kept and the error is recorded for observability.
// After a successful sync, pending one-shot rows are dispatched.
func (c *NotificationCenter) Fetch(ctx context.Context) error {
	principalID := c.principal.CurrentPrincipalID()
	if principalID == "" {
		c.mu.Lock()
		c.items = nil
		c.unread = 0
		c.lastError = ""
		c.mu.Unlock()
		return nil
	}

	rows, err := c.repo.ListForUser(principalID)
	if err != nil {
		c.mu.Lock()
		c.lastError = err.Error()
		c.mu.Unlock()
		logger.CtxWithError(ctx, "failed to fetch notifications", err, "user_id", principalID)
		return err
	}

	c.mu.Lock()
	c.items = rows
	c.unread = countUnread(rows)
	c.lastError = ""
	c.mu.Unlock()

	c.dispatchPending(ctx, rows)
	return nil
}

// Refresh is the user-triggered immediate refetch; it shares the Fetch core
// with the timer-driven path.
func (c *NotificationCenter) Refresh(ctx context.Context) error {
	return c.Fetch(ctx)
}

// dispatchPending hands the first pending candidate of each modal family to
// the dispatcher. Multiple simultaneous pending rows in one family are not
// batch-processed; the next poll picks up the remainder.
func (c *NotificationCenter) dispatchPending(ctx context.Context, rows []models.Notification) {
	if n := firstDispatchable(rows, models.NotificationKind.IsBattleResult); n != nil {
		c.dispatcher.Dispatch(ctx, *n, c.Consume)
	}
	if n := firstDispatchable(rows, func(k models.NotificationKind) bool {
		return k == models.NotificationKindBattleMatched
	}); n != nil {
		c.dispatcher.Dispatch(ctx, *n, c.Consume)
	}
}

func firstDispatchable(rows []models.Notification, match func(models.NotificationKind) bool) *models.Notification {
	for i := range rows {
		if rows[i].Dispatchable() && match(rows[i].Kind) {
			return &rows[i]
		}
	}
	return nil
}

// Add inserts a notification locally first: the mirror answers the UI
// immediately, one-shot kinds dispatch with the freshly built row, and the
// durable insert runs best-effort in the background.
func (c *NotificationCenter) Add(ctx context.Context, draft dto.NotificationDraft) (*models.Notification, error) {
	principalID := c.principal.CurrentPrincipalID()
	if principalID == "" {
		return nil, ErrNoPrincipal
	}

	kind := models.NotificationKind(draft.Kind)
	if !kind.Valid() {
		return nil, repositories.ErrInvalidNotificationData
	}

	now := time.Now()
	n := models.Notification{
		BaseModel: models.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          principalID,
		Kind:            kind,
		Title:           draft.Title,
		Message:         draft.Message,
		RelatedBattleID: draft.RelatedBattleID,
		IsRead:          false,
	}

	c.mu.Lock()
	c.items = append([]models.Notification{n}, c.items...)
	c.unread++
	c.mu.Unlock()

	if n.Kind.IsOneShot() {
		c.dispatcher.Dispatch(ctx, n, c.Consume)
	}

	go c.persist(n)

	return &n, nil
}

// persist writes the durable counterpart of a locally-added row. Failures are
// logged and swallowed: the backend is the authoritative writer in production
// flows, the local mirror already served the UI.
func (c *NotificationCenter) persist(n models.Notification) {
	if err := c.repo.Insert(&n); err != nil {
		logger.Warn("best-effort notification insert failed",
			"notification_id", n.ID, "error", err.Error())
	}
}

// Consume removes a notification locally and deletes the persisted row.
// Read and consumed are deliberately the same irreversible operation: a
// notification whose one-shot action fired has no further use in the list.
func (c *NotificationCenter) Consume(ctx context.Context, id string) error {
	principalID := c.principal.CurrentPrincipalID()
	if principalID == "" {
		return ErrNoPrincipal
	}

	c.mu.Lock()
	kept := c.items[:0:0]
	for _, n := range c.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.items = kept
	c.unread = countUnread(kept)
	c.mu.Unlock()

	err := c.repo.DeleteOne(id, principalID)
	if err != nil && !errors.Is(err, repositories.ErrNotificationNotFound) {
		logger.CtxWarn(ctx, "failed to delete consumed notification",
			"notification_id", id, "error", err.Error())
		return err
	}
	return nil
}

// ConsumeAll clears the mirror and bulk-deletes the principal's rows.
func (c *NotificationCenter) ConsumeAll(ctx context.Context) error {
	principalID := c.principal.CurrentPrincipalID()
	if principalID == "" {
		return ErrNoPrincipal
	}

	c.mu.Lock()
	c.items = nil
	c.unread = 0
	c.mu.Unlock()

	if err := c.repo.DeleteAll(principalID); err != nil {
		logger.CtxWarn(ctx, "failed to bulk-delete notifications", "error", err.Error())
		return err
	}
	return nil
}

// Subscribe starts the steady-state delivery loop: one immediate fetch, then a
// fixed-interval poll. The returned teardown cancels the loop; calling it more
// than once is a no-op, and a fetch resolving after teardown cannot re-arm the
// timer. Each Subscribe call owns its own ticker.
func (c *NotificationCenter) Subscribe(interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := c.Fetch(ctx); err != nil {
			logger.WorkerLog("notification_poller", "initial_fetch", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.WorkerLog("notification_poller", "stopped", nil)
				return
			case <-ticker.C:
				if err := c.Fetch(ctx); err != nil {
					logger.WorkerLog("notification_poller", "poll", err)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}

// ---------------- Snapshots ----------------

// Notifications returns a copy of the mirror, newest first.
func (c *NotificationCenter) Notifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *NotificationCenter) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// LastError reports the most recent fetch failure, empty after a successful sync.
func (c *NotificationCenter) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func countUnread(rows []models.Notification) int {
	count := 0
	for _, n := range rows {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// BuildNotificationResponse shapes a row for the API layer.
func BuildNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:              n.ID,
		UserID:          n.UserID,
		Kind:            string(n.Kind),
		Title:           n.Title,
		Message:         n.Message,
		RelatedBattleID: n.RelatedBattleID,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}
