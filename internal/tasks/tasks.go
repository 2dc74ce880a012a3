package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/services"
	"github.com/desertthunder/zhuifan/internal/shared"
)

// Snapshot is the store state observed after an operation.
//
// A nil field means that part of the refresh failed; callers keep what they had.
type Snapshot struct {
	Animes     []models.Anime
	Today      []models.Anime
	TodayLabel models.Weekday
	Written    *models.Anime // record returned by Create or Update
}

// DeleteOptions guards [Tracker.Delete].
type DeleteOptions struct {
	Confirmed bool
}

// Tracker runs store writes followed by a refresh.
type Tracker struct {
	svc      services.AnimeService
	logger   *log.Logger
	progress chan<- ProgressUpdate
}

// NewTracker creates a Tracker. A nil logger falls back to the default logger.
func NewTracker(svc services.AnimeService, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{svc: svc, logger: logger}
}

// WithProgress returns a copy of t that reports each step on ch.
func (t *Tracker) WithProgress(ch chan<- ProgressUpdate) *Tracker {
	cp := *t
	cp.progress = ch
	return &cp
}

func (t *Tracker) sendProgress(update ProgressUpdate) {
	if t.progress == nil {
		return
	}
	select {
	case t.progress <- update:
	default:
	}
}

// Refresh reloads the list and today's releases. It fails only when both fetches fail.
func (t *Tracker) Refresh(ctx context.Context) (*Snapshot, error) {
	if t.svc == nil {
		return nil, fmt.Errorf("%w: anime service not initialized", shared.ErrServiceUnavailable)
	}

	snap := &Snapshot{}
	listErr, todayErr := t.refresh(ctx, snap, 0, 2)
	if listErr != nil && todayErr != nil {
		return nil, fmt.Errorf("refresh failed: %w", listErr)
	}
	return snap, nil
}

// Create stores draft and refreshes.
func (t *Tracker) Create(ctx context.Context, draft models.Draft) (*Snapshot, error) {
	if t.svc == nil {
		return nil, fmt.Errorf("%w: anime service not initialized", shared.ErrServiceUnavailable)
	}

	t.sendProgress(writeUpdate(1, 3, "Creating", 0))
	created, err := t.svc.Create(ctx, draft)
	if err != nil {
		t.logger.Error("create failed", "title", draft.Title, "error", err)
		return nil, fmt.Errorf("create failed: %w", err)
	}
	t.sendProgress(writtenUpdate(1, 3, created))
	t.logger.Info("anime created", "id", created.ID, "title", created.Title)

	snap := &Snapshot{Written: created}
	t.refresh(ctx, snap, 1, 3)
	return snap, nil
}

// Update replaces the fields of anime id with draft and refreshes.
func (t *Tracker) Update(ctx context.Context, id int64, draft models.Draft) (*Snapshot, error) {
	if t.svc == nil {
		return nil, fmt.Errorf("%w: anime service not initialized", shared.ErrServiceUnavailable)
	}

	t.sendProgress(writeUpdate(1, 3, "Updating", id))
	updated, err := t.svc.Update(ctx, id, draft)
	if err != nil {
		t.logger.Error("update failed", "id", id, "error", err)
		return nil, fmt.Errorf("update %d failed: %w", id, err)
	}
	t.sendProgress(writtenUpdate(1, 3, updated))
	t.logger.Info("anime updated", "id", id)

	snap := &Snapshot{Written: updated}
	t.refresh(ctx, snap, 1, 3)
	return snap, nil
}

// Delete removes anime id and refreshes. The request is refused unless opts.Confirmed is set.
func (t *Tracker) Delete(ctx context.Context, id int64, opts DeleteOptions) (*Snapshot, error) {
	if !opts.Confirmed {
		return nil, shared.ErrConfirmationRequired
	}
	if t.svc == nil {
		return nil, fmt.Errorf("%w: anime service not initialized", shared.ErrServiceUnavailable)
	}

	t.sendProgress(writeUpdate(1, 3, "Deleting", id))
	if err := t.svc.Delete(ctx, id); err != nil {
		t.logger.Error("delete failed", "id", id, "error", err)
		return nil, fmt.Errorf("delete %d failed: %w", id, err)
	}
	t.logger.Info("anime deleted", "id", id)

	snap := &Snapshot{}
	t.refresh(ctx, snap, 1, 3)
	return snap, nil
}

// refresh fills snap's list and today fields, one request each, in that order.
func (t *Tracker) refresh(ctx context.Context, snap *Snapshot, done, total int) (listErr, todayErr error) {
	t.sendProgress(fetchListUpdate(done+1, total))
	animes, listErr := t.svc.List(ctx)
	if listErr != nil {
		t.logger.Warn("list refresh failed", "error", listErr)
		t.sendProgress(fetchFailedUpdate(FetchList, done+1, total, listErr))
	} else {
		snap.Animes = animes
	}

	t.sendProgress(fetchTodayUpdate(done+2, total))
	today, todayErr := t.svc.ListToday(ctx)
	if todayErr != nil {
		t.logger.Warn("today refresh failed", "error", todayErr)
		t.sendProgress(fetchFailedUpdate(FetchToday, done+2, total, todayErr))
	} else {
		snap.Today = today.Animes
		snap.TodayLabel = today.Today
	}
	return listErr, todayErr
}
