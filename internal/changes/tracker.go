package changes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
)

// CheckSubmitted performs one reconciliation pass: every submitted task's
// status location is polled once, and tasks whose background job reports a
// terminal state advance to Done or Failed.
//
// Pending and in-progress jobs leave their task Submitted. The pass is
// idempotent on tasks already terminal; call it repeatedly (or use [Engine.Await])
// until no submitted tasks remain.
func (e *Engine) CheckSubmitted(ctx context.Context) error {
	var errs []error

	for _, task := range e.registry.ByStatus(Submitted) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		handle := e.registry.Handle(task.ID)
		if handle == nil {
			continue
		}

		status, err := e.remoteStatus(ctx, task, handle)
		if err != nil {
			e.logger.Warn("status poll failed", "task", task.ID, "location", handle.Location, "err", err)
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
			continue
		}

		switch status {
		case models.JobDone:
			errs = append(errs, task.transition(Done))
		case models.JobFailed:
			errs = append(errs, task.transition(Failed))
		}
	}

	return errors.Join(errs...)
}

// remoteStatus reads and maps the job status payload for a submitted task.
// Move jobs report under task.status; upload jobs report at the top level.
func (e *Engine) remoteStatus(ctx context.Context, task *Task, handle *Handle) (string, error) {
	resp, err := e.api.GET(ctx, handle.Location)
	if err != nil {
		return "", err
	}

	switch task.Change.(type) {
	case MoveChange:
		var info models.BackgroundTaskStatus
		if err := json.Unmarshal(resp.Body, &info); err != nil {
			return "", fmt.Errorf("failed to decode background task status: %w", err)
		}
		return info.Task.Status, nil

	case UploadChange:
		var info models.UploadStatus
		if err := json.Unmarshal(resp.Body, &info); err != nil {
			return "", fmt.Errorf("failed to decode upload status: %w", err)
		}
		return info.Status, nil

	default:
		return "", fmt.Errorf("%w: change variant %T has no background job", shared.ErrInvalidInput, task.Change)
	}
}

// Await reconciles until no submitted tasks remain or the attempt budget is
// exhausted, waiting delay between passes. The wait aborts when ctx is
// cancelled.
func (e *Engine) Await(ctx context.Context, attempts int, delay time.Duration) error {
	for attempt := 0; attempt < attempts; attempt++ {
		if err := e.CheckSubmitted(ctx); err != nil {
			return err
		}
		if len(e.registry.ByStatus(Submitted)) == 0 {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%w: %d tasks still submitted after %d passes",
		shared.ErrTimeout, len(e.registry.ByStatus(Submitted)), attempts)
}
