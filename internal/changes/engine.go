package changes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fwsync/internal/api"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
)

const (
	backgroundTasksPath = "/fotoweb/me/background-tasks/"
	uploadsPath         = "/fotoweb/api/uploads"

	metadataContentType = "application/vnd.fotoware.assetupdate+json"
	moveContentType     = "application/vnd.fotoware.move-request+json"
)

// Transport is the authenticated HTTP boundary the engine submits through.
// Satisfied by [api.Connection]. Implementations raise *api.StatusError on
// non-2xx responses and handle bearer tokens and throttling themselves.
type Transport interface {
	GET(ctx context.Context, path string) (*api.Response, error)
	POST(ctx context.Context, path string, headers map[string]string, body []byte) (*api.Response, error)
	PATCH(ctx context.Context, path string, headers map[string]string, body []byte) (*api.Response, error)
}

// Engine dispatches registered tasks to their variant-specific submission
// protocol and reconciles submitted background jobs.
//
// Tasks are processed one at a time in registry order; the engine performs no
// parallel fan-out of its own.
type Engine struct {
	registry *Registry
	api      Transport
	logger   *log.Logger
}

// NewEngine creates an engine over a registry and transport.
func NewEngine(registry *Registry, transport Transport, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{registry: registry, api: transport, logger: logger}
}

// Registry returns the engine's task registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Commit submits every uncommitted task in insertion order.
//
// Each task's submission failure is recorded on the task itself (status
// Failed) and the pass continues; the joined per-task errors come back once
// the full pass has run. Only context cancellation aborts the pass early.
func (e *Engine) Commit(ctx context.Context) error {
	var errs []error

	for _, task := range e.registry.ByStatus(Uncommitted) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := e.commitUncommitted(ctx, task); err != nil {
			e.logger.Warn("task submission failed", "task", task.ID, "kind", task.Change.Kind(), "err", err)
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
		}
	}

	return errors.Join(errs...)
}

// commitUncommitted performs the variant-specific submission for one task.
// Must only be called on an Uncommitted task.
func (e *Engine) commitUncommitted(ctx context.Context, task *Task) error {
	switch change := task.Change.(type) {
	case MetadataChange:
		if err := e.patchMetadata(ctx, change); err != nil {
			// Uncommitted -> Failed cannot be rejected; the submission error wins.
			_ = task.transition(Failed)
			return err
		}
		return task.transition(Done)

	case MoveChange:
		location, err := e.submitMove(ctx, change)
		if err != nil {
			_ = task.transition(Failed)
			return err
		}
		if err := task.transition(Submitted); err != nil {
			return err
		}
		e.registry.putHandle(task.ID, location)
		return nil

	case UploadChange:
		info, err := e.uploadAsset(ctx, change)
		if err != nil {
			_ = task.transition(Failed)
			return err
		}
		if err := task.transition(Submitted); err != nil {
			return err
		}
		e.registry.putHandle(task.ID, fmt.Sprintf("%s/%s/status", uploadsPath, info.ID))
		return nil

	default:
		return fmt.Errorf("%w: unknown change variant %T", shared.ErrInvalidInput, task.Change)
	}
}

// patchMetadata commits a single metadata change with one synchronous update request.
func (e *Engine) patchMetadata(ctx context.Context, change MetadataChange) error {
	body, err := json.Marshal(map[string]any{"metadata": change.Fields})
	if err != nil {
		return fmt.Errorf("failed to encode metadata patch: %w", err)
	}

	headers := map[string]string{"Content-Type": metadataContentType}
	if _, err := e.api.PATCH(ctx, change.AssetHref, headers, body); err != nil {
		return err
	}
	return nil
}

// submitMove creates a background move job and returns its status location.
func (e *Engine) submitMove(ctx context.Context, change MoveChange) (string, error) {
	assets := make([]map[string]string, 0, len(change.AssetHrefs))
	for _, href := range change.AssetHrefs {
		assets = append(assets, map[string]string{"href": href})
	}

	body, err := json.Marshal(map[string]any{
		"assets":          assets,
		"job-destination": change.Destination,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode move request: %w", err)
	}

	headers := map[string]string{"Content-Type": moveContentType}
	resp, err := e.api.POST(ctx, backgroundTasksPath, headers, body)
	if err != nil {
		return "", err
	}

	var moveResp models.MoveResponse
	if err := json.Unmarshal(resp.Body, &moveResp); err != nil {
		return "", fmt.Errorf("failed to decode move response: %w", err)
	}
	if moveResp.Location == "" {
		return "", fmt.Errorf("%w: move response carried no status location", shared.ErrAPIRequest)
	}

	return moveResp.Location, nil
}
