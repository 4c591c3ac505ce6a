package changes

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
)

// Manager prepares and commits changes to assets: changed metadata, moved
// files, and uploads of new files.
//
// Staging methods perform no I/O; Commit and CheckSubmitted drive the engine.
type Manager struct {
	engine *Engine
}

// NewManager creates a manager with a fresh registry over the given transport.
func NewManager(transport Transport, logger *log.Logger) *Manager {
	return &Manager{engine: NewEngine(NewRegistry(), transport, logger)}
}

// Engine exposes the underlying engine, e.g. for journal inspection.
func (m *Manager) Engine() *Engine {
	return m.engine
}

// Tasks returns every staged task in insertion order.
func (m *Manager) Tasks() []*Task {
	return m.engine.Registry().All()
}

// SetValue stages a metadata edit setting one field on an asset.
func (m *Manager) SetValue(asset *models.Asset, field string, value any) (*Task, error) {
	return m.SetValues(asset, map[string]FieldValue{field: {Value: value}})
}

// SetValues stages a metadata edit for an asset. Values are passed on as-is.
func (m *Manager) SetValues(asset *models.Asset, fields map[string]FieldValue) (*Task, error) {
	task := NewTask(MetadataChange{AssetHref: asset.Href, Fields: fields})
	if err := m.engine.Registry().Add(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Move stages relocating assets to a different collection.
//
// Returns [shared.ErrBadDestination] when the destination does not accept
// moves, e.g. because it is a search archive.
func (m *Manager) Move(assets []models.Asset, destination models.Collection) (*Task, error) {
	if !destination.CanMoveTo {
		return nil, fmt.Errorf("%w: cannot move to %s", shared.ErrBadDestination, destination.Name)
	}

	hrefs := make([]string, 0, len(assets))
	for _, asset := range assets {
		hrefs = append(hrefs, asset.Href)
	}

	task := NewTask(MoveChange{AssetHrefs: hrefs, Destination: destination.Href})
	if err := m.engine.Registry().Add(task); err != nil {
		return nil, err
	}
	return task, nil
}

// UploadOpts carries the optional parts of an upload.
type UploadOpts struct {
	Filename   string // required when the reader has no name of its own
	Fields     []MetadataPatch
	Attributes []AttributePatch
}

// Upload stages uploading a new asset from a reader.
//
// The payload is read fully up front; its length becomes the declared file
// size of the upload session. Returns [shared.ErrBadDestination] when the
// destination does not accept uploads.
func (m *Manager) Upload(file io.Reader, destination models.Collection, opts UploadOpts) (*Task, error) {
	if !destination.CanUploadTo {
		return nil, fmt.Errorf("%w: cannot upload to %s", shared.ErrBadDestination, destination.Name)
	}
	if opts.Filename == "" {
		return nil, fmt.Errorf("%w: filename", shared.ErrMissingArgument)
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload payload: %w", err)
	}

	task := NewTask(UploadChange{
		Contents:    contents,
		Destination: destination.Href,
		Filename:    opts.Filename,
		Size:        int64(len(contents)),
		Fields:      opts.Fields,
		Attributes:  opts.Attributes,
	})
	if err := m.engine.Registry().Add(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Commit submits the staged changes to the backend API. This may take a while.
func (m *Manager) Commit(ctx context.Context) error {
	return m.engine.Commit(ctx)
}

// CheckSubmitted runs one reconciliation pass over submitted background jobs.
func (m *Manager) CheckSubmitted(ctx context.Context) error {
	return m.engine.CheckSubmitted(ctx)
}

// Await reconciles submitted tasks until all are terminal or the budget runs out.
func (m *Manager) Await(ctx context.Context, attempts int, delay time.Duration) error {
	return m.engine.Await(ctx, attempts, delay)
}
