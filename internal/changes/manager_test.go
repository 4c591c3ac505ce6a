package changes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/fwsync/internal/api"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
	tu "github.com/desertthunder/fwsync/internal/testing"
)

func TestManager(t *testing.T) {
	asset := &models.Asset{Href: "/fotoweb/archives/1/a.jpg"}
	movable := models.Collection{Name: "Press", Href: "/fotoweb/archives/2/", CanMoveTo: true, CanUploadTo: true}
	readonly := models.Collection{Name: "Search Archive"}

	t.Run("Staging Performs No IO", func(t *testing.T) {
		transport := &tu.FakeTransport{}
		manager := NewManager(transport, nil)

		manager.SetValue(asset, "5", "archived")
		manager.Move([]models.Asset{*asset}, movable)
		manager.Upload(bytes.NewReader([]byte("data")), movable, UploadOpts{Filename: "f.jpg"})

		if len(transport.Requests) != 0 {
			t.Errorf("expected no requests during staging, got %d", len(transport.Requests))
		}
		if got := len(manager.Tasks()); got != 3 {
			t.Errorf("expected 3 staged tasks, got %d", got)
		}
	})

	t.Run("Move Rejects Invalid Destination", func(t *testing.T) {
		manager := NewManager(&tu.FakeTransport{}, nil)

		if _, err := manager.Move([]models.Asset{*asset}, readonly); !errors.Is(err, shared.ErrBadDestination) {
			t.Errorf("expected bad destination error, got %v", err)
		}
		if len(manager.Tasks()) != 0 {
			t.Error("expected nothing to be staged")
		}
	})

	t.Run("Upload Rejects Invalid Destination", func(t *testing.T) {
		manager := NewManager(&tu.FakeTransport{}, nil)

		_, err := manager.Upload(bytes.NewReader(nil), readonly, UploadOpts{Filename: "f"})
		if !errors.Is(err, shared.ErrBadDestination) {
			t.Errorf("expected bad destination error, got %v", err)
		}
	})

	t.Run("Upload Requires Filename", func(t *testing.T) {
		manager := NewManager(&tu.FakeTransport{}, nil)

		if _, err := manager.Upload(bytes.NewReader(nil), movable, UploadOpts{}); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected missing argument error, got %v", err)
		}
	})

	t.Run("Upload Declares Payload Length As Size", func(t *testing.T) {
		manager := NewManager(&tu.FakeTransport{}, nil)

		task, err := manager.Upload(bytes.NewReader([]byte("hello world")), movable, UploadOpts{Filename: "f.txt"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		change := task.Change.(UploadChange)
		if change.Size != 11 || len(change.Contents) != 11 {
			t.Errorf("expected 11-byte payload, got size=%d len=%d", change.Size, len(change.Contents))
		}
	})

	t.Run("End To End", func(t *testing.T) {
		t.Run("Metadata Commit", func(t *testing.T) {
			transport := &tu.FakeTransport{}
			manager := NewManager(transport, nil)

			task, err := manager.SetValue(asset, "5", "archived")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if err := manager.Commit(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if task.Status() != Done {
				t.Errorf("expected done, got %s", task.Status())
			}

			patches := transport.Calls(http.MethodPatch)
			if len(patches) != 1 {
				t.Fatalf("expected exactly one PATCH, got %d", len(patches))
			}
			if got := string(patches[0].Body); got != `{"metadata":{"5":{"value":"archived"}}}` {
				t.Errorf("unexpected patch body %s", got)
			}
		})

		t.Run("Move Commit Then Reconcile", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					if method == http.MethodPost {
						return tu.JSONResponse(http.StatusCreated, map[string]any{"location": "/tasks/5"}), nil
					}
					return tu.JSONResponse(http.StatusOK, map[string]any{
						"task": map[string]any{"status": "done"},
					}), nil
				},
			}
			manager := NewManager(transport, nil)

			assets := []models.Asset{{Href: "/a/1.jpg"}, {Href: "/a/2.jpg"}}
			task, err := manager.Move(assets, movable)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if err := manager.Commit(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if task.Status() != Submitted {
				t.Fatalf("expected submitted after commit, got %s", task.Status())
			}
			if handle := manager.Engine().Registry().Handle(task.ID); handle == nil || handle.Location == "" {
				t.Fatal("expected a non-empty status location")
			}

			if err := manager.CheckSubmitted(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if task.Status() != Done {
				t.Errorf("expected done after reconciliation, got %s", task.Status())
			}
		})
	})
}
