package changes

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/fwsync/internal/api"
	tu "github.com/desertthunder/fwsync/internal/testing"
)

func TestEngineCommit(t *testing.T) {
	t.Run("MetadataChange", func(t *testing.T) {
		t.Run("Success Is Done With One PATCH", func(t *testing.T) {
			transport := &tu.FakeTransport{}
			engine := NewEngine(NewRegistry(), transport, nil)

			task := NewTask(MetadataChange{
				AssetHref: "/fotoweb/archives/1/a.jpg",
				Fields:    map[string]FieldValue{"5": {Value: "archived"}},
			})
			engine.Registry().Add(task)

			if err := engine.Commit(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if task.Status() != Done {
				t.Errorf("expected done, got %s", task.Status())
			}

			patches := transport.Calls(http.MethodPatch)
			if len(patches) != 1 {
				t.Fatalf("expected exactly one PATCH, got %d", len(patches))
			}
			if patches[0].Path != "/fotoweb/archives/1/a.jpg" {
				t.Errorf("expected asset href path, got %s", patches[0].Path)
			}
			if ct := patches[0].Headers["Content-Type"]; ct != "application/vnd.fotoware.assetupdate+json" {
				t.Errorf("unexpected content type %s", ct)
			}
			if got := string(patches[0].Body); got != `{"metadata":{"5":{"value":"archived"}}}` {
				t.Errorf("unexpected patch body %s", got)
			}
		})

		t.Run("Rejection Is Failed, Never Submitted", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					return tu.ErrorResponse(method, path, http.StatusForbidden)
				},
			}
			engine := NewEngine(NewRegistry(), transport, nil)

			task := NewTask(MetadataChange{AssetHref: "/a", Fields: map[string]FieldValue{"1": {Value: true}}})
			engine.Registry().Add(task)

			err := engine.Commit(context.Background())
			if err == nil {
				t.Fatal("expected commit to report the failure")
			}
			if task.Status() != Failed {
				t.Errorf("expected failed, got %s", task.Status())
			}
		})
	})

	t.Run("MoveChange", func(t *testing.T) {
		t.Run("Success Is Submitted With Handle", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					return tu.JSONResponse(http.StatusCreated, map[string]any{
						"location":    "/fotoweb/me/background-tasks/77",
						"maxInterval": 5,
						"status":      "pending",
					}), nil
				},
			}
			engine := NewEngine(NewRegistry(), transport, nil)

			task := NewTask(MoveChange{
				AssetHrefs:  []string{"/fotoweb/archives/1/a.jpg", "/fotoweb/archives/1/b.jpg"},
				Destination: "/fotoweb/archives/2/",
			})
			engine.Registry().Add(task)

			if err := engine.Commit(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if task.Status() != Submitted {
				t.Errorf("expected submitted, got %s", task.Status())
			}

			handle := engine.Registry().Handle(task.ID)
			if handle == nil || handle.Location != "/fotoweb/me/background-tasks/77" {
				t.Errorf("expected recorded status location, got %+v", handle)
			}

			posts := transport.Calls(http.MethodPost)
			if len(posts) != 1 {
				t.Fatalf("expected one POST, got %d", len(posts))
			}
			if posts[0].Path != "/fotoweb/me/background-tasks/" {
				t.Errorf("unexpected path %s", posts[0].Path)
			}

			body := tu.DecodeJSON(t, posts[0].Body)
			if body["job-destination"] != "/fotoweb/archives/2/" {
				t.Errorf("unexpected destination %v", body["job-destination"])
			}
			assets, ok := body["assets"].([]any)
			if !ok || len(assets) != 2 {
				t.Fatalf("expected two asset refs, got %v", body["assets"])
			}
			if first, _ := assets[0].(map[string]any); first["href"] != "/fotoweb/archives/1/a.jpg" {
				t.Errorf("expected ordered hrefs, got %v", assets)
			}
		})

		t.Run("Missing Status Location Fails The Task", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					return tu.JSONResponse(http.StatusCreated, map[string]any{"status": "pending"}), nil
				},
			}
			engine := NewEngine(NewRegistry(), transport, nil)

			task := NewTask(MoveChange{AssetHrefs: []string{"/a"}, Destination: "/d"})
			engine.Registry().Add(task)

			if err := engine.Commit(context.Background()); err == nil {
				t.Fatal("expected error for missing location")
			}
			if task.Status() != Failed {
				t.Errorf("expected failed, got %s", task.Status())
			}
		})
	})

	t.Run("Failure Policy", func(t *testing.T) {
		t.Run("A Failed Submission Does Not Abort The Pass", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					if method == http.MethodPost {
						// move submission rejected
						return tu.ErrorResponse(method, path, http.StatusBadRequest)
					}
					return tu.JSONResponse(http.StatusOK, map[string]any{}), nil
				},
			}
			engine := NewEngine(NewRegistry(), transport, nil)

			move := NewTask(MoveChange{AssetHrefs: []string{"/a"}, Destination: "/d"})
			meta := NewTask(MetadataChange{AssetHref: "/b", Fields: map[string]FieldValue{"5": {Value: "x"}}})
			engine.Registry().Add(move)
			engine.Registry().Add(meta)

			err := engine.Commit(context.Background())
			if err == nil {
				t.Fatal("expected the move failure to be reported")
			}

			var se *api.StatusError
			if !errors.As(err, &se) {
				t.Errorf("expected the status error to be wrapped, got %v", err)
			}
			if move.Status() != Failed {
				t.Errorf("expected move to be failed, got %s", move.Status())
			}
			if meta.Status() != Done {
				t.Errorf("expected later metadata task to still commit, got %s", meta.Status())
			}
		})

		t.Run("Commit Skips Non-Uncommitted Tasks", func(t *testing.T) {
			transport := &tu.FakeTransport{}
			engine := NewEngine(NewRegistry(), transport, nil)

			done := NewTask(MetadataChange{AssetHref: "/a", Fields: map[string]FieldValue{"1": {Value: "v"}}})
			engine.Registry().Add(done)

			if err := engine.Commit(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := engine.Commit(context.Background()); err != nil {
				t.Fatalf("expected second pass to be a no-op, got %v", err)
			}
			if len(transport.Requests) != 1 {
				t.Errorf("expected no re-submission, got %d requests", len(transport.Requests))
			}
		})

		t.Run("Cancelled Context Stops The Pass", func(t *testing.T) {
			transport := &tu.FakeTransport{}
			engine := NewEngine(NewRegistry(), transport, nil)
			engine.Registry().Add(NewTask(MetadataChange{AssetHref: "/a", Fields: nil}))

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if err := engine.Commit(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
			if len(transport.Requests) != 0 {
				t.Errorf("expected no requests after cancellation, got %d", len(transport.Requests))
			}
		})
	})
}
