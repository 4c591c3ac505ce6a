package renditions

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/desertthunder/fwsync/internal/api"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/poll"
	"github.com/desertthunder/fwsync/internal/shared"
	tu "github.com/desertthunder/fwsync/internal/testing"
)

func fastRetrier() poll.Retrier {
	return poll.NewRetrier(3, time.Millisecond)
}

func TestService(t *testing.T) {
	rendition := models.Rendition{Href: "/fotoweb/archives/1/a.jpg/renditions/web", Profile: "web"}

	t.Run("Request", func(t *testing.T) {
		t.Run("Returns Location Header", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					headers := http.Header{}
					headers.Set("Location", "/renditions/out/1")
					return &api.Response{StatusCode: http.StatusCreated, Headers: headers}, nil
				},
			}
			svc := NewService(transport, fastRetrier())

			location, err := svc.Request(context.Background(), "/fotoweb/services/renditions", rendition)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if location != "/renditions/out/1" {
				t.Errorf("expected location from header, got %s", location)
			}

			req := transport.Requests[0]
			if req.Headers["Content-Type"] != "application/vnd.fotoware.rendition-request+json" {
				t.Errorf("unexpected content type %s", req.Headers["Content-Type"])
			}
			body := tu.DecodeJSON(t, req.Body)
			if body["href"] != rendition.Href {
				t.Errorf("expected rendition href in body, got %v", body)
			}
		})

		t.Run("Missing Endpoint", func(t *testing.T) {
			svc := NewService(&tu.FakeTransport{}, fastRetrier())

			if _, err := svc.Request(context.Background(), "", rendition); !errors.Is(err, shared.ErrNoRenditionSvc) {
				t.Errorf("expected missing service error, got %v", err)
			}
		})

		t.Run("Missing Location Header", func(t *testing.T) {
			transport := &tu.FakeTransport{
				Handler: func(method, path string, body []byte) (*api.Response, error) {
					return &api.Response{StatusCode: http.StatusCreated, Headers: http.Header{}}, nil
				},
			}
			svc := NewService(transport, fastRetrier())

			if _, err := svc.Request(context.Background(), "/svc", rendition); err == nil {
				t.Error("expected error for missing location")
			}
		})
	})

	t.Run("Download Waits For Readiness", func(t *testing.T) {
		gets := 0
		transport := &tu.FakeTransport{
			Handler: func(method, path string, body []byte) (*api.Response, error) {
				if method == http.MethodPost {
					headers := http.Header{}
					headers.Set("Location", "/renditions/out/1")
					return &api.Response{StatusCode: http.StatusCreated, Headers: headers}, nil
				}

				gets++
				if gets == 1 {
					// still rendering: a 202 is a success on the transport
					return &api.Response{StatusCode: http.StatusAccepted}, nil
				}
				return &api.Response{StatusCode: http.StatusOK, Body: []byte("image-bytes")}, nil
			},
		}
		svc := NewService(transport, fastRetrier())

		data, err := svc.Download(context.Background(), "/svc", rendition)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "image-bytes" {
			t.Errorf("expected rendition bytes, got %q", data)
		}
		if gets != 2 {
			t.Errorf("expected a 202 then a 200, got %d GETs", gets)
		}
	})

	t.Run("Preview Uses Asset Token", func(t *testing.T) {
		transport := &tu.FakeTransport{
			Handler: func(method, path string, body []byte) (*api.Response, error) {
				return &api.Response{StatusCode: http.StatusOK, Body: []byte("preview")}, nil
			},
		}
		svc := NewService(transport, fastRetrier())

		asset := &models.Asset{PreviewToken: "tok-123"}
		data, err := svc.Preview(context.Background(), asset, models.Preview{Href: "/p/1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "preview" {
			t.Errorf("expected preview bytes, got %q", data)
		}

		req := transport.Requests[0]
		if req.Headers["Authorization"] != "Bearer tok-123" {
			t.Errorf("expected preview token auth, got %s", req.Headers["Authorization"])
		}
	})
}
