// Package renditions fetches rendered variants and previews of assets.
//
// Renditions are produced on demand: a rendition request returns a download
// location that answers 202 until the rendering is ready, so downloads go
// through the bounded polling retrier.
package renditions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/fwsync/internal/api"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/poll"
	"github.com/desertthunder/fwsync/internal/shared"
)

const (
	requestContentType = "application/vnd.fotoware.rendition-request+json"
	responseAccept     = "application/vnd.fotoware.rendition-response+json"
)

// Transport is the slice of the API connection this package needs.
// Satisfied by [api.Connection].
type Transport interface {
	GET(ctx context.Context, path string) (*api.Response, error)
	POST(ctx context.Context, path string, headers map[string]string, body []byte) (*api.Response, error)
	GETWithBearer(ctx context.Context, path, token string) (*api.Response, error)
}

// Service requests and downloads renditions for a tenant.
type Service struct {
	api     Transport
	retrier poll.Retrier
}

// NewService creates a rendition service using the given polling retrier for
// readiness waits.
func NewService(transport Transport, retrier poll.Retrier) *Service {
	return &Service{api: transport, retrier: retrier}
}

// Request starts a rendition request at the tenant's rendition-request
// endpoint and returns the location where the rendition can be downloaded.
//
// Use [Service.Download] unless you need to intervene between request and
// readiness.
func (s *Service) Request(ctx context.Context, endpoint string, rendition models.Rendition) (string, error) {
	if endpoint == "" {
		return "", shared.ErrNoRenditionSvc
	}

	body, err := json.Marshal(map[string]string{"href": rendition.Href})
	if err != nil {
		return "", fmt.Errorf("failed to encode rendition request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": requestContentType,
		"Accept":       responseAccept,
	}
	resp, err := s.api.POST(ctx, endpoint, headers, body)
	if err != nil {
		return "", err
	}

	location := resp.Headers.Get("Location")
	if location == "" {
		return "", fmt.Errorf("%w: rendition response carried no location", shared.ErrAPIRequest)
	}
	return location, nil
}

// Fetch waits for a requested rendition to become ready and returns its bytes.
func (s *Service) Fetch(ctx context.Context, location string) ([]byte, error) {
	resp, err := s.retrier.UntilReady(ctx, s.api, location)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Download requests a rendition and waits until its bytes are available.
func (s *Service) Download(ctx context.Context, endpoint string, rendition models.Rendition) ([]byte, error) {
	location, err := s.Request(ctx, endpoint, rendition)
	if err != nil {
		return nil, err
	}
	return s.Fetch(ctx, location)
}

// Preview returns the preview image binary. Previews authenticate with the
// asset's own previewToken instead of the connection's credentials.
func (s *Service) Preview(ctx context.Context, asset *models.Asset, preview models.Preview) ([]byte, error) {
	resp, err := s.api.GETWithBearer(ctx, preview.Href, asset.PreviewToken)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
