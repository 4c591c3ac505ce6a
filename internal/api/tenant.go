package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
)

// queryPlaceholder is substituted with the encoded query in a collection's searchURL.
const queryPlaceholder = "{?q}"

// Tenant is the entity-aware facade over a [Connection]: archives, assets and search.
type Tenant struct {
	api *Connection
}

// NewTenant wraps an existing connection.
func NewTenant(conn *Connection) *Tenant {
	return &Tenant{api: conn}
}

// Connection exposes the underlying transport for collaborators that need raw requests.
func (t *Tenant) Connection() *Connection {
	return t.api
}

// InstanceInfo fetches the tenant's service discovery document.
func (t *Tenant) InstanceInfo(ctx context.Context) (*models.InstanceInfo, error) {
	resp, err := t.api.GET(ctx, "/fotoweb/me")
	if err != nil {
		return nil, err
	}

	var info models.InstanceInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode instance info: %w", err)
	}
	return &info, nil
}

// Collections lists the tenant's archives across all pages.
func (t *Tenant) Collections(ctx context.Context) ([]models.Collection, error) {
	return CollectItems[models.Collection](ctx, t.api, "/fotoweb/archives")
}

// CollectionByID fetches a single archive.
func (t *Tenant) CollectionByID(ctx context.Context, id int) (*models.Collection, error) {
	resp, err := t.api.GET(ctx, fmt.Sprintf("/fotoweb/archives/%d", id))
	if err != nil {
		return nil, err
	}

	var coll models.Collection
	if err := json.Unmarshal(resp.Body, &coll); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	return &coll, nil
}

// AssetByHref fetches the asset at its href.
func (t *Tenant) AssetByHref(ctx context.Context, href string) (*models.Asset, error) {
	resp, err := t.api.GET(ctx, href)
	if err != nil {
		return nil, err
	}

	var asset models.Asset
	if err := json.Unmarshal(resp.Body, &asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset: %w", err)
	}
	return &asset, nil
}

// Assets iterates the (paginated) assets of a collection.
func (t *Tenant) Assets(ctx context.Context, coll models.Collection) ([]models.Asset, error) {
	return CollectItems[models.Asset](ctx, t.api, coll.Data)
}

// SearchAssets evaluates a search expression against a collection.
//
// The collection's searchURL carries a query placeholder; results come back
// ordered by oldest modification first.
func (t *Tenant) SearchAssets(ctx context.Context, coll models.Collection, query string) ([]models.Asset, error) {
	if coll.SearchURL == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotSearchable, coll.Name)
	}

	q := ";o=+?q=" + url.QueryEscape(strings.TrimSpace(query))
	searchURL := strings.Replace(coll.SearchURL, queryPlaceholder, q, 1)

	return CollectItems[models.Asset](ctx, t.api, searchURL)
}
