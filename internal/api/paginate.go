package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/fwsync/internal/models"
)

// EachItem iterates over the "data" items in a paged resource, following
// paging.next links until the listing is exhausted or fn returns an error.
func (c *Connection) EachItem(ctx context.Context, path string, fn func(json.RawMessage) error) error {
	pageURL := path

	for pageURL != "" {
		resp, err := c.GET(ctx, pageURL)
		if err != nil {
			return err
		}

		page, err := models.ParsePage(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to parse page at %s: %w", pageURL, err)
		}
		if len(page.Data) == 0 {
			break
		}

		for _, item := range page.Data {
			if err := fn(item); err != nil {
				return err
			}
		}

		pageURL = ""
		if page.Paging != nil {
			pageURL = page.Paging.Next
		}
	}

	return nil
}

// CollectItems decodes every item of a paged resource into T.
func CollectItems[T any](ctx context.Context, c *Connection, path string) ([]T, error) {
	var items []T
	err := c.EachItem(ctx, path, func(raw json.RawMessage) error {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("failed to decode page item: %w", err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
