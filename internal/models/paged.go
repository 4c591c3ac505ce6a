package models

import "encoding/json"

// PagingInfo holds URLs to other pages in a paged resource.
type PagingInfo struct {
	Prev  string `json:"prev"`
	Next  string `json:"next"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// Page is one page of a paged listing. Items stay raw so callers decode into
// their own entity type.
type Page struct {
	Data   []json.RawMessage `json:"data"`
	Paging *PagingInfo       `json:"paging"`
}

// envelope covers listing endpoints whose first page nests the pageable
// resource under an "assets" key.
type envelope struct {
	Assets *Page `json:"assets"`
}

// ParsePage decodes a listing response body into a Page, unwrapping the
// nested "assets" envelope some first pages use.
func ParsePage(body []byte) (*Page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Assets != nil {
		return env.Assets, nil
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
