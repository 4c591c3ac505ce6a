package models

// Collection is an archive or folder that assets live in.
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Data        string `json:"data"`
	Type        string `json:"type"`

	Created  string `json:"created"`
	Modified string `json:"modified"`

	SearchURL   string `json:"searchURL"`
	OriginalURL string `json:"originalURL"`

	IsSearchable bool     `json:"isSearchable"`
	Permissions  []string `json:"permissions"`
	CanMoveTo    bool     `json:"canMoveTo"`
	CanUploadTo  bool     `json:"canUploadTo"`

	AssetCount int `json:"assetCount"`
}
