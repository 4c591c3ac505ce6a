package models

import "time"

// BuiltinField is a named metadata field present on every asset (title, description, etc.).
type BuiltinField struct {
	Field    string `json:"field"`
	Required bool   `json:"required"`
	Value    any    `json:"value"`
}

// MetadataField is a numbered, tenant-customizable metadata field.
//
// Value is a string, a boolean, or a list of strings depending on the field's schema.
type MetadataField struct {
	Value any `json:"value"`
}

// Preview describes a pre-rendered preview image of an asset.
type Preview struct {
	Size   int    `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Square bool   `json:"square"`
	Href   string `json:"href"`
}

// Rendition describes a downloadable rendering of an asset.
type Rendition struct {
	Href     string `json:"href"`
	Profile  string `json:"profile"`
	Original bool   `json:"original"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Asset is a file in the asset library, like a photo, video, ZIP file, etc.
type Asset struct {
	Href           string `json:"href"`
	PhysicalFileID string `json:"physicalFileId"`

	Filename string     `json:"filename"`
	Filesize int64      `json:"filesize"`
	Doctype  string     `json:"doctype"`
	Created  *time.Time `json:"created"`
	Modified *time.Time `json:"modified"`

	BuiltinFields []BuiltinField           `json:"builtinFields"`
	Metadata      map[string]MetadataField `json:"metadata"`

	Previews     []Preview   `json:"previews"`
	PreviewToken string      `json:"previewToken"`
	Renditions   []Rendition `json:"renditions"`

	ArchiveID int `json:"archiveId"`
}

// GetBuiltin returns the value of a builtin metadata field, or nil when absent.
func (a *Asset) GetBuiltin(key string) any {
	for _, field := range a.BuiltinFields {
		if field.Field == key {
			return field.Value
		}
	}
	return nil
}

// GetMetadata returns the value of a numbered metadata field, or nil when absent.
func (a *Asset) GetMetadata(key string) any {
	field, ok := a.Metadata[key]
	if !ok {
		return nil
	}
	return field.Value
}

// RenditionQuery constrains [Asset.FindRendition]. Zero values match everything.
type RenditionQuery struct {
	Profile  string
	Original *bool
	Size     int
	Width    int
	Height   int
}

// FindRendition returns the first rendition that qualifies with the specified
// constraints, or nil when none match.
//
// A size equals the length of the longest side, so matching a minimum size the
// shortest side determines the match.
func (a *Asset) FindRendition(q RenditionQuery) *Rendition {
	for i := range a.Renditions {
		r := &a.Renditions[i]
		if q.Profile != "" && r.Profile != q.Profile {
			continue
		}
		if q.Original != nil && r.Original != *q.Original {
			continue
		}
		if min(r.Width, r.Height) < q.Size {
			continue
		}
		if r.Width < q.Width || r.Height < q.Height {
			continue
		}
		return r
	}
	return nil
}

// PreviewQuery constrains [Asset.FindPreview]. Zero values match everything.
type PreviewQuery struct {
	Size   int
	Width  int
	Height int
	Square *bool
}

// FindPreview returns the first preview that qualifies with the specified constraints, or nil when none match.
func (a *Asset) FindPreview(q PreviewQuery) *Preview {
	for i := range a.Previews {
		p := &a.Previews[i]
		if p.Size < q.Size || p.Width < q.Width || p.Height < q.Height {
			continue
		}
		if q.Square != nil && p.Square != *q.Square {
			continue
		}
		return p
	}
	return nil
}
