package models

// Services lists the optional endpoints a tenant exposes.
type Services struct {
	Search           string `json:"search"`
	RenditionRequest string `json:"rendition_request"`
}

// InstanceInfo describes the connected tenant.
type InstanceInfo struct {
	Services  Services `json:"services"`
	SearchURL string   `json:"searchURL"`
}
