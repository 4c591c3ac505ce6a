package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// API and tenant errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrNotSearchable  = fmt.Errorf("archive is not searchable")
	ErrAssetNotFound  = fmt.Errorf("asset not found")
	ErrNoRenditionSvc = fmt.Errorf("tenant has no rendition request service")

	// Change engine errors
	ErrBadDestination = fmt.Errorf("destination does not accept this operation")
	ErrDuplicateTask  = fmt.Errorf("task already registered")
	ErrTaskNotFound   = fmt.Errorf("task not found")
	ErrUploadFailed   = fmt.Errorf("upload failed")
	ErrBadTransition  = fmt.Errorf("invalid task status transition")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
