package models

// Job and task status vocabulary reported by the background-task endpoints.
const (
	JobPending    = "pending"
	JobInProgress = "inProgress"
	JobDone       = "done"
	JobFailed     = "failed"

	// Upload jobs additionally report these before data arrives. The API
	// misspells "inProgress" on this endpoint, so both spellings occur.
	UploadAwaitingData   = "awaitingData"
	UploadInProgressTypo = "inProgess"
)

// MoveResponse is returned when a background move job is created.
//
// Location is the URL at which the job's progress can be polled.
type MoveResponse struct {
	MaxInterval int    `json:"maxInterval"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// BackgroundJobResult describes one asset processed by a background job.
type BackgroundJobResult struct {
	Href                    string   `json:"href"`
	Done                    bool     `json:"done"`
	ResultHref              string   `json:"result-href"`
	ResultCollectionCreated bool     `json:"result-collection-created"`
	ResultCollectionHref    string   `json:"result-collection-href"`
	ChangedThumbnailFields  []string `json:"changed-thumbnailFields"`
	OriginalRemoved         bool     `json:"original-removed"`
	ResultFilename          string   `json:"result-filename"`
}

// BackgroundJobInfo is the job half of a background-task status payload.
type BackgroundJobInfo struct {
	Status  string                `json:"status"`
	Updates int                   `json:"updates"`
	Result  []BackgroundJobResult `json:"result"`
}

// BackgroundTaskInfo is the task half of a background-task status payload.
type BackgroundTaskInfo struct {
	Status   string `json:"status"`
	Type     string `json:"type"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
	ID       string `json:"id"`
}

// BackgroundTaskStatus is the status payload polled for move jobs.
type BackgroundTaskStatus struct {
	Job  BackgroundJobInfo  `json:"job"`
	Task BackgroundTaskInfo `json:"task"`
}
