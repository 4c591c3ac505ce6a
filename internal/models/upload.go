package models

// UploadInfo is returned when an upload session is opened. The server decides
// the chunk size and how many chunks the declared file size requires.
type UploadInfo struct {
	ID        string `json:"id"`
	ChunkSize int64  `json:"chunkSize"`
	NumChunks int    `json:"numChunks"`
}

// UploadResult carries the created asset's location once an upload job finishes.
type UploadResult struct {
	AssetURL     string `json:"assetUrl"`
	AssetDetails string `json:"assetDetails"`
}

// UploadError carries the server's failure detail for a failed upload job.
type UploadError struct {
	Value   string `json:"value"`
	Message string `json:"message"`
}

// UploadStatus is the status payload polled for upload jobs.
type UploadStatus struct {
	Status string        `json:"status"`
	Result *UploadResult `json:"result"`
	Error  *UploadError  `json:"error"`
}
