// Package models defines read-only mirrors of the remote tenant's entities.
//
// These types deserialize API responses; they never carry client-side state.
//
//   - [Asset] : a file in the asset library with builtin and numbered metadata fields
//   - [Collection] : an archive or folder that assets live in
//   - [Page] / [PagingInfo] : paged listing envelopes
//   - [MoveResponse] / [BackgroundTaskStatus] : background move-job submission and status payloads
//   - [UploadInfo] / [UploadStatus] : chunked upload session and status payloads
//   - [InstanceInfo] : tenant service discovery (search, rendition requests)
package models
