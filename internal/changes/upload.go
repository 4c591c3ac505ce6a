package changes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
)

// uploadAsset runs the chunked upload protocol: open a session, then
// transmit each chunk in order. Returns the session descriptor so the caller
// can build the status-polling location.
func (e *Engine) uploadAsset(ctx context.Context, change UploadChange) (*models.UploadInfo, error) {
	body, err := json.Marshal(map[string]any{
		"destination": change.Destination,
		"filename":    change.Filename,
		"hasXmp":      false,
		"fileSize":    change.Size,
		"checkoutId":  nil,
		"metadata": map[string]any{
			"fields":     change.Fields,
			"attributes": change.Attributes,
		},
		"comment": nil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload request: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	resp, err := e.api.POST(ctx, uploadsPath, headers, body)
	if err != nil {
		return nil, err
	}

	var info models.UploadInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode upload session: %w", err)
	}

	for i := 0; i < info.NumChunks; i++ {
		if err := e.uploadChunk(ctx, i, &info, change); err != nil {
			return nil, err
		}
	}

	return &info, nil
}

// uploadChunk transmits chunk i as a single multipart body part named "chunk".
//
// The chunk is sliced by bytes remaining after prior chunks, so the final
// chunk carries exactly the leftover instead of a full chunkSize window.
func (e *Engine) uploadChunk(ctx context.Context, i int, info *models.UploadInfo, change UploadChange) error {
	offset := int64(i) * info.ChunkSize
	size := min(info.ChunkSize, change.Size-offset)
	if size < 0 {
		size = 0
	}

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="chunk"; filename="chunk"`)
	header.Set("Content-Type", "application/octet-stream")

	part, err := mp.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := part.Write(change.Contents[offset : offset+size]); err != nil {
		return fmt.Errorf("failed to write chunk body: %w", err)
	}
	if err := mp.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := fmt.Sprintf("%s/%s/chunks/%d", uploadsPath, info.ID, i)
	headers := map[string]string{"Content-Type": mp.FormDataContentType()}

	resp, err := e.api.POST(ctx, path, headers, buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: chunk %d of %s: %v", shared.ErrUploadFailed, i, change.Filename, err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: chunk %d of %s: unexpected status %d", shared.ErrUploadFailed, i, change.Filename, resp.StatusCode)
	}

	return nil
}
