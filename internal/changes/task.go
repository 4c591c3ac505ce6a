package changes

import (
	"fmt"

	"github.com/desertthunder/fwsync/internal/shared"
)

// Status is a task's position in its lifecycle. Transitions are monotonic
// forward only; Done and Failed are terminal.
type Status int

const (
	Uncommitted Status = iota
	Submitted
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Uncommitted:
		return "uncommitted"
	case Submitted:
		return "submitted"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Terminal reports whether no further transition can occur.
func (s Status) Terminal() bool {
	return s == Done || s == Failed
}

// Change is the sealed union of the three change variants. Exactly one
// variant backs every task.
type Change interface {
	// Kind names the variant for logs and the journal.
	Kind() string

	sealed()
}

// FieldValue wraps a new metadata value (string, boolean, or list of strings).
type FieldValue struct {
	Value any `json:"value"`
}

// MetadataChange sets metadata fields on a single asset. Commits as one
// synchronous update request.
type MetadataChange struct {
	AssetHref string
	Fields    map[string]FieldValue
}

func (MetadataChange) Kind() string { return "metadata" }
func (MetadataChange) sealed()      {}

// MoveChange relocates assets to a destination collection. Commits by
// creating a background job.
type MoveChange struct {
	AssetHrefs  []string
	Destination string
}

func (MoveChange) Kind() string { return "move" }
func (MoveChange) sealed()      {}

// MetadataPatch is one metadata edit directive attached to an upload.
type MetadataPatch struct {
	ID     int    `json:"id"`
	Action string `json:"action"` // add, append, prepend or erase
	Value  any    `json:"value"`
}

// AttributePatch is one file-attribute edit directive attached to an upload,
// e.g. the modification time under key "mt".
type AttributePatch struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UploadChange transmits a new asset in chunks. Commits by opening an upload
// session and streaming each chunk.
type UploadChange struct {
	Contents    []byte
	Destination string
	Filename    string
	Size        int64
	Fields      []MetadataPatch
	Attributes  []AttributePatch
}

func (UploadChange) Kind() string { return "upload" }
func (UploadChange) sealed()      {}

// Task is the unit of pending or in-flight change against the tenant.
type Task struct {
	ID     string
	Change Change

	status Status
}

// NewTask wraps a change with a fresh identity in the Uncommitted state.
func NewTask(change Change) *Task {
	return &Task{ID: shared.GenerateID(), Change: change}
}

// Status returns the task's current lifecycle position.
func (t *Task) Status() Status {
	return t.status
}

// transition advances the task's status, rejecting any move backwards or out
// of a terminal state.
func (t *Task) transition(next Status) error {
	allowed := false
	switch t.status {
	case Uncommitted:
		allowed = next == Submitted || next == Done || next == Failed
	case Submitted:
		allowed = next == Done || next == Failed
	}

	if !allowed {
		return fmt.Errorf("%w: %s -> %s (task %s)", shared.ErrBadTransition, t.status, next, t.ID)
	}

	t.status = next
	return nil
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(kind=%s, status=%s, id=%s)", t.Change.Kind(), t.status, t.ID)
}

// Handle records where a submitted task's background job can be polled.
type Handle struct {
	TaskID   string
	Location string
}
