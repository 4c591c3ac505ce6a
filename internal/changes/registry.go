package changes

import (
	"fmt"

	"github.com/desertthunder/fwsync/internal/shared"
)

// Registry owns every task and background-task handle for one commit session.
//
// Iteration preserves insertion order; sequential commits process tasks in
// the order the caller staged them. The registry provides no locking of its
// own: a single owner serializes mutation with commit and reconciliation
// passes.
type Registry struct {
	order   []string
	tasks   map[string]*Task
	handles map[string]*Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks:   make(map[string]*Task),
		handles: make(map[string]*Handle),
	}
}

// Add inserts a task, rejecting re-insertion of an existing id.
func (r *Registry) Add(task *Task) error {
	if _, exists := r.tasks[task.ID]; exists {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateTask, task.ID)
	}

	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return nil
}

// Get returns the task with the given id, or an error when absent.
func (r *Registry) Get(id string) (*Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}
	return task, nil
}

// Remove deletes a task and its handle. Completed tasks are never evicted
// automatically; this is the caller's explicit cleanup.
func (r *Registry) Remove(id string) {
	if _, ok := r.tasks[id]; !ok {
		return
	}

	delete(r.tasks, id)
	delete(r.handles, id)
	for i, tid := range r.order {
		if tid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// All returns every task in insertion order.
func (r *Registry) All() []*Task {
	tasks := make([]*Task, 0, len(r.order))
	for _, id := range r.order {
		tasks = append(tasks, r.tasks[id])
	}
	return tasks
}

// ByStatus returns the tasks currently in the given status, in insertion order.
func (r *Registry) ByStatus(status Status) []*Task {
	var tasks []*Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.Status() == status {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}

// Handle returns the background-task handle for a task id, or nil when the
// task never submitted a background job.
func (r *Registry) Handle(id string) *Handle {
	return r.handles[id]
}

// putHandle records the status location of a freshly submitted background job.
func (r *Registry) putHandle(id, location string) {
	r.handles[id] = &Handle{TaskID: id, Location: location}
}
