package studyplan

// TaskTracker tracks which plan sections the user has checked off.
// In-memory only; completion state lives with the current plan and is
// discarded with it.
type TaskTracker struct {
	completed map[string]bool
}

// NewTaskTracker creates an empty tracker.
func NewTaskTracker() *TaskTracker {
	return &TaskTracker{completed: make(map[string]bool)}
}

// Toggle flips the completion state of task.
func (t *TaskTracker) Toggle(task string) {
	if t.completed[task] {
		delete(t.completed, task)
		return
	}
	t.completed[task] = true
}

// Completed reports whether task has been checked off.
func (t *TaskTracker) Completed(task string) bool {
	return t.completed[task]
}

// Count returns the number of completed tasks.
func (t *TaskTracker) Count() int {
	return len(t.completed)
}
