package domain

import "time"

// Task statuses — the three board buckets.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// Default priority applied when a task is created without one.
const PriorityMedium = "medium"

// ValidStatus reports whether s is one of the three board statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Task represents one card on a project's board.
type Task struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Subtask is a checklist line under a task. It carries no project id of its
// own: tenant scoping always joins through the parent task.
type Subtask struct {
	ID         string `json:"id"`
	TaskID     string `json:"task_id"`
	Content    string `json:"content"`
	IsComplete bool   `json:"is_complete"`
}

// Comment is authored by a user on a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized so clients can render without a second lookup.
	AuthorName string `json:"author_name,omitempty"`
}
