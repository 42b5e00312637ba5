package domain

import "time"

// Date formats used on the board read model. English month abbreviations,
// locale-invariant.
const (
	DueDateFormat   = "2006-01-02"
	CreatedAtFormat = "Jan 02, 2006"
)

// TaskView is a task shaped for board rendering: dates pre-formatted,
// assignee name and comment count denormalized, subtasks nested.
type TaskView struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	DueDate      string    `json:"due_date,omitempty"`
	AssigneeID   string    `json:"assignee_id,omitempty"`
	AssigneeName string    `json:"assignee_name,omitempty"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    string    `json:"created_at"`
	Subtasks     []Subtask `json:"subtasks"`
}

// Board is the three-bucket view of a project's tasks. Buckets are always
// non-nil so an empty project serializes as three empty lists.
type Board struct {
	Todo       []TaskView `json:"todo"`
	InProgress []TaskView `json:"inprogress"`
	Done       []TaskView `json:"done"`
}

// NewTaskView shapes a task for the board, formatting its dates.
func NewTaskView(t Task, assigneeName string, commentCount int) TaskView {
	v := TaskView{
		ID:           t.ID,
		Content:      t.Content,
		Status:       t.Status,
		Priority:     t.Priority,
		AssigneeID:   t.AssigneeID,
		AssigneeName: assigneeName,
		CommentCount: commentCount,
		CreatedAt:    t.CreatedAt.Format(CreatedAtFormat),
		Subtasks:     []Subtask{},
	}
	if t.DueDate != nil {
		v.DueDate = t.DueDate.Format(DueDateFormat)
	}
	return v
}

// FormatCommentTime renders a comment timestamp for immediate client display.
func FormatCommentTime(t time.Time) string {
	return t.Format(CreatedAtFormat)
}
