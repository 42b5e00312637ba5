package domain

import "time"

// Activity actions recorded against a project.
const (
	ActionTaskCreated    = "task.created"
	ActionTaskUpdated    = "task.updated"
	ActionTaskMoved      = "task.moved"
	ActionTaskDeleted    = "task.deleted"
	ActionSubtaskAdded   = "subtask.added"
	ActionSubtaskUpdated = "subtask.updated"
	ActionCommentAdded   = "comment.added"
	ActionMemberInvited  = "member.invited"
	ActionProjectCreated = "project.created"
)

// Activity is one entry in a project's activity feed.
type Activity struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
