package transport

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskboard/backend/domain"
)

var validate = validator.New()

// Validate checks struct tags and converts failures into domain errors so
// handlers respond with the normal envelope.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "validation failed", err)
	}
	return nil
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProjectCreateRequest struct {
	Name string `json:"name" validate:"required"`
}

type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type TaskCreateRequest struct {
	Content    string `json:"content" validate:"required"`
	Priority   string `json:"priority"`
	DueDate    string `json:"due_date"`
	AssigneeID string `json:"assignee_id"`
}

type TaskUpdateRequest struct {
	Content    string `json:"content" validate:"required"`
	Priority   string `json:"priority" validate:"required"`
	DueDate    string `json:"due_date"`
	AssigneeID string `json:"assignee_id"`
}

type TaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SubtaskCreateRequest struct {
	TaskID  string `json:"task_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type SubtaskUpdateRequest struct {
	IsComplete *bool `json:"is_complete" validate:"required"`
}

type CommentCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

// ParseDueDate accepts the board's YYYY-MM-DD shape.
func ParseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(domain.DueDateFormat, value)
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "due_date must be YYYY-MM-DD")
	}
	return &parsed, nil
}
