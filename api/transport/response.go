package transport

import (
	"encoding/json"

	"github.com/taskboard/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope.
func NewError(code string, err interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// CommentResponse is a comment shaped for immediate client display.
type CommentResponse struct {
	ID         string `json:"id"`
	TaskID     string `json:"task_id"`
	UserID     string `json:"user_id"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}

// NewCommentResponse formats the timestamp the same way the board does.
func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		TaskID:     c.TaskID,
		UserID:     c.UserID,
		Content:    c.Content,
		AuthorName: c.AuthorName,
		CreatedAt:  domain.FormatCommentTime(c.CreatedAt),
	}
}
