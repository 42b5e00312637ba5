package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/httpcontext"
	boardUC "github.com/taskboard/backend/usecase/board"
	taskUC "github.com/taskboard/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	tasks *taskUC.UseCase
	board *boardUC.UseCase
}

func NewTaskHandler(tasks *taskUC.UseCase, board *boardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		tasks:       tasks,
		board:       board,
	}
}

// @Summary The project board, grouped by status
// @Tags tasks
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, err := h.board.GetBoard(stdCtx, projectID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board)
}

// @Summary Create a task
// @Tags tasks
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if !h.decode(ctx, &req) {
		return
	}
	due, err := transport.ParseDueDate(req.DueDate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.tasks.AddTask(stdCtx, userID, projectID, req.Content, req.Priority, due, req.AssigneeID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, task)
}

// @Summary Update a task's details
// @Tags tasks
// @Router /projects/{id}/tasks/{taskId} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)

	var req transport.TaskUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}
	due, err := transport.ParseDueDate(req.DueDate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tasks.UpdateTaskDetails(stdCtx, userID, projectID, taskID, req.Content, req.Priority, due, req.AssigneeID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Move a task between buckets
// @Tags tasks
// @Router /projects/{id}/tasks/{taskId}/status [put]
func (h *TaskHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)

	var req transport.TaskStatusRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tasks.UpdateTaskStatus(stdCtx, userID, projectID, taskID, req.Status); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete a task
// @Tags tasks
// @Router /projects/{id}/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tasks.DeleteTask(stdCtx, userID, projectID, taskID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary List a task's comments
// @Tags comments
// @Router /projects/{id}/tasks/{taskId}/comments [get]
func (h *TaskHandler) ListComments(ctx *fasthttp.RequestCtx) {
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.tasks.ListComments(stdCtx, projectID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	out := make([]transport.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, transport.NewCommentResponse(c))
	}
	h.respondSuccess(ctx, http.StatusOK, out)
}

// @Summary Comment on a task
// @Tags comments
// @Router /projects/{id}/tasks/{taskId}/comments [post]
func (h *TaskHandler) AddComment(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)

	var req transport.CommentCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comment, err := h.tasks.AddComment(stdCtx, userID, projectID, taskID, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.NewCommentResponse(*comment))
}

// @Summary Add a subtask under a task
// @Tags subtasks
// @Router /projects/{id}/subtasks [post]
func (h *TaskHandler) AddSubtask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}

	var req transport.SubtaskCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subtask, err := h.tasks.AddSubtask(stdCtx, userID, projectID, req.TaskID, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, subtask)
}

// @Summary Toggle a subtask's completion
// @Tags subtasks
// @Router /projects/{id}/subtasks/{subtaskId} [put]
func (h *TaskHandler) UpdateSubtask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := h.projectID(ctx)
	if projectID == "" {
		return
	}
	subtaskID, _ := ctx.UserValue("subtaskId").(string)
	if subtaskID == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "missing subtask id"))
		return
	}

	var req transport.SubtaskUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tasks.UpdateSubtask(stdCtx, userID, projectID, subtaskID, *req.IsComplete); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
