package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type fakeTaskRepo struct {
	rows       []repository.BoardRow
	listCalled int
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTaskRepo) ListBoard(ctx context.Context, projectID string) ([]repository.BoardRow, error) {
	f.listCalled++
	var out []repository.BoardRow
	for _, row := range f.rows {
		if row.Task.ProjectID == projectID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetScoped(ctx context.Context, taskID, projectID string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) UpdateDetails(ctx context.Context, task *domain.Task) error { return nil }
func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, taskID, projectID, status string) error {
	return nil
}
func (f *fakeTaskRepo) Delete(ctx context.Context, taskID, projectID string) error { return nil }

type fakeSubtaskRepo struct {
	subtasks   []domain.Subtask
	unfiltered bool
	listCalled int
}

func (f *fakeSubtaskRepo) Create(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	return subtask, nil
}

func (f *fakeSubtaskRepo) ListByTaskIDs(ctx context.Context, taskIDs []string) ([]domain.Subtask, error) {
	f.listCalled++
	if f.unfiltered {
		return f.subtasks, nil
	}
	ids := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		ids[id] = true
	}
	var out []domain.Subtask
	for _, st := range f.subtasks {
		if ids[st.TaskID] {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeSubtaskRepo) SetComplete(ctx context.Context, subtaskID, projectID string, isComplete bool) error {
	return nil
}

func boardRow(id, projectID, status string, createdAt time.Time, comments int) repository.BoardRow {
	return repository.BoardRow{
		Task: domain.Task{
			ID:        id,
			ProjectID: projectID,
			Content:   "task " + id,
			Status:    status,
			Priority:  domain.PriorityMedium,
			CreatedAt: createdAt,
		},
		CommentCount: comments,
	}
}

func TestGetBoardEmptyProject(t *testing.T) {
	tasks := &fakeTaskRepo{}
	subtasks := &fakeSubtaskRepo{}
	uc := New(tasks, subtasks, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)

	assert.Empty(t, board.Todo)
	assert.Empty(t, board.InProgress)
	assert.Empty(t, board.Done)
	assert.NotNil(t, board.Todo)
	assert.NotNil(t, board.InProgress)
	assert.NotNil(t, board.Done)
	assert.Equal(t, 0, subtasks.listCalled, "empty board must not issue the subtask query")
}

func TestGetBoardGroupsByStatus(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{rows: []repository.BoardRow{
		// ListBoard order: newest first.
		boardRow("c", "p1", domain.StatusDone, base.Add(2*time.Hour), 0),
		boardRow("b", "p1", domain.StatusInProgress, base.Add(time.Hour), 0),
		boardRow("a", "p1", domain.StatusTodo, base, 0),
	}}
	subtasks := &fakeSubtaskRepo{subtasks: []domain.Subtask{
		{ID: "s1", TaskID: "c", Content: "wrap up"},
	}}
	uc := New(tasks, subtasks, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, board.Todo, 1)
	require.Len(t, board.InProgress, 1)
	require.Len(t, board.Done, 1)
	assert.Equal(t, "a", board.Todo[0].ID)
	assert.Equal(t, "b", board.InProgress[0].ID)
	assert.Equal(t, "c", board.Done[0].ID)

	require.Len(t, board.Done[0].Subtasks, 1)
	assert.Equal(t, "s1", board.Done[0].Subtasks[0].ID)
	assert.False(t, board.Done[0].Subtasks[0].IsComplete)

	assert.Empty(t, board.Todo[0].Subtasks)
	assert.NotNil(t, board.Todo[0].Subtasks)
	assert.Equal(t, 1, subtasks.listCalled, "subtasks must be fetched in one batch")
}

func TestGetBoardPreservesOrderWithinBucket(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{rows: []repository.BoardRow{
		boardRow("newest", "p1", domain.StatusTodo, base.Add(2*time.Hour), 0),
		boardRow("middle", "p1", domain.StatusTodo, base.Add(time.Hour), 0),
		boardRow("oldest", "p1", domain.StatusTodo, base, 0),
	}}
	uc := New(tasks, &fakeSubtaskRepo{}, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, board.Todo, 3)
	assert.Equal(t, "newest", board.Todo[0].ID)
	assert.Equal(t, "middle", board.Todo[1].ID)
	assert.Equal(t, "oldest", board.Todo[2].ID)
}

func TestGetBoardDropsOrphanedSubtasks(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{rows: []repository.BoardRow{
		boardRow("a", "p1", domain.StatusTodo, base, 0),
	}}
	subtasks := &fakeSubtaskRepo{unfiltered: true, subtasks: []domain.Subtask{
		{ID: "s1", TaskID: "a"},
		{ID: "ghost", TaskID: "vanished"},
	}}
	uc := New(tasks, subtasks, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, board.Todo, 1)
	require.Len(t, board.Todo[0].Subtasks, 1)
	assert.Equal(t, "s1", board.Todo[0].Subtasks[0].ID)
}

func TestGetBoardDropsUnknownStatus(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{rows: []repository.BoardRow{
		boardRow("a", "p1", domain.StatusTodo, base, 0),
		boardRow("weird", "p1", "archived", base, 0),
	}}
	uc := New(tasks, &fakeSubtaskRepo{}, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)

	assert.Len(t, board.Todo, 1)
	assert.Empty(t, board.InProgress)
	assert.Empty(t, board.Done)
}

func TestGetBoardFormatsDates(t *testing.T) {
	created := time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	row := boardRow("a", "p1", domain.StatusTodo, created, 2)
	row.Task.DueDate = &due
	row.AssigneeName = "Dana"
	row.Task.AssigneeID = "u2"
	tasks := &fakeTaskRepo{rows: []repository.BoardRow{row}}
	uc := New(tasks, &fakeSubtaskRepo{}, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, board.Todo, 1)
	view := board.Todo[0]
	assert.Equal(t, "Mar 05, 2026", view.CreatedAt)
	assert.Equal(t, "2026-04-01", view.DueDate)
	assert.Equal(t, "Dana", view.AssigneeName)
	assert.Equal(t, 2, view.CommentCount)
}

func TestGetBoardMoveBetweenBuckets(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := boardRow("c", "p1", domain.StatusDone, base, 0)
	tasks := &fakeTaskRepo{rows: []repository.BoardRow{row}}
	uc := New(tasks, &fakeSubtaskRepo{}, nil)

	board, err := uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, board.Done, 1)

	tasks.rows[0].Task.Status = domain.StatusTodo
	board, err = uc.GetBoard(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, board.Done)
	require.Len(t, board.Todo, 1)
	assert.Equal(t, "c", board.Todo[0].ID)
}
