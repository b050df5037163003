package memory

import (
	"context"
	"testing"
	"time"

	"todo-tracker/internal/models"
	"todo-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func mustCreate(t *testing.T, repo *TaskRepository, task models.Task) models.Task {
	t.Helper()
	created, err := repo.Create(context.Background(), &task)
	require.NoError(t, err)
	return *created
}

func TestTaskOwnerScoping(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	task := mustCreate(t, repo, models.Task{UserID: "alice", Title: "Pay rent", Category: "General"})

	// bob sees someone else's task as missing, on every operation
	_, err := repo.Get(ctx, "bob", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, "bob", task.ID, repository.TaskUpdate{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, "bob", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// and the task is untouched for its owner
	found, err := repo.Get(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", found.Title)

	tasks, err := repo.List(ctx, "bob", repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskListFilters(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	mustCreate(t, repo, models.Task{UserID: "alice", Title: "a", Category: "Work", Completed: true})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "b", Category: "Work"})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "c", Category: "Home"})
	mustCreate(t, repo, models.Task{UserID: "bob", Title: "d", Category: "Work"})

	tasks, err := repo.List(ctx, "alice", repository.TaskFilter{Completed: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Title)

	tasks, err = repo.List(ctx, "alice", repository.TaskFilter{Category: strPtr("Work")})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = repo.List(ctx, "alice", repository.TaskFilter{
		Category:  strPtr("Work"),
		Completed: boolPtr(false),
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Title)

	tasks, err = repo.List(ctx, "alice", repository.TaskFilter{Category: strPtr("Garden")})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskListSortOrder(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	now := time.Now()

	later := mustCreate(t, repo, models.Task{UserID: "alice", Title: "later", DueDate: timePtr(now.Add(48 * time.Hour))})
	time.Sleep(5 * time.Millisecond)
	undatedOld := mustCreate(t, repo, models.Task{UserID: "alice", Title: "undated old"})
	time.Sleep(5 * time.Millisecond)
	soon := mustCreate(t, repo, models.Task{UserID: "alice", Title: "soon", DueDate: timePtr(now.Add(24 * time.Hour))})
	time.Sleep(5 * time.Millisecond)
	undatedNew := mustCreate(t, repo, models.Task{UserID: "alice", Title: "undated new"})

	tasks, err := repo.List(ctx, "alice", repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	// due date ascending, undated last, newest-created first among undated
	assert.Equal(t, soon.ID, tasks[0].ID)
	assert.Equal(t, later.ID, tasks[1].ID)
	assert.Equal(t, undatedNew.ID, tasks[2].ID)
	assert.Equal(t, undatedOld.ID, tasks[3].ID)
}

func TestTaskUpdatePartial(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	task := mustCreate(t, repo, models.Task{UserID: "alice", Title: "Buy milk", Category: "General"})

	updated, err := repo.Update(ctx, "alice", task.ID, repository.TaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, "General", updated.Category)
	assert.True(t, updated.Completed)
	assert.Equal(t, "alice", updated.UserID)

	due := time.Now().Add(24 * time.Hour)
	updated, err = repo.Update(ctx, "alice", task.ID, repository.TaskUpdate{DueDate: timePtr(due)})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))
	assert.True(t, updated.Completed)
}

func TestTaskDelete(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	task := mustCreate(t, repo, models.Task{UserID: "alice", Title: "gone"})

	require.NoError(t, repo.Delete(ctx, "alice", task.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "alice", task.ID), repository.ErrNotFound)

	_, err := repo.Get(ctx, "alice", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskCategories(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	mustCreate(t, repo, models.Task{UserID: "alice", Title: "a", Category: "Work"})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "b", Category: "Work"})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "c", Category: "Home"})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "d", Category: "General"})
	mustCreate(t, repo, models.Task{UserID: "bob", Title: "e", Category: "Secret"})

	categories, err := repo.Categories(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"General", "Home", "Work"}, categories)
}

func TestTaskDueSoonWindow(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	now := time.Now()

	inOneHour := mustCreate(t, repo, models.Task{UserID: "alice", Title: "in one hour", DueDate: timePtr(now.Add(time.Hour))})
	atBoundary := mustCreate(t, repo, models.Task{UserID: "alice", Title: "at boundary", DueDate: timePtr(now.AddDate(0, 0, 1))})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "too late", DueDate: timePtr(now.Add(25 * time.Hour))})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "already done", DueDate: timePtr(now.Add(time.Hour)), Completed: true})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "undated"})
	mustCreate(t, repo, models.Task{UserID: "alice", Title: "overdue", DueDate: timePtr(now.Add(-time.Hour))})

	tasks, err := repo.DueSoon(ctx, "alice", now, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// both ends of the window are inclusive
	assert.Equal(t, inOneHour.ID, tasks[0].ID)
	assert.Equal(t, atBoundary.ID, tasks[1].ID)

	tasks, err = repo.DueSoon(ctx, "alice", now, 2)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}
