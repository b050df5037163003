package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"todo-tracker/internal/models"
	"todo-tracker/internal/repository"

	"github.com/google/uuid"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]models.Task)}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[task.ID] = *task

	created := *task
	return &created, nil
}

// sortTasks orders by due date ascending with undated tasks last, then by
// creation time descending, matching the postgres ORDER BY.
func sortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (r *TaskRepository) List(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []models.Task{}
	for _, task := range r.tasks {
		if task.UserID != ownerID {
			continue
		}
		if filter.Category != nil && task.Category != *filter.Category {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		tasks = append(tasks, task)
	}
	sortTasks(tasks)
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	found := task
	return &found, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, update repository.TaskUpdate) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	task.UpdatedAt = time.Now().UTC()
	r.tasks[taskID] = task

	updated := task
	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func (r *TaskRepository) Categories(ctx context.Context, ownerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, task := range r.tasks {
		if task.UserID != ownerID || seen[task.Category] {
			continue
		}
		seen[task.Category] = true
		categories = append(categories, task.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *TaskRepository) DueSoon(ctx context.Context, ownerID string, now time.Time, days int) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	until := now.AddDate(0, 0, days)
	tasks := []models.Task{}
	for _, task := range r.tasks {
		if task.UserID != ownerID || task.Completed || task.DueDate == nil {
			continue
		}
		// window is inclusive on both ends
		if task.DueDate.Before(now) || task.DueDate.After(until) {
			continue
		}
		tasks = append(tasks, task)
	}
	sortTasks(tasks)
	return tasks, nil
}
