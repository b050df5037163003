package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-tracker/internal/models"
	"todo-tracker/internal/repository"

	"github.com/google/uuid"
)

const taskColumns = "id, user_id, title, description, category, due_date, completed, created_at, updated_at"

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var dueDate sql.NullTime
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Category, &dueDate, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	return &task, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()
	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	var dueDate sql.NullTime
	if task.DueDate != nil {
		dueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, category, due_date, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		task.ID, task.UserID, task.Title, task.Description, task.Category,
		dueDate, task.Completed, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1"
	args := []any{ownerID}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		query += fmt.Sprintf(" AND completed = $%d", len(args))
	}
	// Undated tasks sort after dated ones, newest-created first as tiebreak.
	query += " ORDER BY due_date ASC NULLS LAST, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	return collectTasks(rows)
}

func (r *TaskRepository) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, ownerID)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, update repository.TaskUpdate) (*models.Task, error) {
	task, err := r.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
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

	var dueDate sql.NullTime
	if task.DueDate != nil {
		dueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, category = $3, due_date = $4, completed = $5, updated_at = $6
		 WHERE id = $7 AND user_id = $8`,
		task.Title, task.Description, task.Category, dueDate, task.Completed,
		task.UpdatedAt, taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Categories(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM tasks WHERE user_id = $1 ORDER BY category",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *TaskRepository) DueSoon(ctx context.Context, ownerID string, now time.Time, days int) ([]models.Task, error) {
	until := now.AddDate(0, 0, days)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND completed = FALSE
		   AND due_date >= $2 AND due_date <= $3
		 ORDER BY due_date ASC`,
		ownerID, now, until)
	if err != nil {
		return nil, fmt.Errorf("select due tasks: %w", err)
	}
	return collectTasks(rows)
}
