package repository

import (
	"context"
	"errors"
	"time"

	"todo-tracker/internal/models"
)

var (
	// ErrNotFound covers both true absence and records owned by another
	// user. Callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUser signals a username or email that is already taken.
	ErrDuplicateUser = errors.New("username or email already taken")
)

// TaskFilter narrows List results. Nil fields are not applied; set fields
// are ANDed onto the owner predicate.
type TaskFilter struct {
	Category  *string
	Completed *bool
}

// TaskUpdate applies partial updates. Nil fields leave the stored value
// unchanged. The owner and id of a task can never be updated.
type TaskUpdate struct {
	Title       *string
	Description *string
	Category    *string
	DueDate     *time.Time
	Completed   *bool
}

type UserRepository interface {
	// Create persists a new user and assigns its id and timestamps.
	// Returns ErrDuplicateUser when the username or email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// TaskRepository scopes every operation to the owning user: a task id
// belonging to someone else behaves exactly like a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// List returns the owner's tasks sorted by due date ascending with
	// undated tasks last, newest-created first as tiebreak.
	List(ctx context.Context, ownerID string, filter TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID string, update TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	Categories(ctx context.Context, ownerID string) ([]string, error)
	// DueSoon returns incomplete tasks with a due date inside
	// [now, now+days], inclusive on both ends.
	DueSoon(ctx context.Context, ownerID string, now time.Time, days int) ([]models.Task, error)
}
