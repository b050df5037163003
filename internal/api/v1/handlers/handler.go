package handlers

import (
	"todo-tracker/internal/repository"
)

// Handler bundles the repositories behind the API surface. Which backing
// store is in use (postgres in production, memory in tests) is invisible
// from here.
type Handler struct {
	Users repository.UserRepository
	Tasks repository.TaskRepository
	Env   string
}

func New(users repository.UserRepository, tasks repository.TaskRepository, env string) *Handler {
	return &Handler{Users: users, Tasks: tasks, Env: env}
}
