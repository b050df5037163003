package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"todo-tracker/internal/config"
	"todo-tracker/internal/models"
	"todo-tracker/internal/repository"
	"todo-tracker/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Task handlers

func taskCacheKey(taskID string) string {
	return "task:" + taskID
}

// cacheTask stores a task in Redis for an hour. The cache is optional:
// with no client configured these are no-ops.
func cacheTask(task *models.Task) {
	if config.RedisClient == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	if err := config.RedisClient.Set(config.Ctx, taskCacheKey(task.ID), data, time.Hour).Err(); err != nil {
		logger.ErrorLogger.Error("Error caching task", zap.Error(err))
	}
}

func cachedTask(taskID string) *models.Task {
	if config.RedisClient == nil {
		return nil
	}
	cached, err := config.RedisClient.Get(config.Ctx, taskCacheKey(taskID)).Result()
	if err != nil {
		return nil
	}
	var task models.Task
	if err := json.Unmarshal([]byte(cached), &task); err != nil {
		return nil
	}
	return &task
}

func dropCachedTask(taskID string) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(config.Ctx, taskCacheKey(taskID))
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	type TaskRequest struct {
		Title       string     `json:"title" validate:"required,min=1"`
		Description string     `json:"description"`
		Category    string     `json:"category"`
		DueDate     *time.Time `json:"dueDate"`
		Completed   bool       `json:"completed"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}
	if req.Category == "" {
		req.Category = models.DefaultCategory
	}

	// Owner always comes from the authenticated identity, never the body.
	task, err := h.Tasks.Create(c.Context(), &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error creating task"})
	}

	logger.AuditLogger.Info("Task created", zap.String("task_id", task.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Task created",
		"task":    task,
	})
}

func (h *Handler) ListTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	filter := repository.TaskFilter{}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = &category
	}
	if raw := c.Query("completed"); raw != "" {
		// an unparsable value leaves the filter unset
		if completed, err := strconv.ParseBool(raw); err == nil {
			filter.Completed = &completed
		}
	}

	tasks, err := h.Tasks.List(c.Context(), userID, filter)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Could not fetch tasks"})
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("id")

	if task := cachedTask(taskID); task != nil {
		// a cache hit still goes through the owner check
		if task.UserID != userID {
			logger.SecurityLogger.Warn("Cross-owner task access",
				zap.String("user_id", userID), zap.String("task_id", taskID))
			return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
		}
		return c.JSON(fiber.Map{"task": task})
	}

	task, err := h.Tasks.Get(c.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching task"})
	}

	cacheTask(task)
	return c.JSON(fiber.Map{"task": task})
}

func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("id")

	// all fields optional, owner and id deliberately absent
	type UpdateTaskRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Category    *string    `json:"category"`
		DueDate     *time.Time `json:"dueDate"`
		Completed   *bool      `json:"completed"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.Status(400).JSON(fiber.Map{"message": "Title must not be empty"})
		}
		req.Title = &title
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			category = models.DefaultCategory
		}
		req.Category = &category
	}

	task, err := h.Tasks.Update(c.Context(), userID, taskID, repository.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error updating task"})
	}

	dropCachedTask(taskID)
	cacheTask(task)

	logger.AuditLogger.Info("Task updated", zap.String("task_id", taskID))
	return c.JSON(fiber.Map{
		"message": "Task updated",
		"task":    task,
	})
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("id")

	if err := h.Tasks.Delete(c.Context(), userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error deleting task"})
	}

	dropCachedTask(taskID)

	logger.AuditLogger.Info("Task deleted", zap.String("task_id", taskID))
	return c.JSON(fiber.Map{"message": "Task deleted"})
}

func (h *Handler) GetCategories(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	categories, err := h.Tasks.Categories(c.Context(), userID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching categories", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error getting categories"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *Handler) GetReminders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	// days must be a positive integer; anything else falls back to 1
	days := 1
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			days = n
		}
	}

	tasks, err := h.Tasks.DueSoon(c.Context(), userID, time.Now(), days)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching reminders", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching reminders"})
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}
