package handlers

import (
	"errors"
	"strings"

	"todo-tracker/internal/config"
	"todo-tracker/internal/models"
	"todo-tracker/internal/repository"
	"todo-tracker/pkg/logger"
	"todo-tracker/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Auth handlers

func (h *Handler) Signup(c *fiber.Ctx) error {
	type SignupRequest struct {
		Username string `json:"username" validate:"required,min=3"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in signup", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during signup", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	// Duplicate check happens before any hashing work.
	exists, err := h.Users.ExistsByUsernameOrEmail(c.Context(), req.Username, req.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error checking existing user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error registering user"})
	}
	if exists {
		logger.SecurityLogger.Warn("Duplicate signup attempt", zap.String("username", req.Username))
		return c.Status(400).JSON(fiber.Map{"message": "User already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error registering user"})
	}

	user, err := h.Users.Create(c.Context(), &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	})
	if err != nil {
		// unique constraint backstop for a concurrent signup race
		if errors.Is(err, repository.ErrDuplicateUser) {
			logger.SecurityLogger.Warn("Duplicate signup attempt", zap.String("username", req.Username))
			return c.Status(400).JSON(fiber.Map{"message": "User already exists"})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error registering user"})
	}

	tokenString, err := token.Generate(user, config.SecretKey)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error generating token"})
	}

	logger.AuditLogger.Info("User registered", zap.String("user_id", user.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   tokenString,
		"user":    user.Public(),
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	// Unknown username and wrong password produce the same response.
	user, err := h.Users.FindByUsername(c.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.SecurityLogger.Warn("Login for unknown user", zap.String("username", req.Username))
			return c.Status(400).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error logging in"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("username", req.Username))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	tokenString, err := token.Generate(user, config.SecretKey)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error generating token"})
	}

	logger.AuditLogger.Info("Login success", zap.String("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   tokenString,
		"user":    user.Public(),
	})
}
