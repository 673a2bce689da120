// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"encoding/json"
	"errors"
	"strings"

	"wanderlog/internal/middleware"
	"wanderlog/internal/models"
	"wanderlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// tagList accepts tags either as a JSON array of strings or as a single
// comma-separated string ("beach, summer").
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("tags must be an array of strings or a comma-separated string")
	}
	if s == "" {
		*t = tagList{}
		return nil
	}
	*t = strings.Split(s, ",")
	return nil
}

// GetTravelLogs handles GET /api/logs
func (s *Server) GetTravelLogs(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	logs, err := s.logService.ListLogs(ctx, service.ListLogsInput{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(logs)
}

// GetTravelLog handles GET /api/logs/:id
func (s *Server) GetTravelLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	log, err := s.logService.GetLog(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(log)
}

// GetMyTravelLogs handles GET /api/logs/me
func (s *Server) GetMyTravelLogs(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	logs, err := s.logService.GetUserLogs(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(logs)
}

// GetUserTravelLogs handles GET /api/users/:id/logs
func (s *Server) GetUserTravelLogs(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userIDParam, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	logs, err := s.logService.GetUserLogs(ctx, userIDParam, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(logs)
}

// CreateTravelLog handles POST /api/logs
func (s *Server) CreateTravelLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Location    string  `json:"location"`
		Tags        tagList `json:"tags"`
		ImageURL    string  `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.logService.CreateLog(ctx, service.CreateLogInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

// UpdateTravelLog handles PUT /api/logs/:id
func (s *Server) UpdateTravelLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Location    string  `json:"location"`
		Tags        tagList `json:"tags"`
		ImageURL    string  `json:"image_url,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.logService.UpdateLog(ctx, service.UpdateLogInput{
		UserID:      userID,
		LogID:       logID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(log)
}

// DeleteTravelLog handles DELETE /api/logs/:id
func (s *Server) DeleteTravelLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.logService.DeleteLog(ctx, service.DeleteLogInput{
		UserID: userID,
		LogID:  logID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/logs/:id/like.
// This endpoint toggles the like status - if already liked, it unlikes; if not liked, it likes.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	log, liked, err := s.logService.ToggleLike(ctx, userID, logID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	outcome := "unliked"
	if liked {
		outcome = "liked"
	}
	middleware.LikeToggles.WithLabelValues(outcome).Inc()

	return c.JSON(log)
}
