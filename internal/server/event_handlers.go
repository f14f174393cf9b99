package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		Image       string    `json:"image"`
		Date        time.Time `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.CreateEvent(c.Context(), service.CreateEventInput{
		ActorID:     actorID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Image:       req.Image,
		Date:        req.Date,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetEvents handles GET /api/events
func (s *Server) GetEvents(c *fiber.Ctx) error {
	page := parsePagination(c)

	events, err := s.eventService.ListEvents(c.Context(), page.StartIndex, page.Limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(events)
}

// GetEvent handles GET /api/events/:id
func (s *Server) GetEvent(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventService.GetEvent(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(event)
}

// UpdateEvent handles PUT /api/events/:id
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	actorID, actorAdmin, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	eventID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		Image       string    `json:"image"`
		Date        time.Time `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.UpdateEvent(c.Context(), service.UpdateEventInput{
		ActorID:     actorID,
		ActorAdmin:  actorAdmin,
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Image:       req.Image,
		Date:        req.Date,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	actorID, actorAdmin, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	eventID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.eventService.DeleteEvent(c.Context(), service.DeleteEventInput{
		ActorID:    actorID,
		ActorAdmin: actorAdmin,
		EventID:    eventID,
	}); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "The event has been deleted"})
}
