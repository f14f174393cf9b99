package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateUser handles PUT /api/user/update/:userId
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	targetID, err := parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.Context(), service.UpdateUserInput{
		ActorID:  actorID,
		TargetID: targetID,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(user)
}

// Signout handles POST /api/user/signout. Token issuance is stateless, so
// signing out only clears the cookie.
func (s *Server) Signout(c *fiber.Ctx) error {
	s.clearAuthCookie(c)
	return c.JSON(fiber.Map{"message": "User has been signed out"})
}

// GetUsers handles GET /api/user/getusers (admin only)
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page := parsePagination(c)

	result, err := s.userService.ListUsers(c.Context(), service.ListUsersInput{
		StartIndex: page.StartIndex,
		Limit:      page.Limit,
		Ascending:  page.Ascending,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(result)
}

// GetUser handles GET /api/user/:userId
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// ToggleContributor handles PUT /api/user/toggleContributor/:userId (admin only)
func (s *Server) ToggleContributor(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.ToggleContributor(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Contributor status updated",
		"user":    user,
	})
}

// ToggleReq handles PUT /api/user/toggleReq/:userId (admin only)
func (s *Server) ToggleReq(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.ToggleReq(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Request status updated",
		"user":    user,
	})
}
