package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Category    string `json:"category"`
		Image       string `json:"image"`
		ReadingType string `json:"readingType"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      actorID,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Image:       req.Image,
		ReadingType: req.ReadingType,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /getposts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter, err := postFilterFromQuery(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	page := parsePagination(c)

	result, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Filter:     filter,
		StartIndex: page.StartIndex,
		Limit:      page.Limit,
		Ascending:  page.Ascending,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(result)
}

// GetRecentPosts handles GET /post
func (s *Server) GetRecentPosts(c *fiber.Ctx) error {
	posts, err := s.postService.RecentPosts(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /post/:id. A missing document serializes as JSON
// null rather than a 404.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /updatepost/:postId/:userId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	actorID, actorAdmin, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:    actorID,
		ActorAdmin: actorAdmin,
		PostID:     postID,
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Image:      req.Image,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /deletepost/:postId/:userId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	actorID, actorAdmin, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		ActorID:    actorID,
		ActorAdmin: actorAdmin,
		PostID:     postID,
	}); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "The post has been deleted"})
}
