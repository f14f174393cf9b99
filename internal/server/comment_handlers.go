package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateComment handles POST /api/comment/create
func (s *Server) CreateComment(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	var req struct {
		Content string `json:"content"`
		PostID  string `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		ActorID: actorID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetPostComments handles GET /api/comment/getpostcomments/:postId
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(comments)
}

// EditComment handles PUT /api/comment/edit/:commentId
func (s *Server) EditComment(c *fiber.Ctx) error {
	actorID, actorAdmin, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	commentID, err := parseObjectID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		ActorID:    actorID,
		ActorAdmin: actorAdmin,
		CommentID:  commentID,
		Content:    req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comment/delete/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	actorID, actorAdmin, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	commentID, err := parseObjectID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		ActorID:    actorID,
		ActorAdmin: actorAdmin,
		CommentID:  commentID,
	}); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "The comment has been deleted"})
}
