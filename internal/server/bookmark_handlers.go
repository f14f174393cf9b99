package server

import (
	"github.com/gofiber/fiber/v2"
)

// BookmarkPost handles POST /bookmark/:postId. Strict: bookmarking a post
// twice is a client error.
func (s *Server) BookmarkPost(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.BookmarkPost(c.Context(), actorID, postID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post bookmarked"})
}

// UnbookmarkPost handles POST /unbookmark/:postId. Strict: removing an
// absent bookmark is a client error.
func (s *Server) UnbookmarkPost(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.UnbookmarkPost(c.Context(), actorID, postID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bookmark removed"})
}

// GetBookmarks handles GET /bookmarks/:userId
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	userID, err := parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.bookmarkService.ListForUser(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(posts)
}

// SaveBookmark handles POST /api/user/bookmark/:postId. Lenient: saving an
// already-saved post succeeds unchanged.
func (s *Server) SaveBookmark(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	user, err := s.bookmarkService.SaveForUser(c.Context(), actorID, postID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// RemoveBookmark handles POST /api/user/unbookmark/:postId. Lenient:
// always resolves.
func (s *Server) RemoveBookmark(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return mapServiceError(c, err)
	}
	postID, err := parseObjectID(c, "postId")
	if err != nil {
		return nil
	}

	user, err := s.bookmarkService.UnsaveForUser(c.Context(), actorID, postID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}
