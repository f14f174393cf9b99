// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageLimit = 9
	maxPageLimit     = 100
)

// Pagination holds parsed startIndex/limit/order query parameters.
type Pagination struct {
	StartIndex int64
	Limit      int64
	Ascending  bool
}

// parsePagination extracts startIndex, limit and sort order query
// parameters. Sort defaults to descending; order=asc flips it.
func parsePagination(c *fiber.Ctx) Pagination {
	startIndex := int64(c.QueryInt("startIndex", 0))
	if startIndex < 0 {
		startIndex = 0
	}

	limit := int64(c.QueryInt("limit", defaultPageLimit))
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return Pagination{
		StartIndex: startIndex,
		Limit:      limit,
		Ascending:  c.Query("order") == "asc",
	}
}

// parseObjectID extracts a route parameter by name as a Mongo ObjectID.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseObjectID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return primitive.NilObjectID, errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// currentUser returns the authenticated identity placed in Locals by the
// auth middleware. The second value reports admin status.
func currentUser(c *fiber.Ctx) (primitive.ObjectID, bool, error) {
	sub, _ := c.Locals("userID").(string)
	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, false, models.NewUnauthorizedError("You are not authenticated")
	}
	isAdmin, _ := c.Locals("isAdmin").(bool)
	return id, isAdmin, nil
}

// postFilterFromQuery builds a listing filter from query parameters. Each
// recognized parameter contributes exactly one constraint; absent
// parameters contribute nothing.
func postFilterFromQuery(c *fiber.Ctx) (repository.PostFilter, error) {
	var filter repository.PostFilter

	if v := c.Query("userId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return filter, models.NewValidationError("Invalid user ID")
		}
		filter.UserID = &id
	}
	if v := c.Query("postId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return filter, models.NewValidationError("Invalid post ID")
		}
		filter.ID = &id
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("slug"); v != "" {
		filter.Slug = &v
	}
	if v := c.Query("readingType"); v != "" {
		filter.ReadingType = &v
	}
	filter.SearchTerm = c.Query("searchTerm")

	return filter, nil
}

// mapServiceError writes the response for an error bubbled up from the
// service layer, translating AppError codes to HTTP statuses. Unknown
// errors are logged and surfaced as a generic 500.
func mapServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := fiber.StatusInternalServerError
		switch appErr.Code {
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "CONFLICT":
			status = fiber.StatusConflict
		}
		if status == fiber.StatusInternalServerError {
			middleware.Logger.ErrorContext(c.UserContext(), "internal error", "error", appErr.Error())
		}
		return models.RespondWithError(c, status, appErr)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
