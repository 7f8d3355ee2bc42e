package server

import (
	"inkpulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/comment?postId=
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, ok := parseUintQuery(c, "postId")
	if !ok {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comments fetched",
		"data":    comments,
	})
}

// CreateComment handles POST /api/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID  uint   `json:"postId"`
		UserID  uint   `json:"userId"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), req.PostID, req.UserID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment created",
		"data":    comment,
	})
}

// DeleteComment handles DELETE /api/comment?commentId=
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, ok := parseUintQuery(c, "commentId")
	if !ok {
		return nil
	}

	comment, err := s.commentService.DeleteComment(c.UserContext(), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted",
		"data":    comment,
	})
}
