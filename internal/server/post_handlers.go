package server

import (
	"inkpulse/internal/models"
	"inkpulse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/post and GET /api/post?id=. With an id it
// returns a single post, otherwise the published list; both go through
// the cache for anonymous callers and the response message carries the
// from-cache marker.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, _ := s.optionalUserID(c)

	if c.Query("id") != "" {
		id, ok := parseUintQuery(c, "id")
		if !ok {
			return nil
		}

		post, fromCache, err := s.postService.GetPost(ctx, id, userID)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": fetchMessage("Post", fromCache),
			"data":    post,
		})
	}

	posts, fromCache, err := s.postService.ListPosts(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"message": fetchMessage("Posts", fromCache),
		"data":    posts,
	})
}

func fetchMessage(what string, fromCache bool) string {
	if fromCache {
		return what + " fetched from cache"
	}
	return what + " fetched"
}

// CreatePost handles POST /api/post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
		PostPic string   `json:"postPic"`
		Author  uint     `json:"author"`
		Status  string   `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: req.Author,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		PostPic:  req.PostPic,
		Status:   req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post created",
		"data":    post,
	})
}

// UpdatePost handles PUT /api/post?id=
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := parseUintQuery(c, "id")
	if !ok {
		return nil
	}

	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
		PostPic string   `json:"postPic"`
		Status  string   `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		PostPic: req.PostPic,
		Status:  req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post updated",
		"data":    post,
	})
}

// DeletePost handles DELETE /api/post?id=
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := parseUintQuery(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.DeletePost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted",
		"data":    post,
	})
}

// ToggleLike handles POST /api/post/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	liked, likesCount, err := s.postService.ToggleLike(c.UserContext(), userID, req.PostID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Unliked"
	if liked {
		message = "Liked"
	}
	return c.JSON(fiber.Map{
		"message":    message,
		"likesCount": likesCount,
	})
}

// GetTrendingPosts handles GET /api/post/trending
func (s *Server) GetTrendingPosts(c *fiber.Ctx) error {
	posts, err := s.postService.Trending(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"message": "Trending posts fetched",
		"data":    posts,
	})
}

// GetDrafts handles GET /api/post/drafts
func (s *Server) GetDrafts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, err := s.postService.Drafts(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"message": "Drafts fetched",
		"data":    posts,
	})
}
