package server

import (
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PostRequest represents a post or comment body.
type PostRequest struct {
	Text string `json:"text"`
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the post's owner may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id, answering the updated likes.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	likes, err := s.postService.LikePost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id, answering the updated likes.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	likes, err := s.postService.UnlikePost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(likes)
}

// CreateComment handles POST /api/posts/comment/:id, answering the updated
// comments newest-first.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comments, err := s.postService.AddComment(c.Context(), currentUserID(c), postID, req.Text)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:commentId. Only the
// comment's author may delete it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	comments, err := s.postService.RemoveComment(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(comments)
}
