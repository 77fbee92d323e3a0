package service

import (
	"context"
	"errors"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// PostService owns post creation, like/unlike toggling, comment add/remove,
// and ownership-gated deletion.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a post service.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

const maxPostLen = 10000

// CreatePost creates a post, denormalizing the author's current name and
// avatar onto it.
func (s *PostService) CreatePost(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxPostLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		UserID: userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// ListPosts returns all posts, most recent first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns a single post, NotFound when absent.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes the post and its likes and comments. Only the owner may
// delete; existence is checked before ownership.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records the caller's like and returns the updated likes, newest
// first. Liking an already-liked post is a conflict.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return nil, models.NewConflictError("Post already liked")
		}
		return nil, err
	}

	return s.postRepo.ListLikes(ctx, postID)
}

// UnlikePost removes exactly the caller's like and returns the updated likes.
// Unliking a post the caller never liked is a conflict.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		if errors.Is(err, repository.ErrNotLiked) {
			return nil, models.NewConflictError("Post has not yet been liked")
		}
		return nil, err
	}

	return s.postRepo.ListLikes(ctx, postID)
}

// AddComment prepends a comment with the commenter's name and avatar
// denormalized at comment time, returning the updated comments.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		UserID: userID,
		PostID: postID,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.ListComments(ctx, postID)
}

// RemoveComment deletes the comment and returns the updated comments.
// Ownership is on the comment, not the enclosing post.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("User not authorized")
	}

	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}

	return s.postRepo.ListComments(ctx, postID)
}
