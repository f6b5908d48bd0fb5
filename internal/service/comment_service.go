package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
	"omenblog/internal/repository"
)

const maxCommentLength = 2000

type CommentService interface {
	List(ctx context.Context, postID string) ([]models.Comment, error)
	Add(ctx context.Context, postID string, identity models.Identity, body string) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (c *commentService) List(ctx context.Context, postID string) ([]models.Comment, error) {
	return c.commentRepo.ListByPostID(ctx, postID)
}

// Add stores the comment with both the original and the masked body. Only
// authenticated identities may comment.
func (c *commentService) Add(ctx context.Context, postID string, identity models.Identity, body string) (*models.Comment, error) {
	if !identity.IsAuthenticated() {
		return nil, apperror.Auth("log in to comment")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperror.Validation("comment cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxCommentLength {
		return nil, apperror.Validation(fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}

	comment := &models.Comment{
		PostID:        postID,
		AuthorID:      identity.UserID,
		Author:        identity.Username,
		Body:          body,
		SanitizedBody: SanitizeComment(body),
	}

	if err := c.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
