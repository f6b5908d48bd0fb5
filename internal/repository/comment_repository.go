package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, author_id, author, body, sanitized_body, created_at)
		VALUES (:comment_id, :post_id, :author_id, :author, :body, :sanitized_body, :created_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("post not found")
		}
		return fmt.Errorf("creating comment: %w", err)
	}

	return nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT comment_id, post_id, author_id, author, body, sanitized_body,
			like_count, dislike_count, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	return comments, nil
}
