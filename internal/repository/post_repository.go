package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

const postColumns = `
	post_id, slug, title, body, author, sports, leagues, header_image, image_alt,
	is_featured, meta_title, meta_description, keywords, og_title, og_description,
	og_image, read_time, like_count, dislike_count, liked_by, disliked_by,
	created_at, updated_at`

// reactQueries are single statements so concurrent reactions on one post are
// serialized by the row lock. SET expressions all read the pre-update row.
var reactQueries = map[string]string{
	ReactionLike: `
		UPDATE posts SET
			like_count = like_count + CASE WHEN $2 = ANY(liked_by) THEN 0 ELSE 1 END,
			dislike_count = GREATEST(dislike_count - CASE WHEN $2 = ANY(disliked_by) THEN 1 ELSE 0 END, 0),
			liked_by = CASE WHEN $2 = ANY(liked_by) THEN liked_by ELSE array_append(liked_by, $2) END,
			disliked_by = array_remove(disliked_by, $2)
		WHERE post_id = $1
		RETURNING like_count, dislike_count`,
	ReactionDislike: `
		UPDATE posts SET
			dislike_count = dislike_count + CASE WHEN $2 = ANY(disliked_by) THEN 0 ELSE 1 END,
			like_count = GREATEST(like_count - CASE WHEN $2 = ANY(liked_by) THEN 1 ELSE 0 END, 0),
			disliked_by = CASE WHEN $2 = ANY(disliked_by) THEN disliked_by ELSE array_append(disliked_by, $2) END,
			liked_by = array_remove(liked_by, $2)
		WHERE post_id = $1
		RETURNING like_count, dislike_count`,
}

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func nonNil(values pq.StringArray) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return values
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, slug, title, body, author, sports, leagues, header_image, image_alt,
		 is_featured, meta_title, meta_description, keywords, og_title, og_description,
		 og_image, read_time, created_at, updated_at)
		VALUES
		(:post_id, :slug, :title, :body, :author, :sports, :leagues, :header_image, :image_alt,
		 :is_featured, :meta_title, :meta_description, :keywords, :og_title, :og_description,
		 :og_image, :read_time, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	if post.CreatedAt.IsZero() {
		now := time.Now()
		post.CreatedAt = now
		post.UpdatedAt = now
	}

	post.Sports = nonNil(post.Sports)
	post.Leagues = nonNil(post.Leagues)
	post.Keywords = nonNil(post.Keywords)
	post.LikedBy = pq.StringArray{}
	post.DislikedBy = pq.StringArray{}

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("a post with this title already exists")
		}
		return fmt.Errorf("creating post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) getOne(ctx context.Context, where string, arg any) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + where

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	return r.getOne(ctx, `post_id = $1`, postID)
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, `slug = $1`, slug)
}

func (r *PostRepositoryImpl) selectPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return r.selectPosts(ctx, query, limit, offset)
}

func (r *PostRepositoryImpl) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return total, nil
}

func (r *PostRepositoryImpl) ListFeatured(ctx context.Context, limit int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts
		WHERE is_featured
		ORDER BY created_at DESC
		LIMIT $1`

	return r.selectPosts(ctx, query, limit)
}

func (r *PostRepositoryImpl) ListByTag(ctx context.Context, tag string, limit int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts
		WHERE EXISTS (
			SELECT 1
			FROM unnest(sports || leagues) tag
			WHERE lower(tag) = lower($1)
		)
		ORDER BY created_at DESC
		LIMIT $2`

	return r.selectPosts(ctx, query, tag, limit)
}

// Search expects term to contain no LIKE metacharacters.
func (r *PostRepositoryImpl) Search(ctx context.Context, term string, limit int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts
		WHERE title ILIKE '%' || $1 || '%'
			OR body ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2`

	return r.selectPosts(ctx, query, term, limit)
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			body = :body,
			author = :author,
			sports = :sports,
			leagues = :leagues,
			header_image = :header_image,
			image_alt = :image_alt,
			is_featured = :is_featured,
			meta_title = :meta_title,
			meta_description = :meta_description,
			keywords = :keywords,
			og_title = :og_title,
			og_description = :og_description,
			og_image = :og_image,
			read_time = :read_time,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now()
	post.Sports = nonNil(post.Sports)
	post.Leagues = nonNil(post.Leagues)
	post.Keywords = nonNil(post.Keywords)

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return apperror.NotFound("post not found")
	}

	return nil
}

// Delete removes the post if it exists; deleting a missing post is not an error.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) React(ctx context.Context, postID, userID, direction string) (*models.Reactions, error) {
	query, ok := reactQueries[direction]
	if !ok {
		return nil, apperror.Validation("reaction must be like or dislike")
	}

	var reactions models.Reactions
	err := r.DB.GetContext(ctx, &reactions, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("reacting to post: %w", err)
	}

	return &reactions, nil
}
