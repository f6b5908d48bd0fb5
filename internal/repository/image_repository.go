package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"omenblog/internal/models"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (image_id, post_id, object_name, image_url, content_type, size, created_at)
		VALUES (:image_id, :post_id, :object_name, :image_url, :content_type, :size, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("creating image record: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]*models.Image, error) {
	query := `
		SELECT image_id, post_id, object_name, image_url, content_type, size, created_at
		FROM images
		WHERE post_id = $1
		ORDER BY created_at
	`

	var images []*models.Image
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE image_id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("deleting image record: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) DeleteByPostID(ctx context.Context, postID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("deleting post images: %w", err)
	}

	return nil
}
