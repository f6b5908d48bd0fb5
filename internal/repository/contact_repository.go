package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"omenblog/internal/models"
)

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	message.MessageID = uuid.New().String()
	message.CreatedAt = time.Now()

	query := `
		INSERT INTO contact_messages (message_id, name, email, message, created_at)
		VALUES (:message_id, :name, :email, :message, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("saving contact message: %w", err)
	}

	return nil
}
