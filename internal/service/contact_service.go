package service

import (
	"context"
	"strings"

	"omenblog/internal/models"
	"omenblog/internal/repository"
)

type ContactService interface {
	Send(ctx context.Context, name, email, message string) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

// Send persists a message from the contact form. Field validation happens at
// the form boundary.
func (c *contactService) Send(ctx context.Context, name, email, message string) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}

	if err := c.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}
