package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()
	jon := models.Identity{State: models.Authenticated, UserID: "u1", Username: "jon", Role: models.RoleStandard}

	t.Run("stores original and masked body", func(t *testing.T) {
		repo := new(mockCommentRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

		comment, err := NewCommentService(repo).Add(ctx, "p1", jon, "  what a damn fight  ")

		require.NoError(t, err)
		assert.Equal(t, "what a damn fight", comment.Body)
		assert.Equal(t, "what a **** fight", comment.SanitizedBody)
		assert.Equal(t, "jon", comment.Author)
		assert.Equal(t, "u1", comment.AuthorID)
		assert.Equal(t, "p1", comment.PostID)
		repo.AssertExpectations(t)
	})

	for name, identity := range map[string]models.Identity{
		"anonymous": models.AnonymousIdentity(),
		"invalid":   models.InvalidIdentity(),
	} {
		t.Run(name+" identity is rejected", func(t *testing.T) {
			repo := new(mockCommentRepository)

			_, err := NewCommentService(repo).Add(ctx, "p1", identity, "hello")

			assert.True(t, apperror.Is(err, apperror.KindAuth))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("empty and oversized bodies", func(t *testing.T) {
		repo := new(mockCommentRepository)
		svc := NewCommentService(repo)

		_, err := svc.Add(ctx, "p1", jon, "   ")
		assert.True(t, apperror.Is(err, apperror.KindValidation))

		_, err = svc.Add(ctx, "p1", jon, strings.Repeat("a", maxCommentLength+1))
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("unknown post", func(t *testing.T) {
		repo := new(mockCommentRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(apperror.NotFound("post not found"))

		_, err := NewCommentService(repo).Add(ctx, "ghost", jon, "hello")

		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}
