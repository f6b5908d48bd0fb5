package service

import (
	"log/slog"

	"omenblog/internal/config"
	"omenblog/internal/repository"
	"omenblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Contact ContactService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Post:    NewPostService(rep.Post, rep.Image, storage, cfg, logger),
		Comment: NewCommentService(rep.Comment),
		Contact: NewContactService(rep.Contact),
		Tables:  NewTablesService(rep.Tables),
	}
}
