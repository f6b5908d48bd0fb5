package handlers

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-playground/validator/v10"

	"omenblog/internal/config"
	"omenblog/internal/service"
	"omenblog/internal/view"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	ContactService service.ContactService
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
	Renderer       view.Renderer
	Logger         *slog.Logger
}

func NewHandlers(services *service.Service, cfg *config.Config, renderer view.Renderer, logger *slog.Logger) *Handlers {
	validate := validator.New()
	if err := validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering username validation: %v", err))
	}

	return &Handlers{
		AuthService:    services.Auth,
		PostService:    services.Post,
		CommentService: services.Comment,
		ContactService: services.Contact,
		TablesService:  services.Tables,
		Cfg:            cfg,
		Validate:       validate,
		Renderer:       renderer,
		Logger:         logger,
	}
}
