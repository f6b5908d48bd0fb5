package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"omenblog/internal/apperror"
	"omenblog/internal/config"
	"omenblog/internal/models"
	"omenblog/internal/repository"
	"omenblog/internal/storage"
)

const (
	defaultPageSize = 10
	searchLimit     = 50
)

type PostService interface {
	ListPage(ctx context.Context, page, pageSize int) (*Page, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Post, error)
	ListByTag(ctx context.Context, tag string, limit int) ([]models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Create(ctx context.Context, input PostInput, upload *Upload) (*models.Post, error)
	Update(ctx context.Context, slug string, input PostInput, upload *Upload) (*models.Post, error)
	Delete(ctx context.Context, postID string) error
	React(ctx context.Context, postID, userID, direction string) (*models.Reactions, error)
	Search(ctx context.Context, term string) ([]models.Post, error)
}

// PostInput carries the editable post fields. For updates a nil field means
// "not supplied" and keeps the stored value.
type PostInput struct {
	Title           *string
	Body            *string
	Author          *string
	Sports          []string
	Leagues         []string
	IsFeatured      *bool
	MetaTitle       *string
	MetaDescription *string
	Keywords        []string
	ImageAlt        *string
}

type Page struct {
	Posts      []models.Post
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	HasNext    bool
	NextPage   int
	HasPrev    bool
	PrevPage   int
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cfg       *config.Config
	logger    *slog.Logger
	now       func() time.Time
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage, cfg *config.Config, logger *slog.Logger) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// ListPage returns the page-th window of posts, newest first. Pages below 1
// are treated as page 1 and pages past the last one come back empty.
func (p *postService) ListPage(ctx context.Context, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	total, err := p.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	posts := []models.Post{}
	if page <= totalPages {
		posts, err = p.postRepo.List(ctx, pageSize, pageSize*(page-1))
		if err != nil {
			return nil, err
		}
	}

	result := &Page{
		Posts:      posts,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	if result.HasNext {
		result.NextPage = page + 1
	}
	if result.HasPrev {
		result.PrevPage = page - 1
	}

	return result, nil
}

func (p *postService) ListFeatured(ctx context.Context, limit int) ([]models.Post, error) {
	return p.postRepo.ListFeatured(ctx, limit)
}

func (p *postService) ListByTag(ctx context.Context, tag string, limit int) ([]models.Post, error) {
	return p.postRepo.ListByTag(ctx, strings.TrimSpace(tag), limit)
}

func (p *postService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return p.postRepo.GetBySlug(ctx, slug)
}

func (p *postService) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func (p *postService) Create(ctx context.Context, input PostInput, upload *Upload) (*models.Post, error) {
	title, body, author := value(input.Title), value(input.Body), value(input.Author)
	sports := NormalizeTags(input.Sports)

	switch {
	case title == "":
		return nil, apperror.Validation("title is required")
	case body == "":
		return nil, apperror.Validation("body is required")
	case author == "":
		return nil, apperror.Validation("author is required")
	case len(sports) == 0:
		return nil, apperror.Validation("at least one sport is required")
	}

	slug := Slugify(title)
	if slug == "" {
		return nil, apperror.Validation("title must contain letters or digits")
	}

	contentType, err := ValidateUpload(upload, p.cfg.MaxUploadSize)
	if err != nil {
		return nil, err
	}

	if _, err := p.postRepo.GetBySlug(ctx, slug); err == nil {
		return nil, apperror.Conflict("a post with this title already exists")
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return nil, err
	}

	now := p.now()
	post := &models.Post{
		PostID:     uuid.New().String(),
		Slug:       slug,
		Title:      title,
		Body:       body,
		Author:     author,
		Sports:     sports,
		Leagues:    NormalizeTags(input.Leagues),
		IsFeatured: input.IsFeatured != nil && *input.IsFeatured,
		ImageAlt:   value(input.ImageAlt),
		Keywords:   NormalizeTags(input.Keywords),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	post.MetaTitle = value(input.MetaTitle)
	post.MetaDescription = value(input.MetaDescription)

	image, err := p.uploadImage(ctx, post.PostID, contentType, upload)
	if err != nil {
		return nil, err
	}
	post.HeaderImage = image.ImageURL

	applySEODefaults(post)
	post.ReadTime = ReadTime(post.Body)

	if err := p.postRepo.Create(ctx, post); err != nil {
		p.removeObject(ctx, image.ObjectName)
		return nil, err
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		p.logger.Warn("saving image record failed", "post_id", post.PostID, "error", err)
	}

	return post, nil
}

func (p *postService) Update(ctx context.Context, slug string, input PostInput, upload *Upload) (*models.Post, error) {
	post, err := p.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if value(input.Title) == "" {
			return nil, apperror.Validation("title cannot be empty")
		}
		post.Title = value(input.Title)
	}
	if input.Body != nil {
		if value(input.Body) == "" {
			return nil, apperror.Validation("body cannot be empty")
		}
		post.Body = value(input.Body)
		post.ReadTime = ReadTime(post.Body)
	}
	if input.Author != nil {
		if value(input.Author) == "" {
			return nil, apperror.Validation("author cannot be empty")
		}
		post.Author = value(input.Author)
	}
	if input.Sports != nil {
		sports := NormalizeTags(input.Sports)
		if len(sports) == 0 {
			return nil, apperror.Validation("at least one sport is required")
		}
		post.Sports = sports
	}
	if input.Leagues != nil {
		post.Leagues = NormalizeTags(input.Leagues)
	}
	if input.Keywords != nil {
		post.Keywords = NormalizeTags(input.Keywords)
	}
	if input.IsFeatured != nil {
		post.IsFeatured = *input.IsFeatured
	}
	if input.ImageAlt != nil {
		post.ImageAlt = value(input.ImageAlt)
	}
	if input.MetaTitle != nil {
		post.MetaTitle = value(input.MetaTitle)
		post.OgTitle = ""
	}
	if input.MetaDescription != nil {
		post.MetaDescription = value(input.MetaDescription)
		post.OgDescription = ""
	}

	var (
		newImage  *models.Image
		oldImages []*models.Image
	)
	if upload != nil {
		contentType, err := ValidateUpload(upload, p.cfg.MaxUploadSize)
		if err != nil {
			return nil, err
		}

		oldImages, err = p.imageRepo.GetByPostID(ctx, post.PostID)
		if err != nil {
			return nil, err
		}

		newImage, err = p.uploadImage(ctx, post.PostID, contentType, upload)
		if err != nil {
			return nil, err
		}

		post.HeaderImage = newImage.ImageURL
		post.OgImage = ""
	}

	applySEODefaults(post)
	post.UpdatedAt = p.now()

	if err := p.postRepo.Update(ctx, post); err != nil {
		if newImage != nil {
			p.removeObject(ctx, newImage.ObjectName)
		}
		return nil, err
	}

	if newImage != nil {
		if err := p.imageRepo.Create(ctx, newImage); err != nil {
			p.logger.Warn("saving image record failed", "post_id", post.PostID, "error", err)
		}
		p.removeImages(ctx, oldImages)
	}

	return post, nil
}

// Delete removes the post, its media records and stored objects. Deleting a
// post that does not exist succeeds.
func (p *postService) Delete(ctx context.Context, postID string) error {
	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	for _, image := range images {
		p.removeObject(ctx, image.ObjectName)
	}
	if err := p.imageRepo.DeleteByPostID(ctx, postID); err != nil {
		p.logger.Warn("removing image records failed", "post_id", postID, "error", err)
	}
	return nil
}

func (p *postService) React(ctx context.Context, postID, userID, direction string) (*models.Reactions, error) {
	if userID == "" {
		return nil, apperror.Auth("log in to react to posts")
	}
	if direction != repository.ReactionLike && direction != repository.ReactionDislike {
		return nil, apperror.Validation("reaction must be like or dislike")
	}

	return p.postRepo.React(ctx, postID, userID, direction)
}

func (p *postService) Search(ctx context.Context, term string) ([]models.Post, error) {
	cleaned := CleanSearchTerm(term)
	if cleaned == "" {
		return []models.Post{}, nil
	}

	return p.postRepo.Search(ctx, cleaned, searchLimit)
}

func (p *postService) uploadImage(ctx context.Context, postID, contentType string, upload *Upload) (*models.Image, error) {
	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, upload.FileName, contentType, upload.File, upload.Size)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "uploading header image", err)
	}

	return &models.Image{
		ImageID:     uuid.New().String(),
		PostID:      postID,
		ObjectName:  objectName,
		ImageURL:    imageURL,
		ContentType: contentType,
		Size:        upload.Size,
		CreatedAt:   p.now(),
	}, nil
}

func (p *postService) removeObject(ctx context.Context, objectName string) {
	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		p.logger.Warn("removing stored image failed", "object", objectName, "error", err)
	}
}

func (p *postService) removeImages(ctx context.Context, images []*models.Image) {
	for _, image := range images {
		p.removeObject(ctx, image.ObjectName)
		if err := p.imageRepo.Delete(ctx, image.ImageID); err != nil {
			p.logger.Warn("removing image record failed", "image_id", image.ImageID, "error", err)
		}
	}
}

// applySEODefaults fills every blank SEO field from its primary field.
func applySEODefaults(post *models.Post) {
	if post.MetaTitle == "" {
		post.MetaTitle = post.Title
	}
	if post.MetaDescription == "" {
		post.MetaDescription = Excerpt(post.Body, metaDescriptionLimit)
	}
	if len(post.Keywords) == 0 {
		post.Keywords = pq.StringArray(NormalizeTags(append(append([]string{}, post.Sports...), post.Leagues...)))
	}
	if post.ImageAlt == "" {
		post.ImageAlt = post.Title
	}
	if post.OgTitle == "" {
		post.OgTitle = post.MetaTitle
	}
	if post.OgDescription == "" {
		post.OgDescription = post.MetaDescription
	}
	if post.OgImage == "" {
		post.OgImage = post.HeaderImage
	}
}
