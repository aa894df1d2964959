package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/media"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/sanitize"
	"portfolio/internal/slug"
	"portfolio/internal/validation"
)

const postListKey = "posts:all"

// PostService manages blog posts.
type PostService interface {
	Create(ctx context.Context, authorID uint, in validation.PostInput, thumbnail *media.File) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	// GetBySlug also counts a view.
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	Update(ctx context.Context, id uint, patch validation.PostPatch, thumbnail *media.File) (*model.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	repo   repository.PostRepository
	assets assets
	cache  *cache.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewPostService builds a PostService. The post list is cached for ttl.
func NewPostService(repo repository.PostRepository, host media.Host, cache *cache.Client, ttl time.Duration, log *logrus.Logger) PostService {
	return &postService{
		repo:   repo,
		assets: assets{host: host, log: log},
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

func (s *postService) Create(ctx context.Context, authorID uint, in validation.PostInput, thumbnail *media.File) (*model.Post, error) {
	postSlug := slug.Make(in.Title)
	if postSlug == "" {
		return nil, apperrors.NewValidationError("title", "must contain at least one letter or digit")
	}

	post := &model.Post{
		Title:      in.Title,
		Slug:       postSlug,
		Content:    sanitize.HTML(in.Content),
		IsFeatured: bool(in.IsFeatured),
		Tags:       datatypes.JSONSlice[string](validation.NormalizeTags(in.Tags)),
		Views:      0,
		AuthorID:   authorID,
	}

	asset, err := s.assets.upload(ctx, media.FolderPosts, thumbnail)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		post.Thumbnail = &asset.URL
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.assets.discard(ctx, asset)
		return nil, postError(err)
	}
	s.invalidate(ctx)

	created, err := s.repo.FindByID(ctx, post.ID)
	if err != nil {
		s.log.WithError(err).WithField("post_id", post.ID).Warn("reload created post")
		return post, nil
	}
	return created, nil
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := s.cache.Fetch(ctx, postListKey, s.ttl, &posts, func() (interface{}, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, postError(err)
	}
	return post, nil
}

func (s *postService) GetBySlug(ctx context.Context, postSlug string) (*model.Post, error) {
	post, err := s.repo.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, postError(err)
	}

	if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
		s.log.WithError(err).WithField("post_id", post.ID).Warn("view not counted")
		return post, nil
	}
	post.Views++
	s.invalidate(ctx)
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uint, patch validation.PostPatch, thumbnail *media.File) (*model.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, postError(err)
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		postSlug := slug.Make(*patch.Title)
		if postSlug == "" {
			return nil, apperrors.NewValidationError("title", "must contain at least one letter or digit")
		}
		fields["title"] = *patch.Title
		fields["slug"] = postSlug
	}
	if patch.Content != nil {
		fields["content"] = sanitize.HTML(*patch.Content)
	}
	if patch.IsFeatured != nil {
		fields["is_featured"] = bool(*patch.IsFeatured)
	}
	if patch.Tags != nil {
		fields["tags"] = datatypes.JSONSlice[string](validation.NormalizeTags(*patch.Tags))
	}

	asset, err := s.assets.upload(ctx, media.FolderPosts, thumbnail)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		fields["thumbnail"] = asset.URL
	}

	if len(fields) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.assets.discard(ctx, asset)
		return nil, postError(err)
	}
	if asset != nil && existing.Thumbnail != nil {
		s.assets.removeURL(ctx, *existing.Thumbnail)
	}
	s.invalidate(ctx)

	return s.GetByID(ctx, id)
}

func (s *postService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return postError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return postError(err)
	}
	if existing.Thumbnail != nil {
		s.assets.removeURL(ctx, *existing.Thumbnail)
	}
	s.invalidate(ctx)
	return nil
}

func (s *postService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, postListKey); err != nil {
		s.log.WithError(err).WithField("key", postListKey).Warn("cache not invalidated")
	}
}

func postError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrPostNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrSlugTaken
	default:
		return err
	}
}
