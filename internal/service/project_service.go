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
	"portfolio/internal/validation"
)

const projectListKey = "projects:all"

// ProjectService manages portfolio projects.
type ProjectService interface {
	Create(ctx context.Context, in validation.ProjectInput, thumbnail *media.File) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	GetByID(ctx context.Context, id uint) (*model.Project, error)
	Update(ctx context.Context, id uint, patch validation.ProjectPatch, thumbnail *media.File) (*model.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectService struct {
	repo   repository.ProjectRepository
	assets assets
	cache  *cache.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewProjectService builds a ProjectService.
func NewProjectService(repo repository.ProjectRepository, host media.Host, cache *cache.Client, ttl time.Duration, log *logrus.Logger) ProjectService {
	return &projectService{
		repo:   repo,
		assets: assets{host: host, log: log},
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

func (s *projectService) Create(ctx context.Context, in validation.ProjectInput, thumbnail *media.File) (*model.Project, error) {
	project := &model.Project{
		Title:      in.Title,
		Content:    sanitize.HTML(in.Content),
		IsFeatured: bool(in.IsFeatured),
		Tags:       datatypes.JSONSlice[string](validation.NormalizeTags(in.Tags)),
		LiveURL:    in.LiveURL,
		RepoURL:    in.RepoURL,
	}

	asset, err := s.assets.upload(ctx, media.FolderProjects, thumbnail)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		project.Thumbnail = &asset.URL
		project.ThumbnailPublicID = &asset.PublicID
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.assets.discard(ctx, asset)
		return nil, projectError(err)
	}
	s.invalidate(ctx)
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.cache.Fetch(ctx, projectListKey, s.ttl, &projects, func() (interface{}, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, projectError(err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uint, patch validation.ProjectPatch, thumbnail *media.File) (*model.Project, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, projectError(err)
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
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
	if patch.LiveURL != nil {
		fields["live_url"] = *patch.LiveURL
	}
	if patch.RepoURL != nil {
		fields["repo_url"] = *patch.RepoURL
	}

	asset, err := s.assets.upload(ctx, media.FolderProjects, thumbnail)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		fields["thumbnail"] = asset.URL
		fields["thumbnail_public_id"] = asset.PublicID
	}

	if len(fields) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.assets.discard(ctx, asset)
		return nil, projectError(err)
	}
	if asset != nil && existing.ThumbnailPublicID != nil {
		s.assets.remove(ctx, *existing.ThumbnailPublicID)
	}
	s.invalidate(ctx)

	return s.GetByID(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return projectError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return projectError(err)
	}
	if existing.ThumbnailPublicID != nil {
		s.assets.remove(ctx, *existing.ThumbnailPublicID)
	}
	s.invalidate(ctx)
	return nil
}

func (s *projectService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, projectListKey); err != nil {
		s.log.WithError(err).WithField("key", projectListKey).Warn("cache not invalidated")
	}
}

func projectError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrProjectNotFound
	}
	return err
}
