package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/media"
)

// assets wraps the media host with the store-side policy: uploads fail the
// request, deletions are best-effort and only logged.
type assets struct {
	host media.Host
	log  *logrus.Logger
}

func (a assets) upload(ctx context.Context, folder string, f *media.File) (*media.Asset, error) {
	if f == nil {
		return nil, nil
	}
	if a.host == nil {
		return nil, fmt.Errorf("%w: no media host configured", apperrors.ErrUpload)
	}
	asset, err := a.host.Upload(ctx, folder, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpload, err)
	}
	return asset, nil
}

func (a assets) remove(ctx context.Context, publicID string) {
	if a.host == nil || publicID == "" {
		return
	}
	if err := a.host.Delete(ctx, publicID); err != nil {
		a.log.WithError(err).WithField("public_id", publicID).Warn("media asset not deleted")
	}
}

func (a assets) removeURL(ctx context.Context, url string) {
	if a.host == nil {
		return
	}
	if id, ok := a.host.PublicID(url); ok {
		a.remove(ctx, id)
	}
}

// discard undoes an upload whose record was never written.
func (a assets) discard(ctx context.Context, asset *media.Asset) {
	if asset != nil {
		a.remove(ctx, asset.PublicID)
	}
}
