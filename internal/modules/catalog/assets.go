package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/pkg/storage"
	"go.uber.org/zap"
)

// uploadFile stores one uploaded file and returns its public URL.
func (s *Service) uploadFile(ctx context.Context, up Upload) (string, error) {
	contentType := up.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(up.Data)
	}
	key := storage.ObjectKey(s.assetPrefix, up.Filename)
	return s.store.Upload(ctx, key, up.Data, contentType)
}

// deleteAssets removes managed assets from object storage. Deletion is
// best-effort: failures are logged and swallowed, and URLs outside the
// managed bucket are never targeted. Orphaned objects are an accepted
// failure mode.
func (s *Service) deleteAssets(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if strings.TrimSpace(url) == "" || !s.store.Owns(url) {
			continue
		}
		if err := s.store.Delete(ctx, url); err != nil {
			s.log.Warn("asset delete failed", zap.String("url", url), zap.Error(err))
		}
	}
}

// buildDetails constructs the detail list for a create operation.
func (s *Service) buildDetails(ctx context.Context, kind models.MediaKind, url string, files []Upload) (models.MediaDescriptors, error) {
	if kind == models.MediaImage {
		if len(files) == 0 {
			return nil, ErrDetailFilesRequired
		}
		details := make(models.MediaDescriptors, 0, len(files))
		for _, f := range files {
			u, err := s.uploadFile(ctx, f)
			if err != nil {
				return nil, err
			}
			details = append(details, models.MediaDescriptor{Kind: models.MediaImage, URL: u})
		}
		return details, nil
	}

	if strings.TrimSpace(url) == "" {
		return nil, ErrDetailURLRequired
	}
	return models.MediaDescriptors{{Kind: kind, URL: strings.TrimSpace(url)}}, nil
}

// replaceDetails constructs the replacement detail list for an update. For
// image kind, the images kept are exactly those named in the client's
// existing-files list (dropped ones are deleted from storage) plus any new
// uploads. For non-image kinds, previously stored image assets are deleted
// first, then the single URL descriptor replaces everything.
func (s *Service) replaceDetails(ctx context.Context, item *models.PortfolioItem, kind models.MediaKind, in UpdateItemInput) (models.MediaDescriptors, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	if kind != models.MediaImage {
		if in.URL == nil || strings.TrimSpace(*in.URL) == "" {
			return nil, ErrDetailURLRequired
		}
		s.deleteAssets(ctx, item.ImageDetailURLs()...)
		return models.MediaDescriptors{{Kind: kind, URL: strings.TrimSpace(*in.URL)}}, nil
	}

	kept := make(models.MediaDescriptors, 0, len(item.Details))
	var dropped []string
	for _, d := range item.Details {
		if d.Kind != models.MediaImage {
			continue
		}
		if in.ExistingFiles == nil || contains(*in.ExistingFiles, d.URL) {
			kept = append(kept, d)
		} else {
			dropped = append(dropped, d.URL)
		}
	}
	s.deleteAssets(ctx, dropped...)

	for _, f := range in.DetailFiles {
		u, err := s.uploadFile(ctx, f)
		if err != nil {
			return nil, err
		}
		kept = append(kept, models.MediaDescriptor{Kind: models.MediaImage, URL: u})
	}
	return kept, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
