package gallery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	domain "marianails/internal/domain/gallery"
	"marianails/internal/metrics"

	"github.com/rs/zerolog/log"
)

// DirectoryReader enumerates directory entries.
type DirectoryReader interface {
	FileNames(ctx context.Context, dir string) ([]string, error)
	RawNames(ctx context.Context, dir string) ([]string, error)
}

// ListingCache holds filtered, sorted image names per directory.
type ListingCache interface {
	Get(ctx context.Context, dir string) ([]string, bool)
	Set(ctx context.Context, dir string, names []string) error
	Invalidate(ctx context.Context, dir string) error
}

// Service computes gallery pages from a directory, optionally through a listing cache.
type Service struct {
	dir            string
	reader         DirectoryReader
	cache          ListingCache // nil = no caching
	defaultPerPage int
	maxPerPage     int
}

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
	Cache          ListingCache
}

// NewService creates a listing service for dir
func NewService(dir string, reader DirectoryReader, opts Options) *Service {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = 30
	}
	return &Service{
		dir:            dir,
		reader:         reader,
		cache:          opts.Cache,
		defaultPerPage: opts.DefaultPerPage,
		maxPerPage:     opts.MaxPerPage,
	}
}

// Dir returns the directory the service lists.
func (s *Service) Dir() string { return s.dir }

// ListImages returns the requested page of image URLs.
func (s *Service) ListImages(ctx context.Context, req ListRequest) (res *PageResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &ServiceError{Op: "list_images", Kind: domain.KindUnexpected, Err: fmt.Errorf("panic: %v", r)}
		}
		metrics.ListingDuration.Observe(time.Since(start).Seconds())
		var se *ServiceError
		if errors.As(err, &se) {
			metrics.ListingErrorsTotal.WithLabelValues(string(se.Kind)).Inc()
		}
	}()

	req.Normalize(s.defaultPerPage, s.maxPerPage)

	names, err := s.imageNames(ctx)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = domain.ImageFile{Name: name}.URL()
	}
	metrics.GalleryImages.Set(float64(len(urls)))

	return &PageResult{
		Success: true,
		Page:    domain.Paginate(urls, req.Page, req.PerPage),
	}, nil
}

// RawEntries lists every entry of the gallery directory, unfiltered.
func (s *Service) RawEntries(ctx context.Context) ([]string, error) {
	names, err := s.reader.RawNames(ctx, s.dir)
	if err != nil {
		return nil, classify("raw_entries", err)
	}
	return names, nil
}

// Invalidate drops the cached listing, if any.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, s.dir)
}

// imageNames returns the filtered image names in lexicographic order.
func (s *Service) imageNames(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if names, ok := s.cache.Get(ctx, s.dir); ok && len(names) > 0 {
			metrics.CacheHitsTotal.Inc()
			return names, nil
		}
		metrics.CacheMissesTotal.Inc()
	}

	entries, err := s.reader.FileNames(ctx, s.dir)
	if err != nil {
		return nil, classify("list_images", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if domain.IsImage(e) {
			names = append(names, e)
		}
	}
	if len(names) == 0 {
		return nil, &ServiceError{Op: "list_images", Kind: domain.KindNoImagesFound, Err: domain.ErrNoImagesFound}
	}
	sort.Strings(names)

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.dir, names); err != nil {
			log.Warn().Err(err).Str("dir", s.dir).Msg("failed to cache gallery listing")
		}
	}
	return names, nil
}

func classify(op string, err error) *ServiceError {
	switch {
	case errors.Is(err, domain.ErrDirectoryNotFound):
		return &ServiceError{Op: op, Kind: domain.KindDirectoryNotFound, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ServiceError{Op: op, Kind: domain.KindUnexpected, Err: err}
	default:
		return &ServiceError{Op: op, Kind: domain.KindReadError, Err: err}
	}
}

// ServiceError represents a gallery service error
type ServiceError struct {
	Op   string
	Kind domain.ErrorKind
	Err  error
}

func (e *ServiceError) Error() string {
	return "gallery service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf returns the error kind carried by err, or KindUnexpected.
func KindOf(err error) domain.ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return domain.KindUnexpected
}
