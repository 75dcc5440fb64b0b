package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/linksmith/internal/models"
	"github.com/amosWeiskopf/linksmith/pkg/fetcher"
)

// Writer persists an extracted link list at path
type Writer interface {
	WriteFile(path string, format models.Format, links []models.Link) error
}

// Extractor runs the fetch, parse, resolve and write pipeline for one page
type Extractor struct {
	fetcher fetcher.Fetcher
	writer  Writer
	logger  zerolog.Logger
}

// New creates a new Extractor instance
func New(f fetcher.Fetcher, w Writer, logger zerolog.Logger) *Extractor {
	return &Extractor{
		fetcher: f,
		writer:  w,
		logger:  logger,
	}
}

// Page is the parsed outcome of a fetch
type Page struct {
	Title string
	Links []models.Link
}

// Collect fetches sourceURL and returns up to maxLinks resolved links
// without writing anything.
func (e *Extractor) Collect(ctx context.Context, sourceURL string, maxLinks int) (*Page, error) {
	log := e.logger.With().Str("url", sourceURL).Logger()

	start := time.Now()
	page, err := e.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("status", page.StatusCode).
		Int("bytes", len(page.Body)).
		Str("final_url", page.FinalURL).
		Dur("elapsed", time.Since(start)).
		Msg("fetched page")

	doc, err := ParseDocument(page.Body)
	if err != nil {
		return nil, models.NewInternalError("failed to parse page", err)
	}

	// Resolution uses the requested URL, not the post-redirect one.
	links, err := ExtractLinks(doc, sourceURL, maxLinks)
	if err != nil {
		return nil, models.NewInternalError("failed to resolve links", err)
	}

	return &Page{
		Title: PageTitle(page.Body, doc, sourceURL),
		Links: links,
	}, nil
}

// Extract runs the whole pipeline for req. It never returns a Go error or
// panics: every failure is folded into the result.
func (e *Extractor) Extract(ctx context.Context, req models.ExtractionRequest) (result *models.ExtractionResult) {
	runID := uuid.New().String()
	log := e.logger.With().Str("run_id", runID).Str("url", req.URL).Logger()
	result = &models.ExtractionResult{SourceURL: req.URL}

	defer func() {
		if r := recover(); r != nil {
			result = &models.ExtractionResult{
				SourceURL: req.URL,
				Err:       models.NewInternalError("unexpected failure", fmt.Errorf("%v", r)),
			}
			log.Error().Interface("panic", r).Msg("extraction panicked")
		}
	}()

	page, err := e.Collect(ctx, req.URL, req.MaxLinks)
	if err != nil {
		result.Err = asExtractionError(err)
		log.Warn().Err(err).Str("kind", string(result.Err.Kind)).Msg("extraction failed")
		return result
	}

	format := req.Format
	if format == "" {
		format = models.FormatCSV
	}
	path := req.DestinationPath()
	if err := e.writer.WriteFile(path, format, page.Links); err != nil {
		result.Err = asExtractionError(err)
		log.Warn().Err(err).Str("kind", string(result.Err.Kind)).Msg("extraction failed")
		return result
	}

	result.PageTitle = page.Title
	result.Links = page.Links
	result.Path = path
	log.Info().Int("links", len(page.Links)).Str("path", path).Msg("links extracted")
	return result
}

func asExtractionError(err error) *models.ExtractionError {
	var extErr *models.ExtractionError
	if errors.As(err, &extErr) {
		return extErr
	}
	return models.NewInternalError("unexpected failure", err)
}
