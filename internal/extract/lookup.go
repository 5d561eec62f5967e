package extract

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jimezsa/opptrack/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrFetchInProgress = errors.New("a metadata fetch is already in progress")
)

// HTMLFetcher returns the rendered HTML of a target page.
type HTMLFetcher interface {
	FetchHTML(ctx context.Context, target string) (string, error)
}

// Lookup fetches a page and extracts proposed fields from it. Only one
// fetch may be outstanding at a time; overlapping calls fail fast with
// ErrFetchInProgress instead of racing to fill the same form.
type Lookup struct {
	fetcher  HTMLFetcher
	logger   zerolog.Logger
	inFlight atomic.Bool
}

func NewLookup(fetcher HTMLFetcher, logger zerolog.Logger) *Lookup {
	return &Lookup{fetcher: fetcher, logger: logger}
}

// Fetch normalizes rawURL, fetches it and runs the rule table. Any fetch
// failure returns an error and no fields; there is no partial extraction.
func (l *Lookup) Fetch(ctx context.Context, rawURL string) (models.Fields, error) {
	target := models.NormalizeURL(rawURL)
	if target == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if !l.inFlight.CompareAndSwap(false, true) {
		return nil, ErrFetchInProgress
	}
	defer l.inFlight.Store(false)

	start := time.Now()
	body, err := l.fetcher.FetchHTML(ctx, target)
	if err != nil {
		l.logger.Warn().Err(err).Str("url", target).Msg("metadata fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	l.logger.Debug().
		Str("url", target).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("metadata fetched")

	return Extract(body, target), nil
}

// Busy reports whether a fetch is outstanding.
func (l *Lookup) Busy() bool {
	return l.inFlight.Load()
}
