package scholar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/matsen/citenet/internal/record"
)

// Defaults for FetchAll.
const (
	DefaultConcurrency = 2
	DefaultRateLimit   = 0.5 // Page loads per second

	// NoRateLimit disables pacing, for sources that are not Scholar pages.
	NoRateLimit = float64(rate.Inf)
)

// FetchOptions configures FetchAll.
type FetchOptions struct {
	Concurrency int
	RateLimit   float64
	Logger      *zap.Logger
}

// ProfileResult is the outcome of one profile fetch.
type ProfileResult struct {
	Profile string       `json:"profile"`
	Rows    []record.Raw `json:"-"`
	Count   int          `json:"rows"`
	Err     error        `json:"-"`
	Error   string       `json:"error,omitempty"`
}

// FetchResult holds per-profile outcomes in request order.
type FetchResult struct {
	Profiles []ProfileResult `json:"profiles"`
}

// Raws concatenates the rows of every profile in request order.
func (r *FetchResult) Raws() []record.Raw {
	lists := make([][]record.Raw, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		lists = append(lists, p.Rows)
	}
	return record.Concat(lists...)
}

// Failed returns the number of profiles that could not be fetched.
func (r *FetchResult) Failed() int {
	n := 0
	for _, p := range r.Profiles {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// FetchAll fetches every profile in parallel, bounded by Concurrency and paced
// by RateLimit. A failed profile contributes zero rows and is recorded in the
// result. The returned error is non-nil only when ctx is cancelled or every
// profile failed (ErrAllProfilesFailed).
func FetchAll(ctx context.Context, f Fetcher, profiles []string, opts FetchOptions) (*FetchResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	limit := opts.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	limiter := rate.NewLimiter(rate.Limit(limit), 1)

	result := &FetchResult{Profiles: make([]ProfileResult, len(profiles))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, profile := range profiles {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			start := time.Now()
			rows, err := f.Fetch(gctx, profile)
			pr := ProfileResult{Profile: profile}
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				pr.Err = &FetchError{Profile: profile, Err: err}
				pr.Error = pr.Err.Error()
				log.Warn("profile fetch failed",
					zap.String("profile", profile),
					zap.Error(err),
				)
			} else {
				pr.Rows = rows
				pr.Count = len(rows)
				log.Info("profile fetched",
					zap.String("profile", profile),
					zap.Int("rows", len(rows)),
					zap.Duration("elapsed", time.Since(start)),
				)
			}
			result.Profiles[i] = pr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	if len(profiles) > 0 && result.Failed() == len(profiles) {
		return result, fmt.Errorf("%w: %d profiles", ErrAllProfilesFailed, len(profiles))
	}
	return result, nil
}
