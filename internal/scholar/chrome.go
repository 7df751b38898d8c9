package scholar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/matsen/citenet/internal/record"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single profile page load.
const DefaultTimeout = 60 * time.Second

// ChromeOptions configures the headless browser session.
type ChromeOptions struct {
	ExecPath    string        // Chrome binary; empty uses chromedp's lookup
	ShowBrowser bool          // Disable headless mode
	Timeout     time.Duration // Per-profile page load timeout
	Logger      *zap.Logger
}

// ChromeFetcher loads profile pages in a shared headless Chrome.
// Each Fetch opens its own tab, so Fetch is safe for concurrent use.
type ChromeFetcher struct {
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	timeout       time.Duration
	log           *zap.Logger
}

// NewChromeFetcher starts a browser. Callers must Close it.
func NewChromeFetcher(opts ChromeOptions) (*ChromeFetcher, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.ShowBrowser),
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(log.Sugar().Debugf),
		chromedp.WithErrorf(log.Sugar().Debugf),
	)

	// Start the browser so tabs can be opened from it
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &ChromeFetcher{
		allocCtx:      allocCtx,
		cancelAlloc:   cancelAlloc,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		timeout:       timeout,
		log:           log,
	}, nil
}

// Fetch loads the profile page and parses its publication table.
func (f *ChromeFetcher) Fetch(ctx context.Context, profile string) ([]record.Raw, error) {
	pageURL, err := ProfileURL(profile)
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancel := context.WithTimeout(tabCtx, f.timeout)
	defer cancel()

	start := time.Now()
	var html string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(TableSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("loading %s: %w", pageURL, err)
	}

	raws, err := ParseProfile(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	f.log.Debug("profile page loaded",
		zap.String("url", pageURL),
		zap.Int("rows", len(raws)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return raws, nil
}

// Close shuts down the browser.
func (f *ChromeFetcher) Close() error {
	f.cancelBrowser()
	f.cancelAlloc()
	return nil
}
