// Package scholar fetches publication listings from Scholar author profiles.
//
// A Fetcher turns a profile identifier into raw (title, cited-by) rows. Rows
// are returned exactly as displayed; parsing and validation happen in the
// record package.
package scholar

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matsen/citenet/internal/record"
)

// BaseURL is the Scholar citations page.
const BaseURL = "https://scholar.google.com/citations"

// Page selectors for the publication table.
const (
	TableSelector   = "#gsc_a_b"
	RowSelector     = ".gsc_a_tr"
	TitleSelector   = ".gsc_a_at"
	CitedBySelector = ".gsc_a_ac"
)

// Fetcher retrieves the publication rows of one profile.
type Fetcher interface {
	Fetch(ctx context.Context, profile string) ([]record.Raw, error)
	Close() error
}

// ProfileID extracts the user ID from a bare ID or a profile URL.
func ProfileID(profile string) (string, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidProfile)
	}

	if !strings.Contains(profile, "://") {
		if strings.ContainsAny(profile, "/?&= ") {
			return "", fmt.Errorf("%w: %q", ErrInvalidProfile, profile)
		}
		return profile, nil
	}

	u, err := url.Parse(profile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	id := u.Query().Get("user")
	if id == "" {
		return "", fmt.Errorf("%w: no user parameter in %q", ErrInvalidProfile, profile)
	}
	return id, nil
}

// ProfileURL returns the English-language profile page for a bare ID or URL.
func ProfileURL(profile string) (string, error) {
	id, err := ProfileID(profile)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("user", id)
	q.Set("hl", "en")
	return BaseURL + "?" + q.Encode(), nil
}

// ParseProfile extracts publication rows from a profile page. Rows missing
// their title or cited-by cell are skipped; an empty cited-by cell is kept
// as empty text.
func ParseProfile(r io.Reader) ([]record.Raw, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing profile page: %w", err)
	}

	table := doc.Find(TableSelector)
	if table.Length() == 0 {
		return nil, ErrNoPublicationTable
	}

	rows := table.Find(RowSelector)
	raws := make([]record.Raw, 0, rows.Length())
	rows.Each(func(_ int, s *goquery.Selection) {
		title := s.Find(TitleSelector).First()
		citedBy := s.Find(CitedBySelector).First()
		if title.Length() == 0 || citedBy.Length() == 0 {
			return
		}
		raws = append(raws, record.Raw{
			Title:   strings.TrimSpace(title.Text()),
			CitedBy: strings.TrimSpace(citedBy.Text()),
		})
	})
	return raws, nil
}
