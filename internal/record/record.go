// Package record normalizes scraped publication rows into typed records.
package record

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Raw is a publication row as scraped from a profile page, before parsing.
type Raw struct {
	Title   string `json:"title"`
	CitedBy string `json:"cited_by"` // "Cited by" cell text, may be empty
}

// Publication is a parsed publication with its aggregate citation count.
type Publication struct {
	Title   string `json:"title"`
	CitedBy int    `json:"cited_by"`
}

// IngestResult holds the records that parsed and the rows that were skipped.
type IngestResult struct {
	Records []Publication
	Skipped []*ParseError
}

// Parse converts a raw row into a Publication.
// The title is kept verbatim; it is the node identity in the citation graph.
func Parse(raw Raw) (Publication, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return Publication{}, &ParseError{Kind: KindEmptyTitle, Text: raw.CitedBy, Err: ErrEmptyTitle}
	}

	n, err := ParseCount(raw.CitedBy)
	if err != nil {
		return Publication{}, &ParseError{Kind: KindMalformedCount, Title: raw.Title, Text: raw.CitedBy, Err: err}
	}

	return Publication{Title: raw.Title, CitedBy: n}, nil
}

// ParseCount parses "cited by" text. Empty text means zero citations.
// Only base-10 digits are accepted; signs, separators and markers are rejected.
func ParseCount(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, ErrMalformedCount
		}
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		// Only overflow can get here
		return 0, ErrMalformedCount
	}
	return n, nil
}

// Ingest parses every row, skipping (and logging) rows that fail to parse.
// It never aborts: a malformed row only affects itself.
func Ingest(raws []Raw, log *zap.Logger) IngestResult {
	if log == nil {
		log = zap.NewNop()
	}

	result := IngestResult{Records: make([]Publication, 0, len(raws))}
	for i, raw := range raws {
		pub, err := Parse(raw)
		if err != nil {
			perr := err.(*ParseError)
			perr.Row = i
			log.Warn("skipping publication row",
				zap.Int("row", i),
				zap.String("kind", string(perr.Kind)),
				zap.String("title", raw.Title),
				zap.String("cited_by", raw.CitedBy),
			)
			result.Skipped = append(result.Skipped, perr)
			continue
		}
		result.Records = append(result.Records, pub)
	}

	log.Debug("ingested publication rows",
		zap.Int("rows", len(raws)),
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result
}

// Concat flattens several profile sources into one sequence, in order.
func Concat(sources ...[]Raw) []Raw {
	total := 0
	for _, s := range sources {
		total += len(s)
	}

	out := make([]Raw, 0, total)
	for _, s := range sources {
		out = append(out, s...)
	}
	return out
}
