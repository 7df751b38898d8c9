package scholar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/citenet/internal/record"
)

// FileFetcher serves rows previously saved as JSONL.
//
// With an empty Dir the profile identifier is the file path itself;
// otherwise rows are read from Dir/<profile ID>.jsonl.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher returns a fetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

// Path returns the file that holds the rows of profile.
func (f *FileFetcher) Path(profile string) (string, error) {
	if f.Dir == "" {
		if profile == "" {
			return "", fmt.Errorf("%w: empty identifier", ErrInvalidProfile)
		}
		return profile, nil
	}
	id, err := ProfileID(profile)
	if err != nil {
		return "", err
	}
	return filepath.Join(f.Dir, id+".jsonl"), nil
}

// Fetch reads the rows of profile.
func (f *FileFetcher) Fetch(ctx context.Context, profile string) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.Path(profile)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
	}
	return record.ReadRawJSONL(path)
}

// Close is a no-op.
func (f *FileFetcher) Close() error {
	return nil
}
