package scholar

import (
	"errors"
	"fmt"
)

// Common errors returned by fetchers.
var (
	// ErrInvalidProfile indicates a profile identifier with no user ID.
	ErrInvalidProfile = errors.New("invalid Scholar profile")

	// ErrNoPublicationTable indicates the page has no publication table.
	ErrNoPublicationTable = errors.New("no publication table on profile page")

	// ErrProfileNotFound indicates no stored rows exist for the profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrAllProfilesFailed indicates every requested profile failed to fetch.
	ErrAllProfilesFailed = errors.New("all profiles failed to fetch")
)

// FetchError records why a single profile could not be fetched.
type FetchError struct {
	Profile string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching profile %s: %v", e.Profile, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsInvalidProfile returns true if the error is an invalid profile identifier.
func IsInvalidProfile(err error) bool {
	return errors.Is(err, ErrInvalidProfile)
}

// IsNotFound returns true if the profile had no page or stored rows.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) || errors.Is(err, ErrNoPublicationTable)
}

// IsAllFailed returns true if no profile could be fetched.
func IsAllFailed(err error) bool {
	return errors.Is(err, ErrAllProfilesFailed)
}
