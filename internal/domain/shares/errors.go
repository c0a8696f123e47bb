package shares

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNoData = errors.New("no share data after filtering")
)
