package presenter

import "errors"

// Sentinel kinds for presenter errors.
var (
	ErrLocale = errors.New("invalid locale")
)
