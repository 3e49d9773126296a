package store

import "errors"

var (
	ErrNotFound    = errors.New("row not found")
	ErrFilterLimit = errors.New("saved filter limit reached")
)

// MaxFiltersPerUser caps how many search filters a user may save.
const MaxFiltersPerUser = 3
