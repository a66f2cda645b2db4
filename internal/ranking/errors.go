package ranking

import "errors"

var (
	ErrInvalidLimit      = errors.New("limit must be positive")
	ErrCalculateCreators = errors.New("failed to calculate trending creators")
	ErrCalculateShows    = errors.New("failed to calculate trending shows")
	ErrFetchFeatured     = errors.New("failed to fetch featured content")
)
