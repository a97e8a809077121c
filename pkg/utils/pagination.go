package utils

// PaginationParams holds limit/offset request parameters
type PaginationParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// GetPaginationParams normalizes limit and offset with defaults.
// A non-positive limit falls back to defaultLimit; a negative offset to 0.
func GetPaginationParams(limit, offset, defaultLimit int) PaginationParams {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}
