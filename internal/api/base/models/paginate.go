package basemodels

// PaginateResult is the standard page envelope for list queries.
type PaginateResult[T any] struct {
	Items     []T   `json:"items"`     // Items on this page
	Page      int64 `json:"page"`      // Current page (1-based)
	Limit     int64 `json:"limit"`     // Page size
	ItemCount int64 `json:"itemCount"` // Items on this page
	Total     int64 `json:"total"`     // Total matching items
	TotalPage int64 `json:"totalPage"` // Total pages
}
