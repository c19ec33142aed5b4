package dtos

// PageDTO is one page of a filtered, ordered result set.
type PageDTO[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, params PageParams) PageDTO[T] {
	if items == nil {
		items = []T{}
	}
	return PageDTO[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: TotalPages(total, params.PageSize),
	}
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}
