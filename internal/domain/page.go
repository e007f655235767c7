package domain

// Pageable carries the requested page number (zero-based) and page size.
type Pageable struct {
	Page int
	Size int
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Page is a single page of results plus pagination metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	pages := 0
	if pageable.Size > 0 {
		pages = int((total + int64(pageable.Size) - 1) / int64(pageable.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          pageable.Page,
		Size:          pageable.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
