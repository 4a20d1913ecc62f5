package main

import "math"

// listRequest is the shared pagination body. Resource-specific filters
// (statusFilter, typeFilter, jobId) are optional and ignored where they do
// not apply.
type listRequest struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	SearchTerm   string `json:"searchTerm"`
	StatusFilter string `json:"statusFilter"`
	TypeFilter   string `json:"typeFilter"`
	JobID        *uint  `json:"jobId"`
}

// clamp normalizes a page request: page below 0 resets to 0, pageSize outside
// [1, 10000] resets to 10. The zero-value request therefore becomes (0, 10).
func (r *listRequest) clamp() {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.PageSize < 1 || r.PageSize > 10000 {
		r.PageSize = 10
	}
}

func totalPages(count int64, pageSize int) int {
	return int(math.Ceil(float64(count) / float64(pageSize)))
}

// pageMeta is appended to every list response.
func pageMeta(page, pageSize int, count int64) map[string]any {
	pages := totalPages(count, pageSize)
	return map[string]any{
		"totalPages":  pages,
		"currentPage": page,
		"pageSize":    pageSize,
		"hasNext":     page < pages-1,
		"hasPrevious": page > 0,
	}
}
