package entity

import "math"

// BusinessFilter is the equality filter set of a listing query.
// Nil fields place no constraint.
type BusinessFilter struct {
	Category *Category
	Verified *bool
}

// PageRequest is a validated offset window.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of records skipped before the page starts.
// Pages whose offset would overflow saturate at the last multiple of Limit
// that fits, which still lies past any stored record.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt / p.Limit * p.Limit
	}

	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit), or 0 when nothing matched.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}

	l := int64(limit)

	return int((total + l - 1) / l)
}
