package models

import "slices"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

// IsAdmin reports whether the actor is a platform administrator.
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// PaginationMetadata describes a page of a listing.
type PaginationMetadata struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// NormalizePage clamps page and limit to sane values and returns the row offset.
func NormalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	return page, limit, (page - 1) * limit
}

// NewPaginationMetadata builds the metadata block for a listing.
func NewPaginationMetadata(page, limit, totalCount int) *PaginationMetadata {
	totalPages := (totalCount + limit - 1) / limit
	return &PaginationMetadata{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// UpdateResult is the state of an entity after an update request and whether it was persisted.
type UpdateResult[T any] struct {
	Item    T    `json:"item"`
	Changed bool `json:"changed"`
}
