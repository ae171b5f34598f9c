package repositories

import (
	"context"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
)

// Pagination defaults and bounds for listing queries.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// ListingFilter is the set of optional filter parameters recognized by
// listing queries. Zero values mean "not filtered". The public feed sets
// OnlyAvailable; the owner dashboard sets OwnerID instead.
type ListingFilter struct {
	PropertyType entities.PropertyType
	Division     string
	District     string
	Area         string
	MinRent      *float64
	MaxRent      *float64
	Bedrooms     *int
	Furnished    entities.FurnishedState
	Search       string

	OwnerID       string
	OnlyAvailable bool

	Page  int
	Limit int
}

// Normalize clamps pagination to sane bounds and applies defaults.
func (f ListingFilter) Normalize() ListingFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Offset returns the row offset implied by the normalized page and limit.
func (f ListingFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ListingRepository is the document-store collaborator for listings.
// Implementations provide their own read/write atomicity; the core layers
// no locking on top.
type ListingRepository interface {
	Create(ctx context.Context, listing *entities.Listing) error
	GetByID(ctx context.Context, id string) (*entities.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entities.Listing, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
	Update(ctx context.Context, listing *entities.Listing) error
	Delete(ctx context.Context, id string) error
}
