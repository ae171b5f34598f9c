package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/moderation"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

// ListingPage is one page of feed results plus pagination totals.
type ListingPage struct {
	Listings   []*entities.Listing
	Total      int64
	TotalPages int
	Page       int
	Limit      int
}

// UpdateInput is a full-field update: the complete listing input plus an
// optional direct availability override.
type UpdateInput struct {
	ListingInput
	IsAvailable *bool
}

// ListingService serves reads and enforces ownership over mutations and
// the availability lifecycle.
type ListingService struct {
	repo      repositories.ListingRepository
	validator *listingValidator
}

// NewListingService creates a new listing service.
func NewListingService(repo repositories.ListingRepository, engine *moderation.Engine) *ListingService {
	return &ListingService{
		repo:      repo,
		validator: newListingValidator(engine),
	}
}

// GetByID returns a single listing.
func (s *ListingService) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// Feed returns the public listing feed: available listings only, newest
// first, with pagination totals.
func (s *ListingService) Feed(ctx context.Context, filter repositories.ListingFilter) (*ListingPage, error) {
	filter.OwnerID = ""
	filter.OnlyAvailable = true
	return s.page(ctx, filter)
}

// OwnerListings returns every listing of the requesting owner, including
// unavailable ones.
func (s *ListingService) OwnerListings(ctx context.Context, requester entities.Identity, filter repositories.ListingFilter) (*ListingPage, error) {
	if err := requireOwnerRole(requester); err != nil {
		return nil, err
	}
	filter.OwnerID = requester.UserID
	filter.OnlyAvailable = false
	return s.page(ctx, filter)
}

func (s *ListingService) page(ctx context.Context, filter repositories.ListingFilter) (*ListingPage, error) {
	filter = filter.Normalize()

	listings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &ListingPage{
		Listings:   listings,
		Total:      total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update replaces the listing's fields after re-running the same
// validation and moderation as admission. Ownership, creation metadata,
// photos and the verification flag are preserved.
func (s *ListingService) Update(ctx context.Context, requester entities.Identity, id string, input UpdateInput) (*entities.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(listing, requester); err != nil {
		return nil, err
	}

	prepared := s.validator.prepare(input.ListingInput)
	if err := s.validator.validateStructure(prepared); err != nil {
		return nil, err
	}
	if err := s.validator.moderate(prepared); err != nil {
		return nil, err
	}

	listing.Title = prepared.Title
	listing.Description = prepared.Description
	listing.PropertyType = prepared.PropertyType
	listing.Location = prepared.Location
	listing.Rent = prepared.Rent
	listing.Features = prepared.Features
	listing.Amenities = prepared.Amenities
	listing.Contact = prepared.Contact
	listing.Terms = prepared.Terms
	if input.IsAvailable != nil {
		listing.IsAvailable = *input.IsAvailable
	}
	listing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// ToggleAvailability flips the availability flag. The toggle always
// succeeds once authorization passes.
func (s *ListingService) ToggleAvailability(ctx context.Context, requester entities.Identity, id string) (*entities.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(listing, requester); err != nil {
		return nil, err
	}

	listing.IsAvailable = !listing.IsAvailable
	listing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Delete removes a listing permanently.
func (s *ListingService) Delete(ctx context.Context, requester entities.Identity, id string) error {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeMutation(listing, requester); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, listing.ID); err != nil {
		return err
	}

	log.Info().
		Str("listing_id", listing.ID).
		Str("owner_id", listing.OwnerID).
		Msg("listing deleted")

	return nil
}

// authorizeMutation allows a mutation iff the requester is an owner
// account and owns the listing. NotFound is raised earlier, when the id
// fails to resolve.
func authorizeMutation(listing *entities.Listing, requester entities.Identity) error {
	switch requester.AccountType {
	case entities.AccountTypeOwner:
		if listing.OwnerID != requester.UserID {
			return apperrors.NewForbiddenError("you do not own this listing")
		}
		return nil
	case entities.AccountTypeTenant:
		return apperrors.NewForbiddenError("tenants cannot modify listings")
	default:
		return apperrors.NewForbiddenError("unknown account type")
	}
}

func requireOwnerRole(requester entities.Identity) error {
	switch requester.AccountType {
	case entities.AccountTypeOwner:
		return nil
	case entities.AccountTypeTenant:
		return apperrors.NewForbiddenError("owner account required")
	default:
		return apperrors.NewForbiddenError("owner account required")
	}
}
