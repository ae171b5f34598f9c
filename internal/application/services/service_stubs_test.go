package services

import (
	"context"
	"fmt"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

// stubListingRepository is an in-memory repository with injectable
// failures and filter capture for asserting query pinning.
type stubListingRepository struct {
	listings map[string]*entities.Listing

	listed     []*entities.Listing
	total      int64
	lastFilter repositories.ListingFilter

	createErr error
	updateErr error
}

func newStubListingRepository() *stubListingRepository {
	return &stubListingRepository{
		listings: make(map[string]*entities.Listing),
	}
}

func (r *stubListingRepository) Create(ctx context.Context, listing *entities.Listing) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *stubListingRepository) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("listing not found")
	}
	copied := *listing
	return &copied, nil
}

func (r *stubListingRepository) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, error) {
	r.lastFilter = filter
	return r.listed, nil
}

func (r *stubListingRepository) Count(ctx context.Context, filter repositories.ListingFilter) (int64, error) {
	return r.total, nil
}

func (r *stubListingRepository) Update(ctx context.Context, listing *entities.Listing) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.listings[listing.ID]; !ok {
		return apperrors.NewNotFoundError("listing not found")
	}
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *stubListingRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return apperrors.NewNotFoundError("listing not found")
	}
	delete(r.listings, id)
	return nil
}

// failingBlobStore succeeds until the upload numbered failAt, which
// fails. Deletes are recorded for cleanup assertions.
type failingBlobStore struct {
	failAt  int
	uploads int
	deleted []string
}

func (s *failingBlobStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	s.uploads++
	if s.uploads == s.failAt {
		return "", fmt.Errorf("blob backend unavailable")
	}
	return fmt.Sprintf("blob://uploads/%d", s.uploads), nil
}

func (s *failingBlobStore) Delete(ctx context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

func ownerIdentity(id string) entities.Identity {
	return entities.Identity{UserID: id, AccountType: entities.AccountTypeOwner}
}

func tenantIdentity(id string) entities.Identity {
	return entities.Identity{UserID: id, AccountType: entities.AccountTypeTenant}
}

func validListingInput() ListingInput {
	return ListingInput{
		Title:        "Cozy two bedroom flat in Dhanmondi",
		Description:  "Sunny south-facing apartment near the lake with a balcony and fresh air.",
		PropertyType: entities.PropertyTypeApartment,
		Location: entities.Location{
			Division: "Dhaka",
			District: "Dhaka",
			Area:     "Dhanmondi",
			Address:  "House 12, Road 5",
		},
		Rent: entities.Rent{
			Amount: 15000,
		},
		Features: entities.Features{
			Bedrooms:  2,
			Bathrooms: 1,
		},
		Amenities: []string{"lift", "generator"},
		Contact: entities.Contact{
			Name:  "Rahim Uddin",
			Phone: "01712345678",
		},
	}
}
