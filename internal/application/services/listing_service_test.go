package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/moderation"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

func newListingFixture() (*ListingService, *stubListingRepository) {
	repo := newStubListingRepository()
	engine := moderation.NewEngine(moderation.DefaultConfig())
	return NewListingService(repo, engine), repo
}

func seedListing(repo *stubListingRepository, id, ownerID string) *entities.Listing {
	created := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	listing := &entities.Listing{
		ID:           id,
		OwnerID:      ownerID,
		Title:        "Cozy two bedroom flat in Dhanmondi",
		Description:  "Sunny apartment near the lake with a balcony.",
		PropertyType: entities.PropertyTypeApartment,
		Location: entities.Location{
			Division: "Dhaka",
			District: "Dhaka",
			Area:     "Dhanmondi",
			Address:  "House 12, Road 5",
		},
		Rent: entities.Rent{
			Amount:   15000,
			Currency: "BDT",
			Period:   entities.RentPeriodMonthly,
		},
		Features: entities.Features{
			Bedrooms:  2,
			Bathrooms: 1,
			Furnished: entities.Unfurnished,
		},
		Photos: []entities.Photo{
			{URL: "blob://uploads/1"},
		},
		Contact: entities.Contact{
			Name:  "Rahim Uddin",
			Phone: "01712345678",
		},
		IsAvailable: true,
		IsVerified:  true,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	stored := *listing
	repo.listings[id] = &stored
	return listing
}

func TestFeedPinsAvailabilityAndClearsOwner(t *testing.T) {
	svc, repo := newListingFixture()

	_, err := svc.Feed(context.Background(), repositories.ListingFilter{
		OwnerID:       "sneaky-owner",
		OnlyAvailable: false,
	})

	require.NoError(t, err)
	assert.True(t, repo.lastFilter.OnlyAvailable)
	assert.Empty(t, repo.lastFilter.OwnerID)
}

func TestFeedPagination(t *testing.T) {
	svc, repo := newListingFixture()
	repo.total = 25
	repo.listed = []*entities.Listing{seedListing(repo, "l-11", "owner-1")}

	page, err := svc.Feed(context.Background(), repositories.ListingFilter{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 10, repo.lastFilter.Offset())
}

func TestFeedNormalizesPagination(t *testing.T) {
	svc, repo := newListingFixture()

	_, err := svc.Feed(context.Background(), repositories.ListingFilter{Page: -3, Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, repositories.DefaultPage, repo.lastFilter.Page)
	assert.Equal(t, repositories.MaxLimit, repo.lastFilter.Limit)
}

func TestOwnerListingsRequiresOwnerRole(t *testing.T) {
	svc, _ := newListingFixture()

	_, err := svc.OwnerListings(context.Background(), tenantIdentity("tenant-1"), repositories.ListingFilter{})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
}

func TestOwnerListingsPinsOwner(t *testing.T) {
	svc, repo := newListingFixture()

	_, err := svc.OwnerListings(context.Background(), ownerIdentity("owner-1"), repositories.ListingFilter{
		OwnerID:       "someone-else",
		OnlyAvailable: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "owner-1", repo.lastFilter.OwnerID)
	assert.False(t, repo.lastFilter.OnlyAvailable, "owner dashboard includes unavailable listings")
}

func TestGetByID(t *testing.T) {
	svc, repo := newListingFixture()
	seedListing(repo, "l-1", "owner-1")

	listing, err := svc.GetByID(context.Background(), "l-1")
	require.NoError(t, err)
	assert.Equal(t, "l-1", listing.ID)

	_, err = svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestUpdateRequiresOwnership(t *testing.T) {
	tests := []struct {
		name      string
		requester entities.Identity
	}{
		{"different owner", ownerIdentity("owner-2")},
		{"tenant", tenantIdentity("tenant-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newListingFixture()
			seedListing(repo, "l-1", "owner-1")

			_, err := svc.Update(context.Background(), tt.requester, "l-1", UpdateInput{ListingInput: validListingInput()})

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

			stored, getErr := repo.GetByID(context.Background(), "l-1")
			require.NoError(t, getErr)
			assert.Equal(t, "Cozy two bedroom flat in Dhanmondi", stored.Title)
		})
	}
}

func TestUpdateMissingListing(t *testing.T) {
	svc, _ := newListingFixture()

	_, err := svc.Update(context.Background(), ownerIdentity("owner-1"), "missing", UpdateInput{ListingInput: validListingInput()})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestUpdateReScreensContent(t *testing.T) {
	svc, repo := newListingFixture()
	seedListing(repo, "l-1", "owner-1")

	input := validListingInput()
	input.Description = "Act now, wire transfer only!"

	_, err := svc.Update(context.Background(), ownerIdentity("owner-1"), "l-1", UpdateInput{ListingInput: input})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeContentRejected, appErr.Type)
	assert.Equal(t, "description", appErr.Field)

	stored, getErr := repo.GetByID(context.Background(), "l-1")
	require.NoError(t, getErr)
	assert.Equal(t, "Sunny apartment near the lake with a balcony.", stored.Description)
}

func TestUpdatePreservesOwnershipAndPhotos(t *testing.T) {
	svc, repo := newListingFixture()
	original := seedListing(repo, "l-1", "owner-1")

	input := validListingInput()
	input.Title = "Renovated two bedroom flat in Dhanmondi"
	unavailable := false

	updated, err := svc.Update(context.Background(), ownerIdentity("owner-1"), "l-1", UpdateInput{
		ListingInput: input,
		IsAvailable:  &unavailable,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renovated two bedroom flat in Dhanmondi", updated.Title)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.OwnerID, updated.OwnerID)
	assert.Equal(t, original.Photos, updated.Photos)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.IsVerified, "verification survives edits")
	assert.False(t, updated.IsAvailable)
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))

	stored, getErr := repo.GetByID(context.Background(), "l-1")
	require.NoError(t, getErr)
	assert.Equal(t, updated.Title, stored.Title)
}

func TestToggleAvailability(t *testing.T) {
	svc, repo := newListingFixture()
	original := seedListing(repo, "l-1", "owner-1")

	toggled, err := svc.ToggleAvailability(context.Background(), ownerIdentity("owner-1"), "l-1")
	require.NoError(t, err)
	assert.False(t, toggled.IsAvailable)
	assert.True(t, toggled.UpdatedAt.After(original.UpdatedAt))

	again, err := svc.ToggleAvailability(context.Background(), ownerIdentity("owner-1"), "l-1")
	require.NoError(t, err)
	assert.True(t, again.IsAvailable)
}

func TestToggleAvailabilityForbiddenForNonOwner(t *testing.T) {
	svc, repo := newListingFixture()
	seedListing(repo, "l-1", "owner-1")

	_, err := svc.ToggleAvailability(context.Background(), ownerIdentity("owner-2"), "l-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	stored, getErr := repo.GetByID(context.Background(), "l-1")
	require.NoError(t, getErr)
	assert.True(t, stored.IsAvailable)
}

func TestDelete(t *testing.T) {
	svc, repo := newListingFixture()
	seedListing(repo, "l-1", "owner-1")

	require.NoError(t, svc.Delete(context.Background(), ownerIdentity("owner-1"), "l-1"))

	_, err := repo.GetByID(context.Background(), "l-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDeleteForbiddenAndMissing(t *testing.T) {
	svc, repo := newListingFixture()
	seedListing(repo, "l-1", "owner-1")

	err := svc.Delete(context.Background(), tenantIdentity("tenant-1"), "l-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	assert.Contains(t, repo.listings, "l-1")

	err = svc.Delete(context.Background(), ownerIdentity("owner-1"), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
