package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentnest/rentnest/backend/internal/adapters/blob"
	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/moderation"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

func newAdmissionFixture() (*AdmissionService, *stubListingRepository, *blob.MemoryStore) {
	repo := newStubListingRepository()
	blobs := blob.NewMemoryStore()
	engine := moderation.NewEngine(moderation.DefaultConfig())
	return NewAdmissionService(repo, blobs, engine), repo, blobs
}

func jpegUpload(size int) ImageUpload {
	return ImageUpload{Data: bytes.Repeat([]byte{0xFF}, size), ContentType: "image/jpeg"}
}

func TestSubmitListingRejectsTenants(t *testing.T) {
	svc, repo, _ := newAdmissionFixture()

	_, err := svc.SubmitListing(context.Background(), tenantIdentity("tenant-1"), validListingInput(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	assert.Empty(t, repo.listings)
}

func TestSubmitListingValidatesStructure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ListingInput)
	}{
		{"missing title", func(in *ListingInput) { in.Title = "" }},
		{"whitespace title", func(in *ListingInput) { in.Title = "   " }},
		{"missing description", func(in *ListingInput) { in.Description = "" }},
		{"unknown property type", func(in *ListingInput) { in.PropertyType = "castle" }},
		{"missing district", func(in *ListingInput) { in.Location.District = "" }},
		{"zero rent", func(in *ListingInput) { in.Rent.Amount = 0 }},
		{"negative bedrooms", func(in *ListingInput) { in.Features.Bedrooms = -1 }},
		{"missing contact phone", func(in *ListingInput) { in.Contact.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newAdmissionFixture()
			input := validListingInput()
			tt.mutate(&input)

			_, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), input, nil)

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidInput))
			assert.Empty(t, repo.listings)
		})
	}
}

func TestSubmitListingModeratesContent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ListingInput)
		field  string
	}{
		{"profanity in title", func(in *ListingInput) { in.Title = "This damn flat is for rent" }, "title"},
		{"scam phrase in description", func(in *ListingInput) { in.Description = "Wire transfer only, no visits before payment." }, "description"},
		{"repeated-digit phone", func(in *ListingInput) { in.Contact.Phone = "01111111111" }, "phone"},
		{"malformed phone", func(in *ListingInput) { in.Contact.Phone = "09876543210" }, "phone"},
		{"rent below floor", func(in *ListingInput) { in.Rent.Amount = 500 }, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newAdmissionFixture()
			input := validListingInput()
			tt.mutate(&input)

			_, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), input, nil)

			require.Error(t, err)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorTypeContentRejected, appErr.Type)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Empty(t, repo.listings)
		})
	}
}

func TestSubmitListingImagePolicy(t *testing.T) {
	tests := []struct {
		name   string
		images []ImageUpload
	}{
		{"too many images", []ImageUpload{
			jpegUpload(10), jpegUpload(10), jpegUpload(10),
			jpegUpload(10), jpegUpload(10), jpegUpload(10),
		}},
		{"empty image", []ImageUpload{{Data: nil, ContentType: "image/jpeg"}}},
		{"oversized image", []ImageUpload{jpegUpload(MaxImageBytes + 1)}},
		{"unsupported type", []ImageUpload{{Data: []byte("%PDF-1.4"), ContentType: "application/pdf"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, blobs := newAdmissionFixture()

			_, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), validListingInput(), tt.images)

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidImage))
			assert.Zero(t, blobs.Len(), "no upload may start when the policy rejects the batch")
			assert.Empty(t, repo.listings)
		})
	}
}

func TestSubmitListingCleansUpAbortedUploads(t *testing.T) {
	repo := newStubListingRepository()
	blobs := &failingBlobStore{failAt: 3}
	engine := moderation.NewEngine(moderation.DefaultConfig())
	svc := NewAdmissionService(repo, blobs, engine)

	images := []ImageUpload{jpegUpload(10), jpegUpload(10), jpegUpload(10)}
	_, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), validListingInput(), images)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUploadFailed))
	assert.Equal(t, []string{"blob://uploads/1", "blob://uploads/2"}, blobs.deleted)
	assert.Empty(t, repo.listings)
}

func TestSubmitListingCleansUpOnPersistFailure(t *testing.T) {
	svc, repo, blobs := newAdmissionFixture()
	repo.createErr = apperrors.NewInternalError("database unavailable", nil)

	_, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), validListingInput(), []ImageUpload{jpegUpload(10)})

	require.Error(t, err)
	assert.Zero(t, blobs.Len(), "orphaned blobs must be removed when persistence fails")
}

func TestSubmitListingSuccess(t *testing.T) {
	svc, repo, blobs := newAdmissionFixture()
	images := []ImageUpload{jpegUpload(10), jpegUpload(20)}

	listing, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), validListingInput(), images)

	require.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, "owner-1", listing.OwnerID)
	assert.True(t, listing.IsAvailable)
	assert.False(t, listing.IsVerified)
	assert.Len(t, listing.Photos, 2)
	assert.Equal(t, 2, blobs.Len())
	assert.False(t, listing.CreatedAt.IsZero())
	assert.Equal(t, listing.CreatedAt, listing.UpdatedAt)

	stored, err := repo.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.Title, stored.Title)
}

func TestSubmitListingStripsMarkup(t *testing.T) {
	svc, _, _ := newAdmissionFixture()
	input := validListingInput()
	input.Title = "<b>Cozy flat</b> in Dhanmondi"
	input.Description = "<script>alert(1)</script>Sunny apartment near the lake."

	listing, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), input, nil)

	require.NoError(t, err)
	assert.Equal(t, "Cozy flat in Dhanmondi", listing.Title)
	assert.Equal(t, "Sunny apartment near the lake.", listing.Description)
}

func TestSubmitListingAppliesDefaults(t *testing.T) {
	svc, _, _ := newAdmissionFixture()
	input := validListingInput()
	input.Rent.Currency = ""
	input.Rent.Period = ""
	input.Features.Furnished = ""
	input.Features.Size = entities.Size{Value: 1200}

	listing, err := svc.SubmitListing(context.Background(), ownerIdentity("owner-1"), input, nil)

	require.NoError(t, err)
	assert.Equal(t, "BDT", listing.Rent.Currency)
	assert.Equal(t, entities.RentPeriodMonthly, listing.Rent.Period)
	assert.Equal(t, entities.Unfurnished, listing.Features.Furnished)
	assert.Equal(t, "sqft", listing.Features.Size.Unit)
}
