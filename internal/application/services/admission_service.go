package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/moderation"
	"github.com/rentnest/rentnest/backend/internal/domain/providers"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

// Image policy applied at admission time.
const (
	MaxListingImages = 5
	MaxImageBytes    = 5 << 20 // 5 MiB
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// ImageUpload is one submitted image: raw bytes plus the declared media type.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// AdmissionService drives the listing admission workflow: role gate,
// structural validation, moderation, image policy, blob uploads and
// persistence, short-circuiting on the first failure.
type AdmissionService struct {
	repo      repositories.ListingRepository
	blobs     providers.BlobStore
	validator *listingValidator
}

// NewAdmissionService creates a new admission service.
func NewAdmissionService(repo repositories.ListingRepository, blobs providers.BlobStore, engine *moderation.Engine) *AdmissionService {
	return &AdmissionService{
		repo:      repo,
		blobs:     blobs,
		validator: newListingValidator(engine),
	}
}

// SubmitListing admits a new listing for the submitting owner. On success
// the persisted listing is returned; every failure names the specific
// field or policy that rejected the submission.
func (s *AdmissionService) SubmitListing(ctx context.Context, submitter entities.Identity, input ListingInput, images []ImageUpload) (*entities.Listing, error) {
	switch submitter.AccountType {
	case entities.AccountTypeOwner:
		// only owners may list property
	case entities.AccountTypeTenant:
		return nil, apperrors.NewForbiddenError("only owners can create listings")
	default:
		return nil, apperrors.NewForbiddenError("only owners can create listings")
	}

	input = s.validator.prepare(input)

	if err := s.validator.validateStructure(input); err != nil {
		return nil, err
	}
	if err := s.validator.moderate(input); err != nil {
		log.Debug().Err(err).Str("owner_id", submitter.UserID).Msg("listing submission rejected")
		return nil, err
	}
	if err := validateImages(images); err != nil {
		return nil, err
	}

	photos, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &entities.Listing{
		ID:           uuid.New().String(),
		OwnerID:      submitter.UserID,
		Title:        input.Title,
		Description:  input.Description,
		PropertyType: input.PropertyType,
		Location:     input.Location,
		Rent:         input.Rent,
		Features:     input.Features,
		Amenities:    input.Amenities,
		Photos:       photos,
		Contact:      input.Contact,
		Terms:        input.Terms,
		IsAvailable:  true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		// the listing never existed; drop the photos it would have owned
		s.cleanupUploads(ctx, photos)
		return nil, err
	}

	log.Info().
		Str("listing_id", listing.ID).
		Str("owner_id", listing.OwnerID).
		Msg("listing admitted")

	return listing, nil
}

// validateImages enforces the image count/size/type policy before any
// upload is attempted.
func validateImages(images []ImageUpload) error {
	if len(images) > MaxListingImages {
		return apperrors.NewInvalidImageError(fmt.Sprintf("at most %d images are allowed", MaxListingImages))
	}

	for _, img := range images {
		if len(img.Data) == 0 {
			return apperrors.NewInvalidImageError("empty or corrupted image file")
		}
		if len(img.Data) > MaxImageBytes {
			return apperrors.NewInvalidImageError("image size must be less than 5MB")
		}
		if _, ok := allowedImageTypes[imageMediaType(img)]; !ok {
			return apperrors.NewInvalidImageError("only JPG, PNG and WebP images are allowed")
		}
	}

	return nil
}

func imageMediaType(img ImageUpload) string {
	if img.ContentType != "" {
		return img.ContentType
	}
	return http.DetectContentType(img.Data)
}

// uploadImages uploads sequentially; a failure aborts the submission and
// triggers best-effort cleanup of blobs uploaded so far, so no orphaned
// URL is referenced anywhere.
func (s *AdmissionService) uploadImages(ctx context.Context, images []ImageUpload) ([]entities.Photo, error) {
	photos := make([]entities.Photo, 0, len(images))

	for _, img := range images {
		url, err := s.blobs.Upload(ctx, img.Data, imageMediaType(img))
		if err != nil {
			s.cleanupUploads(ctx, photos)
			return nil, apperrors.NewUploadFailedError("failed to upload image", err)
		}
		photos = append(photos, entities.Photo{URL: url, Caption: ""})
	}

	return photos, nil
}

func (s *AdmissionService) cleanupUploads(ctx context.Context, photos []entities.Photo) {
	for _, photo := range photos {
		if err := s.blobs.Delete(ctx, photo.URL); err != nil {
			log.Warn().Err(err).Str("url", photo.URL).Msg("failed to clean up orphaned blob")
		}
	}
}
