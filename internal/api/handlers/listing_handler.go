package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/rentnest/rentnest/backend/internal/api/middleware"
	"github.com/rentnest/rentnest/backend/internal/application/services"
	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

// maxMultipartMemory bounds the in-memory portion of a multipart parse;
// larger file parts spill to disk.
const maxMultipartMemory = 32 << 20

// AdmissionService defines the listing admission operations used by the handler.
type AdmissionService interface {
	SubmitListing(ctx context.Context, submitter entities.Identity, input services.ListingInput, images []services.ImageUpload) (*entities.Listing, error)
}

// ListingService defines the listing read and lifecycle operations used by the handler.
type ListingService interface {
	GetByID(ctx context.Context, id string) (*entities.Listing, error)
	Feed(ctx context.Context, filter repositories.ListingFilter) (*services.ListingPage, error)
	OwnerListings(ctx context.Context, requester entities.Identity, filter repositories.ListingFilter) (*services.ListingPage, error)
	Update(ctx context.Context, requester entities.Identity, id string, input services.UpdateInput) (*entities.Listing, error)
	ToggleAvailability(ctx context.Context, requester entities.Identity, id string) (*entities.Listing, error)
	Delete(ctx context.Context, requester entities.Identity, id string) error
}

// ListingHandler handles listing-related HTTP requests.
type ListingHandler struct {
	admission AdmissionService
	listings  ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(admission AdmissionService, listings ListingService) *ListingHandler {
	return &ListingHandler{
		admission: admission,
		listings:  listings,
	}
}

// listingRequest mirrors the multipart form fields of a listing
// submission. The structured fields arrive as JSON-encoded strings
// alongside the scalar ones.
type listingRequest struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	PropertyType string            `json:"propertyType"`
	Location     entities.Location `json:"location"`
	Rent         entities.Rent     `json:"rent"`
	Features     entities.Features `json:"features"`
	Amenities    []string          `json:"amenities"`
	Contact      entities.Contact  `json:"contact"`
	Terms        entities.Terms    `json:"terms"`
	IsAvailable  *bool             `json:"isAvailable"`
}

func (req listingRequest) toInput() services.ListingInput {
	return services.ListingInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: entities.PropertyType(req.PropertyType),
		Location:     req.Location,
		Rent:         req.Rent,
		Features:     req.Features,
		Amenities:    req.Amenities,
		Contact:      req.Contact,
		Terms:        req.Terms,
	}
}

// CreateListing handles POST /api/listings
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req, err := parseListingForm(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	images, err := readImages(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "could not read uploaded images")
		return
	}

	listing, err := h.admission.SubmitListing(r.Context(), identity, req.toInput(), images)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, listing)
}

// ListListings handles GET /api/listings
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	page, err := h.listings.Feed(r.Context(), parseListingFilter(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithPage(w, page)
}

// MyListings handles GET /api/listings/my-listings
func (h *ListingHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page, err := h.listings.OwnerListings(r.Context(), identity, parseListingFilter(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithPage(w, page)
}

// GetListing handles GET /api/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	listing, err := h.listings.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, listing)
}

// UpdateListing handles PUT /api/listings/{id}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	listing, err := h.listings.Update(r.Context(), identity, id, services.UpdateInput{
		ListingInput: req.toInput(),
		IsAvailable:  req.IsAvailable,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, listing)
}

// ToggleAvailability handles PATCH /api/listings/{id}/availability
func (h *ListingHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	listing, err := h.listings.ToggleAvailability(r.Context(), identity, id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	message := "listing marked as unavailable"
	if listing.IsAvailable {
		message = "listing marked as available"
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"listing": listing,
	})
}

// DeleteListing handles DELETE /api/listings/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	if err := h.listings.Delete(r.Context(), identity, id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "listing deleted successfully",
	})
}

// parseListingForm decodes the scalar and JSON-encoded multipart fields.
func parseListingForm(r *http.Request) (listingRequest, error) {
	req := listingRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		PropertyType: r.FormValue("propertyType"),
	}

	jsonFields := []struct {
		name string
		dst  interface{}
	}{
		{"location", &req.Location},
		{"rent", &req.Rent},
		{"features", &req.Features},
		{"amenities", &req.Amenities},
		{"contact", &req.Contact},
		{"terms", &req.Terms},
	}

	for _, field := range jsonFields {
		raw := r.FormValue(field.name)
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), field.dst); err != nil {
			return listingRequest{}, errors.New("invalid " + field.name + " payload")
		}
	}

	return req, nil
}

// readImages drains the uploaded image parts into memory. The admission
// workflow enforces count, size and type limits.
func readImages(r *http.Request) ([]services.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["images"]
	images := make([]services.ImageUpload, 0, len(files))

	for _, header := range files {
		img, err := readImagePart(header)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, nil
}

func readImagePart(header *multipart.FileHeader) (services.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return services.ImageUpload{}, err
	}
	defer file.Close()

	// read one byte past the limit so oversized files are detected
	// without buffering arbitrarily large uploads
	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageBytes+1))
	if err != nil {
		return services.ImageUpload{}, err
	}

	return services.ImageUpload{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// parseListingFilter builds a listing filter from query parameters.
// Malformed numeric values are ignored rather than rejected.
func parseListingFilter(r *http.Request) repositories.ListingFilter {
	query := r.URL.Query()

	filter := repositories.ListingFilter{
		PropertyType: entities.PropertyType(query.Get("propertyType")),
		Division:     query.Get("division"),
		District:     query.Get("district"),
		Area:         query.Get("area"),
		Furnished:    entities.FurnishedState(query.Get("furnished")),
		Search:       query.Get("search"),
	}

	if v, err := strconv.ParseFloat(query.Get("minRent"), 64); err == nil {
		filter.MinRent = &v
	}
	if v, err := strconv.ParseFloat(query.Get("maxRent"), 64); err == nil {
		filter.MaxRent = &v
	}
	if v, err := strconv.Atoi(query.Get("bedrooms")); err == nil {
		filter.Bedrooms = &v
	}
	if v, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = v
	}

	return filter
}

func respondWithPage(w http.ResponseWriter, page *services.ListingPage) {
	listings := page.Listings
	if listings == nil {
		listings = []*entities.Listing{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"listings":    listings,
		"count":       len(listings),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.Page,
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status.
// Internal failures are logged and masked.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeUnauthenticated:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorTypeForbidden:
		respondWithError(w, http.StatusForbidden, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeInvalidInput, apperrors.ErrorTypeInvalidImage:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeContentRejected:
		respondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error": appErr.Message,
			"field": appErr.Field,
		})
	case apperrors.ErrorTypeUploadFailed:
		respondWithError(w, http.StatusBadGateway, appErr.Message)
	default:
		log.Error().Err(appErr).Msg("internal error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
