package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	"github.com/rentnest/rentnest/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

const listingsTable = "listings"

var listingColumns = []any{
	"id", "owner_id", "title", "description", "property_type",
	"division", "district", "area", "address",
	"rent_amount", "rent_currency", "rent_period",
	"bedrooms", "bathrooms", "size_value", "size_unit", "furnished",
	"amenities", "photos",
	"contact_name", "contact_phone", "contact_email",
	"minimum_stay", "security_deposit", "utilities_included",
	"pets_allowed", "smoking_allowed", "additional_rules",
	"is_available", "is_verified", "created_at", "updated_at",
}

// ListingAdapter implements the ListingRepository interface on Postgres.
type ListingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewListingAdapter creates a new listing adapter
func NewListingAdapter(client *postgres.Client) repositories.ListingRepository {
	return &ListingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new listing
func (a *ListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	record, err := listingRecord(listing)
	if err != nil {
		return apperrors.NewInternalError("failed to encode listing", err)
	}

	query, args, err := a.db.Insert(listingsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build listing insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create listing", err)
	}

	return nil
}

// GetByID retrieves a listing by ID
func (a *ListingAdapter) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	query, args, err := a.db.From(listingsTable).
		Select(listingColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build listing select query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get listing", err)
	}

	return listing, nil
}

// List retrieves listings matching the filter, newest first, paginated.
func (a *ListingAdapter) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, error) {
	filter = filter.Normalize()

	query, args, err := a.db.From(listingsTable).
		Select(listingColumns...).
		Where(filterConditions(filter)...).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(filter.Limit)).
		Offset(uint(filter.Offset())).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build listing list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list listings", err)
	}
	defer rows.Close()

	listings := []*entities.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan listing", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating listings", err)
	}

	return listings, nil
}

// Count returns the number of listings matching the filter, ignoring
// pagination.
func (a *ListingAdapter) Count(ctx context.Context, filter repositories.ListingFilter) (int64, error) {
	query, args, err := a.db.From(listingsTable).
		Select(goqu.COUNT("*")).
		Where(filterConditions(filter)...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build listing count query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count listings", err)
	}

	return count, nil
}

// Update replaces the mutable fields of a listing
func (a *ListingAdapter) Update(ctx context.Context, listing *entities.Listing) error {
	record, err := listingRecord(listing)
	if err != nil {
		return apperrors.NewInternalError("failed to encode listing", err)
	}
	// id and immutable creation metadata never change
	delete(record, "id")
	delete(record, "owner_id")
	delete(record, "created_at")

	query, args, err := a.db.Update(listingsTable).
		Set(record).
		Where(goqu.C("id").Eq(listing.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build listing update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update listing", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", listing.ID))
	}

	return nil
}

// Delete removes a listing permanently. Deletion is terminal; there is no
// soft-delete.
func (a *ListingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete(listingsTable).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build listing delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete listing", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", id))
	}

	return nil
}

// listingRecord flattens a listing into a goqu record. Amenities and
// photos are stored as JSONB documents.
func listingRecord(listing *entities.Listing) (goqu.Record, error) {
	amenities := listing.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, err := json.Marshal(amenities)
	if err != nil {
		return nil, err
	}

	photos := listing.Photos
	if photos == nil {
		photos = []entities.Photo{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return nil, err
	}

	return goqu.Record{
		"id":                 listing.ID,
		"owner_id":           listing.OwnerID,
		"title":              listing.Title,
		"description":        listing.Description,
		"property_type":      string(listing.PropertyType),
		"division":           listing.Location.Division,
		"district":           listing.Location.District,
		"area":               listing.Location.Area,
		"address":            listing.Location.Address,
		"rent_amount":        listing.Rent.Amount,
		"rent_currency":      listing.Rent.Currency,
		"rent_period":        string(listing.Rent.Period),
		"bedrooms":           listing.Features.Bedrooms,
		"bathrooms":          listing.Features.Bathrooms,
		"size_value":         listing.Features.Size.Value,
		"size_unit":          listing.Features.Size.Unit,
		"furnished":          string(listing.Features.Furnished),
		"amenities":          string(amenitiesJSON),
		"photos":             string(photosJSON),
		"contact_name":       listing.Contact.Name,
		"contact_phone":      listing.Contact.Phone,
		"contact_email":      sql.NullString{String: listing.Contact.Email, Valid: listing.Contact.Email != ""},
		"minimum_stay":       sql.NullString{String: listing.Terms.MinimumStay, Valid: listing.Terms.MinimumStay != ""},
		"security_deposit":   listing.Terms.SecurityDeposit,
		"utilities_included": listing.Terms.UtilitiesIncluded,
		"pets_allowed":       listing.Terms.PetsAllowed,
		"smoking_allowed":    listing.Terms.SmokingAllowed,
		"additional_rules":   sql.NullString{String: listing.Terms.AdditionalRules, Valid: listing.Terms.AdditionalRules != ""},
		"is_available":       listing.IsAvailable,
		"is_verified":        listing.IsVerified,
		"created_at":         listing.CreatedAt,
		"updated_at":         listing.UpdatedAt,
	}, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*entities.Listing, error) {
	var (
		listing       entities.Listing
		amenitiesJSON []byte
		photosJSON    []byte
		contactEmail  sql.NullString
		minimumStay   sql.NullString
		extraRules    sql.NullString
	)

	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Description,
		&listing.PropertyType,
		&listing.Location.Division,
		&listing.Location.District,
		&listing.Location.Area,
		&listing.Location.Address,
		&listing.Rent.Amount,
		&listing.Rent.Currency,
		&listing.Rent.Period,
		&listing.Features.Bedrooms,
		&listing.Features.Bathrooms,
		&listing.Features.Size.Value,
		&listing.Features.Size.Unit,
		&listing.Features.Furnished,
		&amenitiesJSON,
		&photosJSON,
		&listing.Contact.Name,
		&listing.Contact.Phone,
		&contactEmail,
		&minimumStay,
		&listing.Terms.SecurityDeposit,
		&listing.Terms.UtilitiesIncluded,
		&listing.Terms.PetsAllowed,
		&listing.Terms.SmokingAllowed,
		&extraRules,
		&listing.IsAvailable,
		&listing.IsVerified,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.Contact.Email = contactEmail.String
	listing.Terms.MinimumStay = minimumStay.String
	listing.Terms.AdditionalRules = extraRules.String

	if err := json.Unmarshal(amenitiesJSON, &listing.Amenities); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photosJSON, &listing.Photos); err != nil {
		return nil, err
	}

	return &listing, nil
}
