package services

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/moderation"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

// Field length bounds for listings.
const (
	maxTitleLength       = 100
	maxDescriptionLength = 2000
)

// ListingInput is the submitter-provided field set for creating or fully
// updating a listing.
type ListingInput struct {
	Title        string
	Description  string
	PropertyType entities.PropertyType
	Location     entities.Location
	Rent         entities.Rent
	Features     entities.Features
	Amenities    []string
	Contact      entities.Contact
	Terms        entities.Terms
}

// listingValidator runs structural validation and moderation over listing
// input. Shared between admission and full updates so edited text goes
// through the same screening as new text.
type listingValidator struct {
	engine    *moderation.Engine
	sanitizer *bluemonday.Policy
}

func newListingValidator(engine *moderation.Engine) *listingValidator {
	return &listingValidator{
		engine:    engine,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// prepare strips HTML from the free-text fields, applies field defaults
// and trims whitespace. Returns the cleaned copy.
func (v *listingValidator) prepare(in ListingInput) ListingInput {
	in.Title = v.cleanText(in.Title)
	in.Description = v.cleanText(in.Description)
	in.Location.Division = strings.TrimSpace(in.Location.Division)
	in.Location.District = strings.TrimSpace(in.Location.District)
	in.Location.Area = strings.TrimSpace(in.Location.Area)
	in.Location.Address = v.cleanText(in.Location.Address)
	in.Contact.Name = strings.TrimSpace(in.Contact.Name)
	in.Contact.Phone = strings.TrimSpace(in.Contact.Phone)
	in.Contact.Email = strings.TrimSpace(in.Contact.Email)

	if in.Rent.Currency == "" {
		in.Rent.Currency = "BDT"
	}
	if in.Rent.Period == "" {
		in.Rent.Period = entities.RentPeriodMonthly
	}
	if in.Features.Furnished == "" {
		in.Features.Furnished = entities.Unfurnished
	}
	if in.Features.Size.Value > 0 && in.Features.Size.Unit == "" {
		in.Features.Size.Unit = "sqft"
	}

	return in
}

// cleanText removes any HTML markup and collapses the escaping the
// sanitizer introduces, leaving plain text.
func (v *listingValidator) cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(v.sanitizer.Sanitize(s)))
}

// validateStructure checks the presence and shape of required fields.
func (v *listingValidator) validateStructure(in ListingInput) error {
	switch {
	case in.Title == "":
		return apperrors.NewInvalidInputError("title is required")
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		return apperrors.NewInvalidInputError("title cannot exceed 100 characters")
	case in.Description == "":
		return apperrors.NewInvalidInputError("description is required")
	case utf8.RuneCountInString(in.Description) > maxDescriptionLength:
		return apperrors.NewInvalidInputError("description cannot exceed 2000 characters")
	case !in.PropertyType.Valid():
		return apperrors.NewInvalidInputError("property type must be one of apartment, hostel, sublet, room, house")
	case in.Location.Division == "" || in.Location.District == "" || in.Location.Area == "" || in.Location.Address == "":
		return apperrors.NewInvalidInputError("location requires division, district, area and address")
	case in.Rent.Amount <= 0:
		return apperrors.NewInvalidInputError("rent amount is required")
	case !in.Rent.Period.Valid():
		return apperrors.NewInvalidInputError("rent period must be monthly or daily")
	case !in.Features.Furnished.Valid():
		return apperrors.NewInvalidInputError("furnished must be furnished, semi-furnished or unfurnished")
	case in.Features.Bedrooms < 0 || in.Features.Bathrooms < 0:
		return apperrors.NewInvalidInputError("bedrooms and bathrooms cannot be negative")
	case in.Contact.Name == "":
		return apperrors.NewInvalidInputError("contact name is required")
	case in.Contact.Phone == "":
		return apperrors.NewInvalidInputError("contact phone is required")
	}
	return nil
}

// moderate runs the rule engine over the text fields and the phone and
// price checks, in admission order, first failure wins.
func (v *listingValidator) moderate(in ListingInput) error {
	if result := v.engine.EvaluateText(in.Title); !result.Clean {
		return apperrors.NewContentRejectedError("title", result.Reason)
	}
	if result := v.engine.EvaluateText(in.Description); !result.Clean {
		return apperrors.NewContentRejectedError("description", result.Reason)
	}
	if result := v.engine.CheckPhone(in.Contact.Phone); !result.Clean {
		return apperrors.NewContentRejectedError("phone", result.Reason)
	}
	if result := v.engine.CheckRent(in.Rent.Amount); !result.Clean {
		return apperrors.NewContentRejectedError("price", result.Reason)
	}
	return nil
}
