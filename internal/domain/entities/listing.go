package entities

import "time"

// PropertyType enumerates the kinds of rental property a listing can offer.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHostel    PropertyType = "hostel"
	PropertyTypeSublet    PropertyType = "sublet"
	PropertyTypeRoom      PropertyType = "room"
	PropertyTypeHouse     PropertyType = "house"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHostel, PropertyTypeSublet, PropertyTypeRoom, PropertyTypeHouse:
		return true
	}
	return false
}

// RentPeriod enumerates supported billing periods.
type RentPeriod string

const (
	RentPeriodMonthly RentPeriod = "monthly"
	RentPeriodDaily   RentPeriod = "daily"
)

// Valid reports whether p is a known rent period.
func (p RentPeriod) Valid() bool {
	return p == RentPeriodMonthly || p == RentPeriodDaily
}

// FurnishedState enumerates furnishing levels.
type FurnishedState string

const (
	Furnished     FurnishedState = "furnished"
	SemiFurnished FurnishedState = "semi-furnished"
	Unfurnished   FurnishedState = "unfurnished"
)

// Valid reports whether f is a known furnishing state.
func (f FurnishedState) Valid() bool {
	return f == Furnished || f == SemiFurnished || f == Unfurnished
}

// Location is the three-tier Bangladesh administrative hierarchy plus the
// street address. All parts are required on a listing.
type Location struct {
	Division string `json:"division"`
	District string `json:"district"`
	Area     string `json:"area"`
	Address  string `json:"address"`
}

// Rent describes the asking price of a listing.
type Rent struct {
	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
	Period   RentPeriod `json:"period"`
}

// Size describes the floor area of a property.
type Size struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"`
}

// Features describes the physical characteristics of a property.
type Features struct {
	Bedrooms  int            `json:"bedrooms,omitempty"`
	Bathrooms int            `json:"bathrooms,omitempty"`
	Size      Size           `json:"size,omitempty"`
	Furnished FurnishedState `json:"furnished"`
}

// Photo is a single uploaded listing image.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Contact is how a viewer reaches the owner. Contact happens out of band,
// so the phone number is part of the listing record itself.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Terms captures the rental conditions attached to a listing.
type Terms struct {
	MinimumStay       string  `json:"minimumStay,omitempty"`
	SecurityDeposit   float64 `json:"securityDeposit,omitempty"`
	UtilitiesIncluded bool    `json:"utilitiesIncluded"`
	PetsAllowed       bool    `json:"petsAllowed"`
	SmokingAllowed    bool    `json:"smokingAllowed"`
	AdditionalRules   string  `json:"additionalRules,omitempty"`
}

// Listing is a single property-for-rent record owned by one owner account.
type Listing struct {
	ID           string       `json:"id"`
	OwnerID      string       `json:"ownerId"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PropertyType PropertyType `json:"propertyType"`
	Location     Location     `json:"location"`
	Rent         Rent         `json:"rent"`
	Features     Features     `json:"features"`
	Amenities    []string     `json:"amenities"`
	Photos       []Photo      `json:"photos"`
	Contact      Contact      `json:"contact"`
	Terms        Terms        `json:"terms"`
	IsAvailable  bool         `json:"isAvailable"`
	IsVerified   bool         `json:"isVerified"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
