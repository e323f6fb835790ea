package domain

import "time"

type Address struct {
	ID      string
	Street  string
	City    string
	Country string
	ZipCode string
}

type Amenity struct {
	ID       int64
	Name     string
	IconPath string
}

type Property struct {
	ID          string
	HostID      string
	Title       string
	Description string
	PriceCents  int64
	MaxGuests   int
	Bedrooms    int
	Bathrooms   int
	Address     Address
	Amenities   []string
	Active      bool
	CreatedAt   time.Time
}

// PropertyFilter narrows a catalog search. Zero values disable a criterion;
// CheckIn and CheckOut are either both set or both nil.
type PropertyFilter struct {
	City      string
	MinGuests int
	CheckIn   *time.Time
	CheckOut  *time.Time
}
