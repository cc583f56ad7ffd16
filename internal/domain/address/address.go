package address

import (
	"strings"

	"github.com/meatshop/backend/internal/domain/shared"
)

// Address is a saved delivery address. An address belongs to exactly one
// user, and for a given user at most one address carries IsDefault.
type Address struct {
	ID            string `json:"id" bson:"_id,omitempty"`
	UserID        string `json:"userId" bson:"user_id"`
	FullName      string `json:"fullName" bson:"full_name"`
	StreetAddress string `json:"streetAddress" bson:"street_address"`
	Apartment     string `json:"apartment,omitempty" bson:"apartment,omitempty"`
	City          string `json:"city" bson:"city"`
	State         string `json:"state" bson:"state"`
	PostalCode    string `json:"postalCode" bson:"postal_code"`
	Country       string `json:"country" bson:"country"`
	PhoneNumber   string `json:"phoneNumber" bson:"phone_number"`
	IsDefault     bool   `json:"isDefault" bson:"is_default"`
}

// Fields carries the caller-editable fields of an address. IsDefault is a
// pointer so that an update can leave the default flag untouched.
type Fields struct {
	FullName      string
	StreetAddress string
	Apartment     string
	City          string
	State         string
	PostalCode    string
	Country       string
	PhoneNumber   string
	IsDefault     *bool
}

// Validate checks the required address fields and returns a field-keyed
// validation error, mirroring how the address form reports problems.
func (f Fields) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(f.FullName) == "" {
		fields["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(f.StreetAddress) == "" {
		fields["streetAddress"] = "Street address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		fields["city"] = "City is required"
	}
	if strings.TrimSpace(f.PostalCode) == "" {
		fields["postalCode"] = "Postal code is required"
	}
	if strings.TrimSpace(f.Country) == "" {
		fields["country"] = "Country is required"
	}
	if strings.TrimSpace(f.PhoneNumber) == "" {
		fields["phoneNumber"] = "Phone number is required"
	}
	if len(fields) > 0 {
		return shared.NewValidationError(fields)
	}
	return nil
}

// Apply writes the editable fields onto an address. The default flag only
// changes when the request explicitly carries it.
func (a *Address) Apply(f Fields) {
	a.FullName = f.FullName
	a.StreetAddress = f.StreetAddress
	a.Apartment = f.Apartment
	a.City = f.City
	a.State = f.State
	a.PostalCode = f.PostalCode
	a.Country = f.Country
	a.PhoneNumber = f.PhoneNumber
	if f.IsDefault != nil {
		a.IsDefault = *f.IsDefault
	}
}
