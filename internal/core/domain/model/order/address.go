package order

import (
	"errors"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through the NewAddress factory method.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a value object holding structured postal data for shipping or
// billing. Line2 and region are optional; the remaining fields are required.
type Address struct {
	line1      string
	line2      string
	city       string
	region     string
	postalCode string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress creates a postal address with validation.
// line1, city, postalCode and country are required; line2 and region may be empty.
func NewAddress(line1, line2, city, region, postalCode, country string) (Address, error) {
	address := Address{
		line2:  line2,
		region: region,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setLine1(line1),
		address.setCity(city),
		address.setPostalCode(postalCode),
		address.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate ensures the Address instance was properly constructed through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line1 returns the first address line.
func (a Address) Line1() string {
	return a.line1
}

// Line2 returns the second address line, or "" if not set.
func (a Address) Line2() string {
	return a.line2
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// Region returns the state or province, or "" if not set.
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country code or name.
func (a Address) Country() string {
	return a.country
}

func (a *Address) setLine1(line1 string) error {
	if line1 == "" {
		return errs.NewValueIsRequiredError("line1")
	}
	a.line1 = line1
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = country
	return nil
}
