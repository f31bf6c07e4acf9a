package address

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Shipping is the address shape used both for address-book entries and for
// the copy stored on an order. Required fields are validated in the order
// they are declared.
type Shipping struct {
	FirstName   string `json:"firstname" validate:"required"`
	LastName    string `json:"lastname" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Line1       string `json:"line1,omitempty"`
	Building    string `json:"building,omitempty"`
	Floor       string `json:"floor,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Subdistrict string `json:"subdistrict" validate:"required"`
	District    string `json:"district" validate:"required"`
	Province    string `json:"province" validate:"required"`
	PostalCode  string `json:"postalcode" validate:"required"`
}

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Shipping
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateInput is a partial update; empty fields keep their current value.
type UpdateInput struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Phone       string `json:"phone"`
	Line1       string `json:"line1"`
	Building    string `json:"building"`
	Floor       string `json:"floor"`
	Unit        string `json:"unit"`
	Subdistrict string `json:"subdistrict"`
	District    string `json:"district"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalcode"`
}

// Normalize trims surrounding whitespace from every field.
func Normalize(s Shipping) Shipping {
	return Shipping{
		FirstName:   strings.TrimSpace(s.FirstName),
		LastName:    strings.TrimSpace(s.LastName),
		Phone:       strings.TrimSpace(s.Phone),
		Line1:       strings.TrimSpace(s.Line1),
		Building:    strings.TrimSpace(s.Building),
		Floor:       strings.TrimSpace(s.Floor),
		Unit:        strings.TrimSpace(s.Unit),
		Subdistrict: strings.TrimSpace(s.Subdistrict),
		District:    strings.TrimSpace(s.District),
		Province:    strings.TrimSpace(s.Province),
		PostalCode:  strings.TrimSpace(s.PostalCode),
	}
}

func (in UpdateInput) apply(s Shipping) Shipping {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&s.FirstName, in.FirstName)
	set(&s.LastName, in.LastName)
	set(&s.Phone, in.Phone)
	set(&s.Line1, in.Line1)
	set(&s.Building, in.Building)
	set(&s.Floor, in.Floor)
	set(&s.Unit, in.Unit)
	set(&s.Subdistrict, in.Subdistrict)
	set(&s.District, in.District)
	set(&s.Province, in.Province)
	set(&s.PostalCode, in.PostalCode)
	return s
}
