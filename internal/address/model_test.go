package address

import (
	"testing"

	"gadme-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() Shipping {
	return Shipping{
		FirstName:   "Somchai",
		LastName:    "Jaidee",
		Phone:       "0812345678",
		Subdistrict: "Lumphini",
		District:    "Pathum Wan",
		Province:    "Bangkok",
		PostalCode:  "10330",
	}
}

func TestValidate(t *testing.T) {
	t.Run("Complete address", func(t *testing.T) {
		assert.NoError(t, Validate(validShipping()))
	})

	t.Run("Reports first missing field in order", func(t *testing.T) {
		s := validShipping()
		s.Phone = ""
		s.Province = ""

		err := Validate(s)

		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.ErrorIs(t, err, ErrAddressInvalid)
		assert.Equal(t, apperr.KindInvalidArgument, appErr.Kind)
		assert.Equal(t, "Missing field: phone", appErr.Message)
		assert.Equal(t, "phone", appErr.Details["field"])
	})

	t.Run("Empty address names firstname", func(t *testing.T) {
		err := Validate(Shipping{})
		assert.ErrorContains(t, err, "Missing field: firstname")
	})

	t.Run("Whitespace only is missing after normalize", func(t *testing.T) {
		s := validShipping()
		s.PostalCode = "   "

		err := Validate(Normalize(s))
		assert.ErrorContains(t, err, "Missing field: postalcode")
	})
}

func TestUpdateInput_Apply(t *testing.T) {
	s := validShipping()
	s.Floor = "3"

	got := UpdateInput{Phone: " 0899999999 ", Unit: "12A"}.apply(s)

	assert.Equal(t, "0899999999", got.Phone)
	assert.Equal(t, "12A", got.Unit)
	assert.Equal(t, "3", got.Floor)
	assert.Equal(t, s.FirstName, got.FirstName)
}
