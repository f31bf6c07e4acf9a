package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPaid, StatusPending, true},
		{StatusPending, StatusCancelled, true},
		{StatusPaid, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestNormalizePayment(t *testing.T) {
	assert.Equal(t, PaymentCreditCard, NormalizePaymentMethod(""))
	assert.Equal(t, PaymentCreditCard, NormalizePaymentMethod("paypal"))
	assert.Equal(t, PaymentCOD, NormalizePaymentMethod("cod"))
	assert.Equal(t, PaymentPending, NormalizePaymentStatus("unknown"))
	assert.Equal(t, PaymentPaid, NormalizePaymentStatus("paid"))

	_, err := ParsePaymentMethod("paypal")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestStatusForPayment(t *testing.T) {
	assert.Equal(t, StatusPaid, StatusForPayment(PaymentPaid))
	assert.Equal(t, StatusPending, StatusForPayment(PaymentPending))
	assert.Equal(t, StatusPending, StatusForPayment(PaymentFailed))
}

func TestPricing_Totals(t *testing.T) {
	t.Run("No charges", func(t *testing.T) {
		fee, discount, total := Pricing{}.Totals(450)
		assert.Equal(t, []int64{0, 0, 450}, []int64{fee, discount, total})
	})

	t.Run("Fee and discount", func(t *testing.T) {
		fee, discount, total := Pricing{ShippingFee: 50, FlatDiscount: 100}.Totals(450)
		assert.Equal(t, []int64{50, 100, 400}, []int64{fee, discount, total})
	})

	t.Run("Discount capped at zero total", func(t *testing.T) {
		_, discount, total := Pricing{ShippingFee: 50, FlatDiscount: 1000}.Totals(450)
		assert.Equal(t, int64(500), discount)
		assert.Equal(t, int64(0), total)
	})
}
