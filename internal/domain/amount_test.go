package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "One Thousand Five Hundred only", AmountInWords(1500))
	assert.Equal(t, "Seven only", AmountInWords(7))
	assert.Equal(t, "Zero only", AmountInWords(0))
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, m.Valid())
	}
	assert.False(t, PaymentMethod("CHEQUE").Valid())
	assert.False(t, PaymentMethod("upi").Valid())
}
