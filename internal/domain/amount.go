package domain

import (
	"strings"
	"unicode"

	"github.com/divan/num2words"
)

// PaymentMethod is how a fee was paid
type PaymentMethod string

const (
	PaymentUPI   PaymentMethod = "UPI"
	PaymentCash  PaymentMethod = "CASH"
	PaymentBank  PaymentMethod = "BANK"
	PaymentOther PaymentMethod = "OTHER"
)

// PaymentMethods lists the accepted methods in display order
var PaymentMethods = []PaymentMethod{PaymentUPI, PaymentCash, PaymentBank, PaymentOther}

// Valid reports whether m is an accepted payment method
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// AmountInWords spells a whole-rupee amount the way it is printed on receipts,
// e.g. 1500 => "One Thousand Five Hundred only".
func AmountInWords(amount int64) string {
	words := num2words.Convert(int(amount))
	parts := strings.Fields(words)
	for i, p := range parts {
		runes := []rune(p)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ") + " only"
}
