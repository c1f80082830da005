package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// FiscalYearStartMonth is the first month of a financial year.
const FiscalYearStartMonth = time.April

// ReceiptSeqWidth is the minimum number of digits of a receipt sequence.
const ReceiptSeqWidth = 3

// FinancialYear returns the "YY-YY" label of the financial year containing t.
// April onward belongs to the year starting in t's year, January to March to
// the one that started the year before. Both halves are zero padded.
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < FiscalYearStartMonth {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// ValidFinancialYear reports whether label has the "YY-YY" shape with consecutive years.
func ValidFinancialYear(label string) bool {
	parts := strings.Split(label, "-")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return false
	}
	return (first+1)%100 == second
}

// ReceiptPrefix is the id prefix shared by every receipt of a financial year.
func ReceiptPrefix(fy string) string {
	return fy + "/"
}

// FormatReceiptID builds "<fy>/<seq>" with seq zero padded to ReceiptSeqWidth digits.
func FormatReceiptID(fy string, seq int) string {
	return fmt.Sprintf("%s/%0*d", fy, ReceiptSeqWidth, seq)
}

// ParseReceiptID splits a receipt id into its financial year and sequence.
// Anything that is not "<fy>/<positive integer>" is a sequencing error.
func ParseReceiptID(id string) (string, int, error) {
	fy, suffix, ok := strings.Cut(id, "/")
	if !ok || fy == "" || suffix == "" {
		return "", 0, apperrors.NewSequencingError(fmt.Sprintf("malformed receipt id %q", id))
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", 0, apperrors.NewSequencingError(fmt.Sprintf("malformed receipt sequence in %q", id))
		}
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 1 {
		return "", 0, apperrors.NewSequencingError(fmt.Sprintf("malformed receipt sequence in %q", id))
	}
	return fy, seq, nil
}

// NextReceiptID returns the id that follows latest in financial year fy.
// A nil latest starts the year at 001. A latest that cannot be parsed, or that
// belongs to another year, aborts with a sequencing error instead of restarting
// the sequence.
func NextReceiptID(fy string, latest *string) (string, error) {
	if latest == nil {
		return FormatReceiptID(fy, 1), nil
	}

	latestFY, seq, err := ParseReceiptID(*latest)
	if err != nil {
		return "", err
	}
	if latestFY != fy {
		return "", apperrors.NewSequencingError(fmt.Sprintf("receipt %q does not belong to financial year %s", *latest, fy))
	}

	return FormatReceiptID(fy, seq+1), nil
}
