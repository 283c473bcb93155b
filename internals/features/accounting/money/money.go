// file: internals/features/accounting/money/money.go
package money

import "github.com/shopspring/decimal"

// --- ENUM fee_frequency ------------------------------------------------------
type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyTerm    Frequency = "TERM"
	FrequencyAnnual  Frequency = "ANNUAL"
	FrequencyOneTime Frequency = "ONE_TIME"
)

// Fixed 3-terms-per-year convention.
const TermsPerYear = 3

var (
	twelve = decimal.NewFromInt(12)
	three  = decimal.NewFromInt(TermsPerYear)
)

// AnnualMultiplier maps a frequency to its yearly multiplier. An unrecognized
// frequency is treated as a single annual charge (x1), same as ONE_TIME, so
// legacy rows with odd tags keep summing instead of breaking the totals.
func (f Frequency) AnnualMultiplier() decimal.Decimal {
	switch f {
	case FrequencyMonthly:
		return twelve
	case FrequencyTerm:
		return three
	default: // ANNUAL, ONE_TIME, unknown
		return decimal.NewFromInt(1)
	}
}

// Line is one fee item as seen by the normalizer.
type Line struct {
	Amount    decimal.Decimal
	Frequency Frequency
}

// Annualize sums the annual equivalent of every line.
func Annualize(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount.Mul(l.Frequency.AnnualMultiplier()))
	}
	return total
}

// MonthlyEquivalent derives the per-month figure for one item amount.
// ANNUAL divides by 12 and TERM by 3, both truncated toward zero;
// MONTHLY and ONE_TIME (and unknown tags) pass through unchanged.
func MonthlyEquivalent(amount decimal.Decimal, f Frequency) decimal.Decimal {
	switch f {
	case FrequencyAnnual:
		return amount.Div(twelve).Floor()
	case FrequencyTerm:
		return amount.Div(three).Floor()
	default:
		return amount
	}
}

// MonthlyFromAnnual is the structure-level variant: floor(totalAnnual / 12).
func MonthlyFromAnnual(totalAnnual decimal.Decimal) decimal.Decimal {
	return totalAnnual.Div(twelve).Floor()
}
