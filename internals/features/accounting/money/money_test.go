// file: internals/features/accounting/money/money_test.go
package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAnnualize(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  int64
	}{
		{
			name:  "empty list",
			lines: nil,
			want:  0,
		},
		{
			name: "mixed frequencies",
			lines: []Line{
				{Amount: decimal.NewFromInt(100), Frequency: FrequencyMonthly},
				{Amount: decimal.NewFromInt(300), Frequency: FrequencyTerm},
				{Amount: decimal.NewFromInt(1000), Frequency: FrequencyAnnual},
				{Amount: decimal.NewFromInt(50), Frequency: FrequencyOneTime},
			},
			want: 3150, // 100*12 + 300*3 + 1000 + 50
		},
		{
			name: "unknown frequency treated as one-time",
			lines: []Line{
				{Amount: decimal.NewFromInt(100), Frequency: Frequency("WEEKLY")},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annualize(tt.lines)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("Annualize() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		frequency Frequency
		want      int64
	}{
		{name: "monthly passes through", amount: 250, frequency: FrequencyMonthly, want: 250},
		{name: "annual floors by 12", amount: 100, frequency: FrequencyAnnual, want: 8},
		{name: "term floors by 3", amount: 100, frequency: FrequencyTerm, want: 33},
		{name: "one-time not divided", amount: 50, frequency: FrequencyOneTime, want: 50},
		{name: "unknown passes through", amount: 77, frequency: Frequency("WEEKLY"), want: 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyEquivalent(decimal.NewFromInt(tt.amount), tt.frequency)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("MonthlyEquivalent(%d, %s) = %s, want %d", tt.amount, tt.frequency, got, tt.want)
			}
		})
	}
}

func TestMonthlyFromAnnual(t *testing.T) {
	// 3150 / 12 = 262.5, truncated
	got := MonthlyFromAnnual(decimal.NewFromInt(3150))
	if !got.Equal(decimal.NewFromInt(262)) {
		t.Errorf("MonthlyFromAnnual(3150) = %s, want 262", got)
	}
}
