package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/harborstay/report-engine/report"
)

func TestClassify_SignedAmount(t *testing.T) {
	// SIGNED_AMOUNT matches by case-insensitive prefix.
	tests := []struct {
		name        string
		accountType string
		want        report.LineClass
	}{
		{"income", "Income", report.ClassRevenue},
		{"income subtype", "Income:Short Term Rental", report.ClassRevenue},
		{"lowercase income", "income", report.ClassRevenue},
		{"expense", "Expense", report.ClassOpEx},
		{"expenses plural", "Expenses", report.ClassOpEx},
		{"cogs", "Cost of Goods Sold", report.ClassCOGS},
		{"cogs mixed case", "COST OF GOODS SOLD", report.ClassCOGS},
		{"other income is not prefix match", "Other Income", report.ClassUnclassified},
		{"equity", "Equity", report.ClassUnclassified},
		{"blank", "", report.ClassUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := report.LedgerLine{AccountType: tt.accountType, Amount: decimal.NewFromInt(100)}
			class, amount := report.Classify(line, report.SignedAmount)
			assert.Equal(t, tt.want, class)
			if tt.want == report.ClassUnclassified {
				assert.True(t, amount.IsZero(), "unclassified lines contribute zero")
			} else {
				assert.Equal(t, "100", amount.String())
			}
		})
	}
}

func TestClassify_DebitCredit(t *testing.T) {
	// DEBIT_CREDIT matches by containment and signs as credit - debit.
	tests := []struct {
		name        string
		accountType string
		debit       int64
		credit      int64
		wantClass   report.LineClass
		wantAmount  string
	}{
		{"revenue credit", "Income", 0, 1000, report.ClassRevenue, "1000"},
		{"revenue containment", "Other Income", 0, 250, report.ClassRevenue, "250"},
		{"revenue keyword", "Rental Revenue", 0, 400, report.ClassRevenue, "400"},
		{"cogs debit is negative", "Cost of Goods Sold", 300, 0, report.ClassCOGS, "-300"},
		{"expense debit is negative", "Expenses", 500, 0, report.ClassOpEx, "-500"},
		{"expense refund nets", "Expense", 500, 120, report.ClassOpEx, "-380"},
		{"unclassified", "Bank", 100, 0, report.ClassUnclassified, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := report.LedgerLine{
				AccountType: tt.accountType,
				Debit:       decimal.NewFromInt(tt.debit),
				Credit:      decimal.NewFromInt(tt.credit),
			}
			class, amount := report.Classify(line, report.DebitCredit)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantAmount, amount.String())
		})
	}
}

func TestClassify_ConventionsDoNotLeak(t *testing.T) {
	// The same line classifies by the convention flag alone: a signed
	// amount line has empty debit/credit, so misreading it under
	// DEBIT_CREDIT would zero it out - the flag must be explicit.
	line := report.LedgerLine{AccountType: "Income", Amount: decimal.NewFromInt(1000)}

	_, signedAmount := report.Classify(line, report.SignedAmount)
	_, debitCredit := report.Classify(line, report.DebitCredit)

	assert.Equal(t, "1000", signedAmount.String())
	assert.True(t, debitCredit.IsZero())
}
