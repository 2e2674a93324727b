package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionValidate(t *testing.T) {
	validDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		txn         Transaction
		expectError bool
	}{
		{
			name: "Valid expense",
			txn: Transaction{
				TransactionID: "txn-1",
				UserID:        "user-1",
				Date:          validDate,
				Description:   "Office supplies",
				Amount:        decimal.NewFromFloat(42.50),
				Type:          Expense,
			},
			expectError: false,
		},
		{
			name: "Valid income with zero amount",
			txn: Transaction{
				TransactionID: "txn-2",
				UserID:        "user-1",
				Date:          validDate,
				Amount:        decimal.Zero,
				Type:          Income,
			},
			expectError: false,
		},
		{
			name: "Negative amount",
			txn: Transaction{
				TransactionID: "txn-3",
				UserID:        "user-1",
				Date:          validDate,
				Amount:        decimal.NewFromFloat(-10),
				Type:          Expense,
			},
			expectError: true,
		},
		{
			name: "Unknown type",
			txn: Transaction{
				TransactionID: "txn-4",
				UserID:        "user-1",
				Date:          validDate,
				Amount:        decimal.NewFromFloat(10),
				Type:          TransactionType("TRANSFER"),
			},
			expectError: true,
		},
		{
			name: "Missing date",
			txn: Transaction{
				TransactionID: "txn-5",
				UserID:        "user-1",
				Amount:        decimal.NewFromFloat(10),
				Type:          Income,
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.txn.Validate()
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidAccountType(t *testing.T) {
	assert.True(t, ValidAccountType(""))
	assert.True(t, ValidAccountType(AccountTypeFixedAsset))
	assert.True(t, ValidAccountType(AccountTypeAsset))
	assert.False(t, ValidAccountType(AccountType("GOODWILL")))
}

func TestBalanceSheetReportBalanced(t *testing.T) {
	report := BalanceSheetReport{
		TotalAssets:               decimal.NewFromFloat(100.00),
		TotalLiabilitiesAndEquity: decimal.NewFromFloat(100.005),
	}
	assert.True(t, report.Balanced())

	report.TotalLiabilitiesAndEquity = decimal.NewFromFloat(99.50)
	assert.False(t, report.Balanced())
}
