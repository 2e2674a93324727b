package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

func TestClassifyRegistryTakesPrecedence(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	reg := accounting.NewRegistry([]domain.Category{
		// "Rent" is a P&L name by default; the user declared it an asset.
		{CategoryID: "c1", UserID: "u1", Name: "Rent", AccountType: domain.AccountTypeFixedAsset},
	})

	assert.Equal(t, accounting.BucketFixedAsset, cls.Classify("Rent", reg))
	assert.Equal(t, accounting.BucketProfitAndLoss, cls.Classify("Rent", nil))
}

func TestClassifyDefaultNameTable(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())

	testCases := []struct {
		name   string
		bucket accounting.Bucket
	}{
		{"Inventory", accounting.BucketCurrentAsset},
		{"Accounts Receivable", accounting.BucketCurrentAsset},
		{"Loans", accounting.BucketLongTermLiability},
		{"Withdrawal", accounting.BucketEquity},
		{"withdrawl", accounting.BucketEquity},
		{"Sales", accounting.BucketProfitAndLoss},
		{"Utilities", accounting.BucketProfitAndLoss},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.bucket, cls.Classify(tc.name, nil))
		})
	}
}

func TestClassifyKeywordTiers(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())

	assert.Equal(t, accounting.BucketFixedAsset, cls.Classify("Delivery Vehicle", nil))
	assert.Equal(t, accounting.BucketFixedAsset, cls.Classify("Office Computer Purchase", nil))
	assert.Equal(t, accounting.BucketLongTermLiability, cls.Classify("Business Loan Repayment", nil))
	assert.Equal(t, accounting.BucketCurrentLiability, cls.Classify("Wages Payable", nil))
	assert.Equal(t, accounting.BucketCurrentLiability, cls.Classify("Credit Card Balance", nil))
}

func TestClassifyFailsOpenToProfitAndLoss(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	assert.Equal(t, accounting.BucketProfitAndLoss, cls.Classify("Mystery Category", nil))
	assert.Equal(t, accounting.BucketProfitAndLoss, cls.Classify("", nil))
}

func TestClassifyDeclaredTypeBeatsKeywordHeuristic(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	reg := accounting.NewRegistry([]domain.Category{
		// "equipment" is a fixed-asset keyword, but the user declared these
		// categories as operating income/expense.
		{CategoryID: "c1", UserID: "u1", Name: "Equipment", AccountType: domain.AccountTypeExpense},
		{CategoryID: "c2", UserID: "u1", Name: "Equipment Rental Income", AccountType: domain.AccountTypeIncome},
	})

	assert.Equal(t, accounting.BucketProfitAndLoss, cls.Classify("Equipment", reg))
	assert.Equal(t, accounting.BucketProfitAndLoss, cls.Classify("Equipment Rental Income", reg))

	// Without the declaration the keyword tier wins.
	assert.Equal(t, accounting.BucketFixedAsset, cls.Classify("Equipment", nil))
}

func TestClassifyGenericAccountTypes(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	reg := accounting.NewRegistry([]domain.Category{
		{CategoryID: "c1", UserID: "u1", Name: "Petty Cash", AccountType: domain.AccountTypeAsset},
		{CategoryID: "c2", UserID: "u1", Name: "VAT Due", AccountType: domain.AccountTypeLiability},
	})

	assert.Equal(t, accounting.BucketCurrentAsset, cls.Classify("Petty Cash", reg))
	assert.Equal(t, accounting.BucketCurrentLiability, cls.Classify("VAT Due", reg))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	reg := accounting.NewRegistry([]domain.Category{
		{CategoryID: "c1", UserID: "u1", Name: "Owner Drawings", AccountType: domain.AccountTypeEquity},
	})

	assert.Equal(t, accounting.BucketEquity, cls.Classify("OWNER DRAWINGS", reg))
	assert.Equal(t, accounting.BucketCurrentAsset, cls.Classify("INVENTORY", nil))
}
