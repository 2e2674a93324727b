package domain

// AccountType is an optional user-declared accounting classification on a
// category. When set it takes precedence over every heuristic the account
// classifier applies.
type AccountType string

const (
	AccountTypeIncome            AccountType = "INCOME"
	AccountTypeExpense           AccountType = "EXPENSE"
	AccountTypeCurrentAsset      AccountType = "CURRENT_ASSET"
	AccountTypeFixedAsset        AccountType = "FIXED_ASSET"
	AccountTypeCurrentLiability  AccountType = "CURRENT_LIABILITY"
	AccountTypeLongTermLiability AccountType = "LONG_TERM_LIABILITY"
	AccountTypeEquity            AccountType = "EQUITY"
	AccountTypeAsset             AccountType = "ASSET"     // generic, treated as current
	AccountTypeLiability         AccountType = "LIABILITY" // generic, treated as current
)

// UncategorizedName is the fallback category every transaction can rely on.
// Categories are matched by name case-insensitively everywhere.
const UncategorizedName = "Uncategorized"

// ValidAccountType reports whether t is a member of the closed AccountType set.
// The empty string is valid and means "unset".
func ValidAccountType(t AccountType) bool {
	switch t {
	case "", AccountTypeIncome, AccountTypeExpense, AccountTypeCurrentAsset,
		AccountTypeFixedAsset, AccountTypeCurrentLiability,
		AccountTypeLongTermLiability, AccountTypeEquity,
		AccountTypeAsset, AccountTypeLiability:
		return true
	}
	return false
}

// Category is a named bucket transactions are classified into. Users define
// categories at runtime, so the set is open; AccountType may be empty.
type Category struct {
	CategoryID  string      `json:"categoryID"` // Primary Key (e.g., UUID)
	UserID      string      `json:"userID"`     // FK -> users.user_id (Not Null)
	Name        string      `json:"name"`       // Unique per user, case-insensitive
	AccountType AccountType `json:"accountType"` // Empty when unset
	AuditFields
}
