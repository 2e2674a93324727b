package repositories

// RepositoryProvider gives access to every repository facade. The pgsql
// container fills it; tests substitute mocks per facade.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	RuleRepo        RuleRepositoryFacade
	AdjustmentRepo  AdjustmentRepositoryFacade
	OverrideRepo    OverrideRepositoryFacade
	EntityRepo      EntityRepositoryFacade
	UserRepo        UserRepositoryFacade
}
