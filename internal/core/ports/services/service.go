package services

// ServiceContainer aggregates every service facade for injection into the
// HTTP layer.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Category    CategorySvcFacade
	Rule        RuleSvcFacade
	Statement   StatementSvcFacade
	Entity      EntitySvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
}
