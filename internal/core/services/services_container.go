package services

import (
	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/platform/config"
)

type containerConfig struct {
	extractor portssvc.DocumentExtractor
	insight   portssvc.InsightGenerator
	simOpts   *accounting.SimilarityOptions
}

// ContainerOption configures optional collaborators for the service container.
type ContainerOption func(*containerConfig)

// WithExtractor wires the document extraction collaborator.
func WithExtractor(extractor portssvc.DocumentExtractor) ContainerOption {
	return func(c *containerConfig) {
		c.extractor = extractor
	}
}

// WithInsight wires the statement narrative collaborator.
func WithInsight(insight portssvc.InsightGenerator) ContainerOption {
	return func(c *containerConfig) {
		c.insight = insight
	}
}

// WithSimilarityTuning overrides the similarity matcher defaults.
func WithSimilarityTuning(opts accounting.SimilarityOptions) ContainerOption {
	return func(c *containerConfig) {
		c.simOpts = &opts
	}
}

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(appCfg *config.Config, repos portsrepo.RepositoryProvider, classifier *accounting.Classifier, opts ...ContainerOption) *portssvc.ServiceContainer {
	cfg := containerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	txnOpts := []TransactionServiceOption{}
	if cfg.extractor != nil {
		txnOpts = append(txnOpts, WithDocumentExtractor(cfg.extractor))
	}
	if cfg.simOpts != nil {
		txnOpts = append(txnOpts, WithSimilarityOptions(*cfg.simOpts))
	}

	stmtOpts := []StatementServiceOption{}
	if cfg.insight != nil {
		stmtOpts = append(stmtOpts, WithInsightGenerator(cfg.insight))
	}

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.CategoryRepo,
			repos.RuleRepo,
			repos.EntityRepo,
			txnOpts...,
		),
		Category: NewCategoryService(
			repos.CategoryRepo,
			repos.TransactionRepo,
			repos.RuleRepo,
		),
		Rule: NewRuleService(
			repos.RuleRepo,
			repos.TransactionRepo,
			repos.CategoryRepo,
		),
		Statement: NewStatementService(
			repos.TransactionRepo,
			repos.CategoryRepo,
			repos.AdjustmentRepo,
			repos.OverrideRepo,
			classifier,
			stmtOpts...,
		),
		Entity: NewEntityService(repos.EntityRepo),
		User:   NewUserService(repos.UserRepo),
		Token:  NewTokenService(appCfg),
	}
}
