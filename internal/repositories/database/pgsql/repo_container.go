package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		RuleRepo:        newPgxRuleRepository(dbPool),
		AdjustmentRepo:  newPgxAdjustmentRepository(dbPool),
		OverrideRepo:    newPgxOverrideRepository(dbPool),
		EntityRepo:      newPgxEntityRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
