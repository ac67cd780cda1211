package uow

import (
	"context"
	uow "simpleauth/internal/core/domain/unit_of_work"
	"simpleauth/internal/core/domain/user"
	dbuser "simpleauth/internal/db/user"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type pgxUnitOfWorkContext struct {
	tx pgx.Tx
}

func newPgxUnitOfWorkContext(tx pgx.Tx) *pgxUnitOfWorkContext {
	return &pgxUnitOfWorkContext{
		tx: tx,
	}
}

func (c *pgxUnitOfWorkContext) Commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

func (c *pgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	return c.tx.Rollback(ctx)
}

func (c *pgxUnitOfWorkContext) Users() user.UserRepository {
	return dbuser.NewPgxRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) ActivationCodes() user.ActivationCodeRepository {
	return dbuser.NewPgxActivationCodeRepository(c.tx)
}

type PgxUnitOfWork struct {
	db *pgxpool.Pool
}

func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUnitOfWork{db: db}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return newPgxUnitOfWorkContext(tx), nil
}

type externalCodeStoreContext struct {
	*pgxUnitOfWorkContext
	codes user.ActivationCodeRepository
}

func (c *externalCodeStoreContext) ActivationCodes() user.ActivationCodeRepository {
	return c.codes
}

// PgxUnitOfWorkWithCodeStore keeps users transactional in PostgreSQL while
// activation codes live in an external store (Redis). The code store's own
// conditional consume is the atomicity guard there; the user flip still
// commits through the pgx transaction.
type PgxUnitOfWorkWithCodeStore struct {
	db    *pgxpool.Pool
	codes user.ActivationCodeRepository
}

func NewPgxUnitOfWorkWithCodeStore(
	db *pgxpool.Pool,
	codes user.ActivationCodeRepository,
) *PgxUnitOfWorkWithCodeStore {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	if codes == nil {
		panic("Argument codes must not be nil.")
	}
	return &PgxUnitOfWorkWithCodeStore{db: db, codes: codes}
}

func (u *PgxUnitOfWorkWithCodeStore) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &externalCodeStoreContext{
		pgxUnitOfWorkContext: newPgxUnitOfWorkContext(tx),
		codes:                u.codes,
	}, nil
}
