package uow

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	uow "blogify/internal/core/domain/unit_of_work"
	"blogify/internal/core/domain/user"
	dbpost "blogify/internal/db/post"
	dbuser "blogify/internal/db/user"
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// pgxContext hands out repositories bound to one transaction.
type pgxContext struct {
	tx       pgx.Tx
	users    *dbuser.PgxUserRepository
	sessions *dbuser.PgxSessionRepository
	posts    *dbpost.PgxRepository
}

func (c *pgxContext) Commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

// Rollback is a no-op after a successful Commit.
func (c *pgxContext) Rollback(ctx context.Context) error {
	err := c.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (c *pgxContext) Users() user.UserRepository {
	return c.users
}

func (c *pgxContext) Sessions() user.SessionRepository {
	return c.sessions
}

func (c *pgxContext) Posts() post.Repository {
	return c.posts
}

type PgxUnitOfWork struct {
	db      *pgxpool.Pool
	options pgx.TxOptions
}

func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUnitOfWork{db: db, options: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.BeginTx(ctx, u.options)
	if err != nil {
		return nil, err
	}
	return &pgxContext{
		tx:       tx,
		users:    dbuser.NewPgxRepository(tx),
		sessions: dbuser.NewPgxSessionRepository(tx),
		posts:    dbpost.NewPgxRepository(tx),
	}, nil
}
