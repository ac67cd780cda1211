package user

import (
	"context"
	"errors"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const activationCodeColumns = `user_id, code, created_at, expires_at, consumed_at`

type PgxActivationCodeRepository struct {
	db db.Querier
}

func NewPgxActivationCodeRepository(db db.Querier) *PgxActivationCodeRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxActivationCodeRepository{db: db}
}

func (r *PgxActivationCodeRepository) Put(
	ctx context.Context,
	code user.ActivationCode,
) (c user.ActivationCode, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO activation_code (user_id, code, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET code = excluded.code,
		     created_at = excluded.created_at,
		     expires_at = excluded.expires_at,
		     consumed_at = NULL
		 RETURNING `+activationCodeColumns,
		int64(code.UserID),
		string(code.Code),
		code.CreatedAt,
		code.ExpiresAt,
	)
	return scanActivationCode(row)
}

func (r *PgxActivationCodeRepository) GetActiveForUser(
	ctx context.Context,
	userID user.ID,
) (c user.ActivationCode, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+activationCodeColumns+`
		 FROM activation_code
		 WHERE user_id = $1 AND consumed_at IS NULL`,
		int64(userID),
	)
	c, err = scanActivationCode(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, user.ErrNoActiveCode
	}
	if err != nil {
		return c, err
	}
	return c, nil
}

func (r *PgxActivationCodeRepository) Consume(
	ctx context.Context,
	userID user.ID,
	at time.Time,
) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE activation_code SET consumed_at = $2
		 WHERE user_id = $1 AND consumed_at IS NULL`,
		int64(userID),
		at,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxActivationCodeRepository) Delete(ctx context.Context, userID user.ID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM activation_code WHERE user_id = $1`,
		int64(userID),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxActivationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM activation_code
		 WHERE consumed_at IS NULL AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanActivationCode(row pgx.Row) (c user.ActivationCode, err error) {
	var userID int64
	var code string
	var createdAt time.Time
	var expiresAt time.Time
	var consumedAt pgtype.Timestamptz
	err = row.Scan(&userID, &code, &createdAt, &expiresAt, &consumedAt)
	if err != nil {
		return c, err
	}
	return user.ActivationCode{
		UserID:     user.ID(userID),
		Code:       user.Code(code),
		CreatedAt:  createdAt,
		ExpiresAt:  expiresAt,
		ConsumedAt: decodeOptionalTime(consumedAt),
	}, nil
}
