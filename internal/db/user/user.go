package user

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"blogify/internal/db"
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
)

const (
	EMAIL_CONSTRAINT_NAME    = "user_email_idx"
	USERNAME_CONSTRAINT_NAME = "user_username_idx"
)

const userColumns = `id, username, email, image_file, password_hash, created_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(dbtx db.DBTX) *PgxUserRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: dbtx}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		string(input.Username),
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByUsername(ctx context.Context, username user.Username) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE username = $1`, string(username))
	return decodeUser(row)
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			username = CASE WHEN $2::boolean THEN $3::text ELSE username END,
			email = CASE WHEN $4::boolean THEN $5::text ELSE email END,
			image_file = CASE WHEN $6::boolean THEN $7::text ELSE image_file END
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.ID),
		input.DoUsernameUpdate,
		string(input.Username),
		input.DoEmailUpdate,
		string(input.Email),
		input.DoImageFileUpdate,
		string(input.ImageFile),
	)
	return decodeUser(row)
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET password_hash = $2 WHERE id = $1`, int64(id), string(password))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func decodeUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		username     string
		email        string
		imageFile    string
		passwordHash string
	)
	err = row.Scan(&id, &username, &email, &imageFile, &passwordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if constraint, ok := db.UniqueViolation(err); ok {
		switch constraint {
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}

	u.ID = user.ID(id)
	u.Username = user.Username(username)
	u.Email = c.Email(email)
	u.ImageFile = user.ImageFile(imageFile)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.CreatedAt = u.CreatedAt.UTC()
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}
