package post

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/db"
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
)

const postColumns = `p.id, p.title, p.content, p.date_posted, p.user_id`

const postWithAuthorColumns = postColumns + `, u.username, u.image_file`

type PgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(dbtx db.DBTX) *PgxRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: dbtx}
}

func (r *PgxRepository) Create(ctx context.Context, input post.CreateInput) (p post.Post, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO post AS p (title, content, date_posted, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		input.Title,
		input.Content,
		input.DatePosted,
		int64(input.AuthorID),
	)
	return decodePost(row)
}

func (r *PgxRepository) GetByID(ctx context.Context, id post.ID) (p post.PostWithAuthor, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+postWithAuthorColumns+`
		FROM post p JOIN "user" u ON u.id = p.user_id
		WHERE p.id = $1`,
		int64(id),
	)
	return decodePostWithAuthor(row)
}

func (r *PgxRepository) GetByIDForUpdate(ctx context.Context, id post.ID) (p post.Post, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM post p WHERE p.id = $1 FOR UPDATE`, int64(id))
	return decodePost(row)
}

func (r *PgxRepository) Update(ctx context.Context, input post.UpdateInput) (p post.Post, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE post AS p SET title = $2, content = $3
		WHERE p.id = $1
		RETURNING `+postColumns,
		int64(input.ID),
		input.Title,
		input.Content,
	)
	return decodePost(row)
}

func (r *PgxRepository) Delete(ctx context.Context, id post.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM post WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostDoesNotExist
	}
	return nil
}

func (r *PgxRepository) Read(ctx context.Context, options post.ReadOptions) ([]post.PostWithAuthor, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+postWithAuthorColumns+`
		FROM post p JOIN "user" u ON u.id = p.user_id
		WHERE ($1::bigint IS NULL OR p.user_id = $1)
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT $2 OFFSET $3`,
		encodeAuthorID(options),
		int64(options.Page.Limit()),
		int64(options.Page.Offset()),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]post.PostWithAuthor, 0, options.Page.Limit())
	for rows.Next() {
		p, err := decodePostWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PgxRepository) Count(ctx context.Context, options post.ReadOptions) (uint, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT count(*) FROM post p WHERE ($1::bigint IS NULL OR p.user_id = $1)`,
		encodeAuthorID(options),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

func encodeAuthorID(options post.ReadOptions) *int64 {
	if !options.AuthorIDEquals.IsPresent {
		return nil
	}
	id := int64(options.AuthorIDEquals.Value)
	return &id
}

func decodePost(row pgx.Row) (p post.Post, err error) {
	var id, authorID int64
	err = row.Scan(&id, &p.Title, &p.Content, &p.DatePosted, &authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, post.ErrPostDoesNotExist
	}
	if err != nil {
		return p, err
	}
	p.ID = post.ID(id)
	p.AuthorID = user.ID(authorID)
	p.DatePosted = p.DatePosted.UTC()
	return p, p.Validate()
}

func decodePostWithAuthor(row pgx.Row) (p post.PostWithAuthor, err error) {
	var (
		id, authorID int64
		username     string
		imageFile    string
	)
	err = row.Scan(&id, &p.Title, &p.Content, &p.DatePosted, &authorID, &username, &imageFile)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, post.ErrPostDoesNotExist
	}
	if err != nil {
		return p, err
	}
	p.ID = post.ID(id)
	p.AuthorID = user.ID(authorID)
	p.DatePosted = p.DatePosted.UTC()
	p.Author = post.Author{
		ID:        user.ID(authorID),
		Username:  user.Username(username),
		ImageFile: user.ImageFile(imageFile),
	}
	return p, p.Validate()
}
