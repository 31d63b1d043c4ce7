// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/database/schema"
	"github.com/taibuivan/library/internal/platform/dberr"
)

// # Rows

type bookRow struct {
	ID              int    `db:"bookid"`
	ISBN            string `db:"isbn"`
	Title           string `db:"title"`
	Author          string `db:"author"`
	PublicationYear int    `db:"publicationyear"`
}

func (row bookRow) toBook() *Book {
	return &Book{
		ID:              row.ID,
		ISBN:            row.ISBN,
		Title:           row.Title,
		Author:          row.Author,
		PublicationYear: row.PublicationYear,
	}
}

type copyRow struct {
	CopyID string `db:"copyid"`
	State  string `db:"state"`
	bookRow
}

func (row copyRow) toCopy() (*Copy, error) {
	restored, err := RestoreCopy(row.CopyID, row.bookRow.toBook(), CopyState(row.State))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return restored, nil
}

// # Books

// PostgresBookRepository stores books in library.books.
type PostgresBookRepository struct {
	scope database.Scope
}

// NewPostgresBookRepository binds the repository to a scope: a
// [database.Standalone] for ad hoc calls or a [database.UnitOfWork].
func NewPostgresBookRepository(scope database.Scope) *PostgresBookRepository {
	return &PostgresBookRepository{scope: scope}
}

func (repository *PostgresBookRepository) Create(ctx context.Context, book *Book) (int, error) {
	query, args, err := database.Builder.
		Insert(schema.Books.Ident()).
		Prepared(true).
		Rows(goqu.Record{
			schema.Books.ISBN:            book.ISBN,
			schema.Books.Title:           book.Title,
			schema.Books.Author:          book.Author,
			schema.Books.PublicationYear: book.PublicationYear,
		}).
		Returning(schema.Books.ID).
		ToSQL()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var id int
	err = database.Do(ctx, repository.scope, "books.create", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &id, query, args...)
	})
	if err != nil {
		return 0, dberr.Wrap(err, "create_book")
	}

	book.ID = id
	return id, nil
}

func (repository *PostgresBookRepository) GetByID(ctx context.Context, id int) (*Book, error) {
	query, args, err := selectBooks().Where(goqu.C(schema.Books.ID).Eq(id)).ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var row bookRow
	err = database.Do(ctx, repository.scope, "books.get_by_id", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &row, query, args...)
	})
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	return row.toBook(), nil
}

func (repository *PostgresBookRepository) Exists(ctx context.Context, id int) (bool, error) {
	query, args, err := database.Builder.
		From(schema.Books.Ident()).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(schema.Books.ID).Eq(id)).
		ToSQL()
	if err != nil {
		return false, apperr.Internal(err)
	}

	var count int
	err = database.Do(ctx, repository.scope, "books.exists", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &count, query, args...)
	})
	if err != nil {
		return false, dberr.Wrap(err, "book_exists")
	}

	return count > 0, nil
}

func (repository *PostgresBookRepository) GetByTitle(ctx context.Context, title string) ([]*Book, error) {
	return repository.list(ctx, "books.get_by_title", selectBooks().Where(goqu.C(schema.Books.Title).Eq(title)))
}

func (repository *PostgresBookRepository) GetAll(ctx context.Context) ([]*Book, error) {
	return repository.list(ctx, "books.get_all", selectBooks())
}

func (repository *PostgresBookRepository) list(ctx context.Context, op string, dataset *goqu.SelectDataset) ([]*Book, error) {
	query, args, err := dataset.Order(goqu.C(schema.Books.ID).Asc()).ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var rows []bookRow
	err = database.Do(ctx, repository.scope, op, func(ctx context.Context, db database.Executor) error {
		return sqlx.SelectContext(ctx, db, &rows, query, args...)
	})
	if err != nil {
		return nil, dberr.Wrap(err, op)
	}

	books := make([]*Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toBook())
	}
	return books, nil
}

func selectBooks() *goqu.SelectDataset {
	return database.Builder.From(schema.Books.Ident()).Prepared(true).Select(schema.Books.Columns()...)
}

// # Copies

// PostgresCopyRepository stores copies in library.copies.
type PostgresCopyRepository struct {
	scope database.Scope
}

// NewPostgresCopyRepository binds the repository to a scope.
func NewPostgresCopyRepository(scope database.Scope) *PostgresCopyRepository {
	return &PostgresCopyRepository{scope: scope}
}

func (repository *PostgresCopyRepository) Create(ctx context.Context, bookCopy *Copy) error {
	query, args, err := database.Builder.
		Insert(schema.Copies.Ident()).
		Prepared(true).
		Rows(goqu.Record{
			schema.Copies.ID:     bookCopy.ID(),
			schema.Copies.BookID: bookCopy.Book().ID,
			schema.Copies.State:  string(bookCopy.State()),
		}).
		ToSQL()
	if err != nil {
		return apperr.Internal(err)
	}

	err = database.Do(ctx, repository.scope, "copies.create", func(ctx context.Context, db database.Executor) error {
		_, err := db.ExecContext(ctx, query, args...)
		return err
	})
	return dberr.Wrap(err, "create_copy")
}

func (repository *PostgresCopyRepository) GetByID(ctx context.Context, id string) (*Copy, error) {
	copies := schema.Copies.Ident()

	query, args, err := selectCopies().Where(copies.Col(schema.Copies.ID).Eq(id)).ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var row copyRow
	err = database.Do(ctx, repository.scope, "copies.get_by_id", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &row, query, args...)
	})
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_copy")
	}

	return row.toCopy()
}

func (repository *PostgresCopyRepository) ListByBook(ctx context.Context, bookID int) ([]*Copy, error) {
	copies := schema.Copies.Ident()

	query, args, err := selectCopies().
		Where(copies.Col(schema.Copies.BookID).Eq(bookID)).
		Order(copies.Col(schema.Copies.ID).Asc()).
		ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var rows []copyRow
	err = database.Do(ctx, repository.scope, "copies.list_by_book", func(ctx context.Context, db database.Executor) error {
		return sqlx.SelectContext(ctx, db, &rows, query, args...)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_copies")
	}

	result := make([]*Copy, 0, len(rows))
	for _, row := range rows {
		restored, err := row.toCopy()
		if err != nil {
			return nil, err
		}
		result = append(result, restored)
	}
	return result, nil
}

func (repository *PostgresCopyRepository) UpdateState(ctx context.Context, bookCopy *Copy) error {
	query, args, err := database.Builder.
		Update(schema.Copies.Ident()).
		Prepared(true).
		Set(goqu.Record{
			schema.Copies.State:     string(bookCopy.State()),
			schema.Copies.UpdatedAt: goqu.L("NOW()"),
		}).
		Where(goqu.C(schema.Copies.ID).Eq(bookCopy.ID())).
		ToSQL()
	if err != nil {
		return apperr.Internal(err)
	}

	var affected int64
	err = database.Do(ctx, repository.scope, "copies.update_state", func(ctx context.Context, db database.Executor) error {
		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return dberr.Wrap(err, "update_copy_state")
	}

	if affected == 0 {
		return apperr.NotFound("Copy")
	}
	return nil
}

func selectCopies() *goqu.SelectDataset {
	copies, books := schema.Copies.Ident(), schema.Books.Ident()

	return database.Builder.
		From(copies).
		Prepared(true).
		Select(
			copies.Col(schema.Copies.ID),
			copies.Col(schema.Copies.State),
			books.Col(schema.Books.ID),
			books.Col(schema.Books.ISBN),
			books.Col(schema.Books.Title),
			books.Col(schema.Books.Author),
			books.Col(schema.Books.PublicationYear),
		).
		InnerJoin(books, goqu.On(copies.Col(schema.Copies.BookID).Eq(books.Col(schema.Books.ID))))
}

// # Unit of Work

type postgresUnitOfWork struct {
	*database.UnitOfWork
	books  *PostgresBookRepository
	copies *PostgresCopyRepository
}

func (uow *postgresUnitOfWork) Books() BookRepository  { return uow.books }
func (uow *postgresUnitOfWork) Copies() CopyRepository { return uow.copies }

// NewPostgresUnitOfWorkFactory returns a factory that opens a unit of work on
// a dedicated connection from provider.
func NewPostgresUnitOfWorkFactory(provider database.ConnectionProvider) UnitOfWorkFactory {
	return func(ctx context.Context) (UnitOfWork, error) {
		uow, err := database.Open(ctx, provider)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		return &postgresUnitOfWork{
			UnitOfWork: uow,
			books:      NewPostgresBookRepository(uow),
			copies:     NewPostgresCopyRepository(uow),
		}, nil
	}
}
