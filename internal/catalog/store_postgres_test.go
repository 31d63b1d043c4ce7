// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/internal/catalog"
	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/database"
)

var bookColumns = []string{"bookid", "isbn", "title", "author", "publicationyear"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPostgresBookRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repository := catalog.NewPostgresBookRepository(database.NewStandalone(db))

	book, err := catalog.NewBook("978-3-16-148410-0", "Dune", "Frank Herbert", 1965)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "library"."books"`)).
		WithArgs("Frank Herbert", "978-3-16-148410-0", 1965, "Dune").
		WillReturnRows(sqlmock.NewRows([]string{"bookid"}).AddRow(42))

	id, err := repository.Create(context.Background(), book)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, 42, book.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBookRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repository := catalog.NewPostgresBookRepository(database.NewStandalone(db))
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "library"."books" WHERE ("bookid" = $1)`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(bookColumns).AddRow(42, "978-3-16-148410-0", "Dune", "Frank Herbert", 1965))

	book, err := repository.GetByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Dune", book.Title)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "library"."books"`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(bookColumns))

	missing, err := repository.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBookRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repository := catalog.NewPostgresBookRepository(database.NewStandalone(db))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "library"."books"`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repository.Exists(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCopyRepository_ListByBook(t *testing.T) {
	db, mock := newMockDB(t)
	repository := catalog.NewPostgresCopyRepository(database.NewStandalone(db))

	rows := sqlmock.NewRows([]string{"copyid", "state", "bookid", "isbn", "title", "author", "publicationyear"}).
		AddRow("0190b6a6-3b6e-7c3a-8d5e-1f2a3b4c5d6e", "available", 42, "978-3-16-148410-0", "Dune", "Frank Herbert", 1965).
		AddRow("0190b6a6-3b6e-7c3a-8d5e-1f2a3b4c5d6f", "on_loan", 42, "978-3-16-148410-0", "Dune", "Frank Herbert", 1965)

	mock.ExpectQuery(regexp.QuoteMeta(`INNER JOIN "library"."books"`)).
		WithArgs(42).
		WillReturnRows(rows)

	copies, err := repository.ListByBook(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, catalog.CopyAvailable, copies[0].State())
	assert.Equal(t, catalog.CopyOnLoan, copies[1].State())
	assert.Equal(t, 42, copies[1].Book().ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCopyRepository_UpdateStateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repository := catalog.NewPostgresCopyRepository(database.NewStandalone(db))

	book := &catalog.Book{ID: 1}
	bookCopy, err := catalog.NewCopy(book)
	require.NoError(t, err)
	require.NoError(t, bookCopy.MarkOnLoan())

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "library"."copies"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repository.UpdateState(context.Background(), bookCopy)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUnitOfWork_AddBookRollsBack verifies that a failing copy insert
discards the book written earlier in the same transaction.
*/
func TestPostgresUnitOfWork_AddBookRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	service := catalog.NewService(
		catalog.NewPostgresBookRepository(database.NewStandalone(db)),
		catalog.NewPostgresCopyRepository(database.NewStandalone(db)),
		catalog.NewPostgresUnitOfWorkFactory(db),
		discardLogger(),
	)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "library"."books"`)).
		WillReturnRows(sqlmock.NewRows([]string{"bookid"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "library"."copies"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "library"."copies"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := service.AddBook(context.Background(), catalog.AddBookRequest{
		ISBN: "978-3-16-148410-0", Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965, Copies: 2,
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
