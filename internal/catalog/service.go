// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/validate"
	"github.com/taibuivan/library/pkg/slice"
)

// MaxCopiesPerBook caps how many copies a single AddBook call may register.
const MaxCopiesPerBook = 50

// AddBookRequest is the input of [Service.AddBook].
type AddBookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	Copies          int    `json:"copies"`
}

// BookResponse is the boundary view of a [Book].
type BookResponse struct {
	ID              int              `json:"id"`
	ISBN            string           `json:"isbn"`
	Title           string           `json:"title"`
	Author          string           `json:"author"`
	PublicationYear int              `json:"publication_year"`
	Published       *PublicationDate `json:"published"`
}

// AddBookResponse carries the stored book and the copies registered with it.
type AddBookResponse struct {
	Book   *BookResponse `json:"book"`
	Copies []*Copy       `json:"copies"`
}

func toBookResponse(book *Book) *BookResponse {
	return &BookResponse{
		ID:              book.ID,
		ISBN:            book.ISBN,
		Title:           book.Title,
		Author:          book.Author,
		PublicationYear: book.PublicationYear,
		Published:       book.publishedOrNil(),
	}
}

type Service struct {
	books          BookRepository
	copies         CopyRepository
	openUnitOfWork UnitOfWorkFactory
	logger         *slog.Logger
}

func NewService(books BookRepository, copies CopyRepository, openUnitOfWork UnitOfWorkFactory, logger *slog.Logger) *Service {
	return &Service{
		books:          books,
		copies:         copies,
		openUnitOfWork: openUnitOfWork,
		logger:         logger,
	}
}

/*
AddBook stores a new book together with its initial copies.

Description: The book row and every copy row are written in one transaction;
if any insert fails nothing is kept.

Returns:
  - *AddBookResponse: The stored book with its identifier, and its copies
  - error: VALIDATION_ERROR for bad input, or a storage failure
*/
func (service *Service) AddBook(ctx context.Context, request AddBookRequest) (*AddBookResponse, error) {
	validator := &validate.Validator{}
	validator.Range(FieldCopies, request.Copies, 0, MaxCopiesPerBook)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	book, err := NewBook(request.ISBN, request.Title, request.Author, request.PublicationYear)
	if err != nil {
		return nil, err
	}

	uow, err := service.openUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer service.close(uow)

	copies := make([]*Copy, 0, request.Copies)
	err = database.Run(ctx, uow, func(ctx context.Context) error {
		if _, err := uow.Books().Create(ctx, book); err != nil {
			return err
		}

		for index := 0; index < request.Copies; index++ {
			bookCopy, err := NewCopy(book)
			if err != nil {
				return err
			}
			if err := uow.Copies().Create(ctx, bookCopy); err != nil {
				return err
			}
			copies = append(copies, bookCopy)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_added",
		slog.Int("book_id", book.ID),
		slog.String("isbn", book.ISBN),
		slog.Int("copies", len(copies)),
	)

	return &AddBookResponse{Book: toBookResponse(book), Copies: copies}, nil
}

// GetBook returns nil when no book has the identifier.
func (service *Service) GetBook(ctx context.Context, id int) (*BookResponse, error) {
	book, err := service.books.GetByID(ctx, id)
	if err != nil || book == nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// ListBooks returns every book, oldest publication first. Books whose year is
// not a valid publication date sort first.
func (service *Service) ListBooks(ctx context.Context) ([]*BookResponse, error) {
	books, err := service.books.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := slice.Map(books, toBookResponse)
	slices.SortStableFunc(responses, func(a, b *BookResponse) int {
		if order := CompareDates(a.Published, b.Published); order != 0 {
			return order
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return responses, nil
}

// SearchBooks returns books whose title matches exactly.
func (service *Service) SearchBooks(ctx context.Context, title string) ([]*BookResponse, error) {
	validator := &validate.Validator{}
	if err := validator.Required(FieldTitle, title).Err(); err != nil {
		return nil, err
	}

	books, err := service.books.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return slice.Map(books, toBookResponse), nil
}

// ListCopies returns the copies of a book. The result is nil when the book
// does not exist and empty when it has no copies.
func (service *Service) ListCopies(ctx context.Context, bookID int) ([]*Copy, error) {
	exists, err := service.books.Exists(ctx, bookID)
	if err != nil || !exists {
		return nil, err
	}

	copies, err := service.copies.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return slice.OrEmpty(copies), nil
}

func (service *Service) close(uow UnitOfWork) {
	if err := uow.Close(); err != nil {
		service.logger.Warn("unit_of_work_close_failed", slog.Any("error", err))
	}
}
