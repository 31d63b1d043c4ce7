package catalog

import (
	"context"

	"github.com/taibuivan/library/internal/platform/database"
)

// BookRepository persists books. Lookups of a missing book return nil, nil.
type BookRepository interface {
	Create(context context.Context, book *Book) (int, error)
	GetByID(context context.Context, id int) (*Book, error)
	Exists(context context.Context, id int) (bool, error)
	GetByTitle(context context.Context, title string) ([]*Book, error)
	GetAll(context context.Context) ([]*Book, error)
}

// CopyRepository persists copies together with their lending state.
type CopyRepository interface {
	Create(context context.Context, bookCopy *Copy) error
	GetByID(context context.Context, id string) (*Copy, error)
	ListByBook(context context.Context, bookID int) ([]*Copy, error)
	UpdateState(context context.Context, bookCopy *Copy) error
}

// UnitOfWork scopes book and copy repositories to one connection so that
// writes to both commit or roll back together.
type UnitOfWork interface {
	database.Transactor
	Books() BookRepository
	Copies() CopyRepository
	Close() error
}

// UnitOfWorkFactory opens a new [UnitOfWork].
type UnitOfWorkFactory func(context context.Context) (UnitOfWork, error)
