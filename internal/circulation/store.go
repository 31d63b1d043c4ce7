package circulation

import (
	"context"
	"time"

	"github.com/taibuivan/library/internal/catalog"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/users"
)

type LoanRepository interface {
	// Open stores a new active loan and assigns its identifier.
	Open(context context.Context, loan *Loan) (int, error)
	// CloseActive marks the active loan of a copy as returned. It reports
	// false when the copy had no active loan.
	CloseActive(context context.Context, copyID string, returnedAt time.Time) (bool, error)
	ListActiveByUser(context context.Context, userID int) ([]*Loan, error)
}

// UnitOfWork scopes the repositories a checkout or return touches to one
// connection and transaction.
type UnitOfWork interface {
	database.Transactor
	Users() users.Repository
	Copies() catalog.CopyRepository
	Loans() LoanRepository
	Close() error
}

// UnitOfWorkFactory opens a new [UnitOfWork].
type UnitOfWorkFactory func(context context.Context) (UnitOfWork, error)
