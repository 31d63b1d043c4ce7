// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package circulation

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/library/internal/catalog"
	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/validate"
	"github.com/taibuivan/library/internal/users"
	"github.com/taibuivan/library/pkg/slice"
)

// ErrUnknownUser is returned when a checkout names a user that does not exist.
var ErrUnknownUser = validate.RequiredError(FieldUserID, "User does not exist")

// CheckoutRequest is the body of a checkout call.
type CheckoutRequest struct {
	UserID int `json:"user_id"`
}

type Service struct {
	users          users.Repository
	loans          LoanRepository
	openUnitOfWork UnitOfWorkFactory
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(userRepository users.Repository, loans LoanRepository, openUnitOfWork UnitOfWorkFactory, logger *slog.Logger) *Service {
	return &Service{
		users:          userRepository,
		loans:          loans,
		openUnitOfWork: openUnitOfWork,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

/*
Checkout lends a copy to a user.

Description: Runs in one transaction. The user must exist and the copy must be
available; the copy moves to on loan and an active loan is opened. If any step
fails neither the state change nor the loan is kept.

Parameters:
  - ctx: context.Context
  - copyID: string (UUID of the copy)
  - userID: int

Returns:
  - *Loan: The opened loan
  - error: VALIDATION_ERROR for a bad identifier or unknown user, NOT_FOUND for
    an unknown copy, INVALID_STATE when the copy is already on loan
*/
func (service *Service) Checkout(ctx context.Context, copyID string, userID int) (*Loan, error) {
	validator := &validate.Validator{}
	validator.UUID(FieldCopyID, copyID).Positive(FieldUserID, userID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	uow, err := service.openUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer service.close(uow)

	var loan *Loan
	err = database.Run(ctx, uow, func(ctx context.Context) error {
		exists, err := uow.Users().Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnknownUser
		}

		bookCopy, err := loadCopy(ctx, uow, copyID)
		if err != nil {
			return err
		}

		if err := bookCopy.MarkOnLoan(); err != nil {
			return err
		}
		if err := uow.Copies().UpdateState(ctx, bookCopy); err != nil {
			return err
		}

		loan = &Loan{CopyID: bookCopy.ID(), UserID: userID, LoanedAt: service.now()}
		_, err = uow.Loans().Open(ctx, loan)
		return err
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("copy_checked_out",
		slog.String("copy_id", copyID),
		slog.Int("user_id", userID),
		slog.Int("loan_id", loan.ID),
	)
	return loan, nil
}

/*
Return takes a loaned copy back.

Description: Runs in one transaction. The copy moves back to available and its
active loan is closed.

Returns:
  - *catalog.Copy: The copy in its new state
  - error: NOT_FOUND for an unknown copy, INVALID_STATE when it is not on loan
*/
func (service *Service) Return(ctx context.Context, copyID string) (*catalog.Copy, error) {
	validator := &validate.Validator{}
	if err := validator.UUID(FieldCopyID, copyID).Err(); err != nil {
		return nil, err
	}

	uow, err := service.openUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer service.close(uow)

	var bookCopy *catalog.Copy
	err = database.Run(ctx, uow, func(ctx context.Context) error {
		loaded, err := loadCopy(ctx, uow, copyID)
		if err != nil {
			return err
		}

		if err := loaded.MarkAvailable(); err != nil {
			return err
		}
		if err := uow.Copies().UpdateState(ctx, loaded); err != nil {
			return err
		}
		bookCopy = loaded

		closed, err := uow.Loans().CloseActive(ctx, copyID, service.now())
		if err != nil {
			return err
		}
		if !closed {
			service.logger.Warn("loan_missing_for_returned_copy", slog.String("copy_id", copyID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("copy_returned", slog.String("copy_id", copyID))
	return bookCopy, nil
}

// ActiveLoans lists the open loans of a user. The result is nil when the user
// does not exist.
func (service *Service) ActiveLoans(ctx context.Context, userID int) ([]*Loan, error) {
	exists, err := service.users.Exists(ctx, userID)
	if err != nil || !exists {
		return nil, err
	}

	loans, err := service.loans.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return slice.OrEmpty(loans), nil
}

func loadCopy(ctx context.Context, uow UnitOfWork, copyID string) (*catalog.Copy, error) {
	bookCopy, err := uow.Copies().GetByID(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if bookCopy == nil {
		return nil, apperr.NotFound("Copy")
	}
	return bookCopy, nil
}

func (service *Service) close(uow UnitOfWork) {
	if err := uow.Close(); err != nil {
		service.logger.Warn("unit_of_work_close_failed", slog.Any("error", err))
	}
}
