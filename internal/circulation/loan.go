package circulation

import "time"

// Loan records one checkout of a copy by a user. A loan is active until
// ReturnedAt is set.
type Loan struct {
	ID         int        `json:"id"`
	CopyID     string     `json:"copy_id"`
	UserID     int        `json:"user_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Active reports whether the copy has not been returned yet.
func (loan *Loan) Active() bool {
	return loan.ReturnedAt == nil
}

// Global field names for validation
const (
	FieldCopyID = "copy_id"
	FieldUserID = "user_id"
)
