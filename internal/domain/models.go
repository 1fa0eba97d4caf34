package domain

import "time"

const (
	// PendingStatus пожертвование создано, оплата ещё не подтверждена;
	PendingStatus string = "pending"
	// CompletedStatus оплата подтверждена шлюзом, статус терминальный;
	CompletedStatus string = "completed"
	// FailedStatus шлюз отклонил оплату, статус терминальный;
	FailedStatus string = "failed"
)

// IsTerminalStatus reports whether no further transition is permitted.
func IsTerminalStatus(status string) bool {
	return status == CompletedStatus || status == FailedStatus
}

type Donor struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Donation is one attempted contribution. Amount is in major currency
// units and is fixed at creation; verification only confirms or denies.
type Donation struct {
	ID        int       `db:"id"`
	DonorID   *int      `db:"donor_id"`
	IssueID   *int      `db:"issue_id"`
	Reference string    `db:"reference"`
	Email     string    `db:"email"`
	Amount    float64   `db:"amount"`
	Currency  string    `db:"currency"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// Issue is a fundraising need. RaisedAmount is the running total of
// confirmed contributions, applied at most once per donation.
type Issue struct {
	ID           int       `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	TargetAmount float64   `db:"target_amount"`
	RaisedAmount float64   `db:"raised_amount"`
	CreatedAt    time.Time `db:"created_at"`
}
