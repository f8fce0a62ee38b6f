package repository

import (
	"context"

	"github.com/tastetrail/progression/pkg/domain"
)

// PointsRepository manages user XP totals and the append-only XP ledger.
type PointsRepository interface {
	// Get retrieves a user's points row. Returns nil if the user has never
	// earned XP.
	Get(ctx context.Context, userID string) (*domain.UserPoints, error)

	// AddXP fetches-or-creates the points row and atomically adds amount to
	// both total and monthly XP, recomputing the level in the same write.
	// Returns the updated row.
	AddXP(ctx context.Context, userID string, amount int) (*domain.UserPoints, error)

	// AppendTransaction appends an entry to the XP ledger. Entries are
	// never mutated or deleted.
	AppendTransaction(ctx context.Context, tx *domain.XPTransaction) error

	// TransactionsForUser returns a user's ledger entries, newest first.
	TransactionsForUser(ctx context.Context, userID string, limit int) ([]*domain.XPTransaction, error)

	// ResetMonthlyXP zeroes monthly XP for every user with a non-zero
	// monthly total. Returns the number of affected users.
	ResetMonthlyXP(ctx context.Context) (int64, error)
}

// BadgeRepository manages badge ownership.
type BadgeRepository interface {
	// Award grants a badge to a user. Awarding is idempotent: a duplicate
	// award returns (false, nil) rather than an error.
	Award(ctx context.Context, userID, badgeID string) (bool, error)

	// OwnedBadgeIDs returns the IDs of badges the user already owns.
	OwnedBadgeIDs(ctx context.Context, userID string) (map[string]bool, error)
}
