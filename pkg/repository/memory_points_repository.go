package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tastetrail/progression/pkg/domain"
)

// MemoryPointsRepository is an in-memory PointsRepository for tests and
// local development.
type MemoryPointsRepository struct {
	mu           sync.Mutex
	points       map[string]*domain.UserPoints
	transactions []*domain.XPTransaction
}

// NewMemoryPointsRepository creates an empty in-memory points repository.
func NewMemoryPointsRepository() *MemoryPointsRepository {
	return &MemoryPointsRepository{
		points: make(map[string]*domain.UserPoints),
	}
}

// Get retrieves a user's points row, or nil if absent.
func (r *MemoryPointsRepository) Get(ctx context.Context, userID string) (*domain.UserPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.points[userID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

// AddXP fetches-or-creates the points row and adds amount to both totals,
// recomputing the level. Mirrors leveling.CalculateLevel.
func (r *MemoryPointsRepository) AddXP(ctx context.Context, userID string, amount int) (*domain.UserPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.points[userID]
	if !ok {
		row = &domain.UserPoints{UserID: userID, CurrentLevel: 1}
		r.points[userID] = row
	}

	row.TotalXP += amount
	row.MonthlyXP += amount
	row.CurrentLevel = row.TotalXP/100 + 1
	if row.TotalXP <= 0 {
		row.CurrentLevel = 1
	}
	row.UpdatedAt = time.Now()

	copied := *row
	return &copied, nil
}

// AppendTransaction appends an entry to the in-memory ledger.
func (r *MemoryPointsRepository) AppendTransaction(ctx context.Context, tx *domain.XPTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *tx
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.transactions = append(r.transactions, &copied)
	return nil
}

// TransactionsForUser returns a user's ledger entries, newest first.
func (r *MemoryPointsRepository) TransactionsForUser(ctx context.Context, userID string, limit int) ([]*domain.XPTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []*domain.XPTransaction
	for i := len(r.transactions) - 1; i >= 0 && len(results) < limit; i-- {
		if r.transactions[i].UserID == userID {
			copied := *r.transactions[i]
			results = append(results, &copied)
		}
	}
	return results, nil
}

// ResetMonthlyXP zeroes monthly XP for every user with a non-zero total.
func (r *MemoryPointsRepository) ResetMonthlyXP(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var affected int64
	for _, row := range r.points {
		if row.MonthlyXP != 0 {
			row.MonthlyXP = 0
			row.UpdatedAt = time.Now()
			affected++
		}
	}
	return affected, nil
}

// MemoryBadgeRepository is an in-memory BadgeRepository for tests and local
// development. A map plays the role of the unique constraint.
type MemoryBadgeRepository struct {
	mu     sync.Mutex
	badges map[string]map[string]time.Time // userID -> badgeID -> awarded at
}

// NewMemoryBadgeRepository creates an empty in-memory badge repository.
func NewMemoryBadgeRepository() *MemoryBadgeRepository {
	return &MemoryBadgeRepository{
		badges: make(map[string]map[string]time.Time),
	}
}

// Award grants a badge, returning false if already owned.
func (r *MemoryBadgeRepository) Award(ctx context.Context, userID, badgeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned, ok := r.badges[userID]
	if !ok {
		owned = make(map[string]time.Time)
		r.badges[userID] = owned
	}
	if _, exists := owned[badgeID]; exists {
		return false, nil
	}
	owned[badgeID] = time.Now()
	return true, nil
}

// OwnedBadgeIDs returns the IDs of badges the user already owns.
func (r *MemoryBadgeRepository) OwnedBadgeIDs(ctx context.Context, userID string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]bool, len(r.badges[userID]))
	for badgeID := range r.badges[userID] {
		result[badgeID] = true
	}
	return result, nil
}
