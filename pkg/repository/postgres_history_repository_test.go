package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

// setupHistoryTables creates minimal copies of the host platform's tables so
// the read-only history queries can run against a local database.
func setupHistoryTables(t *testing.T, db *sql.DB) {
	t.Helper()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS establishments (
			id VARCHAR(100) PRIMARY KEY,
			zone VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS check_ins (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			establishment_id VARCHAR(100) NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id VARCHAR(100) PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			body TEXT NOT NULL,
			photo_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id VARCHAR(100) NOT NULL,
			followee_id VARCHAR(100) NOT NULL,
			PRIMARY KEY (follower_id, followee_id)
		)`,
		`CREATE TABLE IF NOT EXISTS review_votes (
			review_id VARCHAR(100) NOT NULL,
			voter_id VARCHAR(100) NOT NULL,
			helpful BOOLEAN NOT NULL,
			PRIMARY KEY (review_id, voter_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create history table: %v", err)
		}
	}

	t.Cleanup(func() {
		_, err := db.Exec("TRUNCATE TABLE establishments, check_ins, reviews, follows, review_votes")
		if err != nil {
			t.Logf("Warning: failed to truncate history tables: %v", err)
		}
	})
}

func TestPostgresHistoryRepository_CheckIns(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	defer cleanupTestDB(t, db)
	setupHistoryTables(t, db)

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	mustExec(`INSERT INTO establishments (id, zone) VALUES
		('cafe-1', 'downtown'), ('bar-1', 'downtown'), ('pier-1', 'harbor')`)

	now := time.Now()
	old := now.Add(-48 * time.Hour)
	mustExec(`INSERT INTO check_ins (user_id, establishment_id, verified, created_at) VALUES
		('user1', 'cafe-1', true, $1),
		('user1', 'cafe-1', true, $1),
		('user1', 'bar-1', true, $1),
		('user1', 'pier-1', true, $2),
		('user1', 'pier-1', false, $1),
		('user2', 'cafe-1', true, $1)`, now, old)

	repo := NewPostgresHistoryRepository(db)
	ctx := context.Background()

	t.Run("all time counts ignore the window", func(t *testing.T) {
		n, err := repo.CheckInCount(ctx, "user1", time.Time{})
		if err != nil {
			t.Fatalf("CheckInCount failed: %v", err)
		}
		if n != 4 {
			t.Errorf("CheckInCount = %d, want 4 (unverified excluded)", n)
		}
	})

	t.Run("windowed count excludes older rows", func(t *testing.T) {
		n, err := repo.CheckInCount(ctx, "user1", now.Add(-time.Hour))
		if err != nil {
			t.Fatalf("CheckInCount failed: %v", err)
		}
		if n != 3 {
			t.Errorf("CheckInCount = %d, want 3", n)
		}
	})

	t.Run("distinct establishments", func(t *testing.T) {
		n, err := repo.DistinctEstablishments(ctx, "user1", time.Time{})
		if err != nil {
			t.Fatalf("DistinctEstablishments failed: %v", err)
		}
		if n != 3 {
			t.Errorf("DistinctEstablishments = %d, want 3", n)
		}
	})

	t.Run("zone scoped count", func(t *testing.T) {
		n, err := repo.CheckInCountInZone(ctx, "user1", "downtown", time.Time{})
		if err != nil {
			t.Fatalf("CheckInCountInZone failed: %v", err)
		}
		if n != 3 {
			t.Errorf("CheckInCountInZone = %d, want 3", n)
		}
	})

	t.Run("distinct zones", func(t *testing.T) {
		n, err := repo.DistinctZones(ctx, "user1", time.Time{})
		if err != nil {
			t.Fatalf("DistinctZones failed: %v", err)
		}
		if n != 2 {
			t.Errorf("DistinctZones = %d, want 2", n)
		}
	})
}

func TestPostgresHistoryRepository_ReviewsAndSocial(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	defer cleanupTestDB(t, db)
	setupHistoryTables(t, db)

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	longBody := make([]byte, 150)
	for i := range longBody {
		longBody[i] = 'a'
	}
	mustExec(`INSERT INTO reviews (id, user_id, body, photo_count) VALUES
		('r1', 'author', $1, 2),
		('r2', 'author', 'short one', 0),
		('r3', 'author', $1, 0)`, string(longBody))
	mustExec(`INSERT INTO follows (follower_id, followee_id) VALUES
		('fan1', 'author'), ('fan2', 'author'), ('author', 'fan1')`)
	mustExec(`INSERT INTO review_votes (review_id, voter_id, helpful) VALUES
		('r1', 'fan1', true), ('r1', 'fan2', true), ('r2', 'fan1', false)`)

	repo := NewPostgresHistoryRepository(db)
	ctx := context.Background()

	t.Run("review filters", func(t *testing.T) {
		n, err := repo.ReviewCount(ctx, "author", ReviewFilter{}, time.Time{})
		if err != nil {
			t.Fatalf("ReviewCount failed: %v", err)
		}
		if n != 3 {
			t.Errorf("ReviewCount = %d, want 3", n)
		}

		n, err = repo.ReviewCount(ctx, "author", ReviewFilter{MinLength: 100}, time.Time{})
		if err != nil {
			t.Fatalf("ReviewCount failed: %v", err)
		}
		if n != 2 {
			t.Errorf("ReviewCount(min 100) = %d, want 2", n)
		}

		n, err = repo.ReviewCount(ctx, "author", ReviewFilter{MinLength: 100, WithPhotos: true}, time.Time{})
		if err != nil {
			t.Fatalf("ReviewCount failed: %v", err)
		}
		if n != 1 {
			t.Errorf("ReviewCount(min 100, photos) = %d, want 1", n)
		}
	})

	t.Run("follow counts", func(t *testing.T) {
		n, err := repo.FollowerCount(ctx, "author")
		if err != nil {
			t.Fatalf("FollowerCount failed: %v", err)
		}
		if n != 2 {
			t.Errorf("FollowerCount = %d, want 2", n)
		}

		n, err = repo.FollowingCount(ctx, "author")
		if err != nil {
			t.Fatalf("FollowingCount failed: %v", err)
		}
		if n != 1 {
			t.Errorf("FollowingCount = %d, want 1", n)
		}
	})

	t.Run("helpful votes received", func(t *testing.T) {
		n, err := repo.HelpfulVotesReceived(ctx, "author")
		if err != nil {
			t.Fatalf("HelpfulVotesReceived failed: %v", err)
		}
		if n != 2 {
			t.Errorf("HelpfulVotesReceived = %d, want 2 (non-helpful excluded)", n)
		}
	})
}
