package domain

// Events carry the minimal, already-validated context the engine needs to
// evaluate relevant missions. Whether the underlying action was valid is
// decided upstream; the engine only reacts.

// CheckInEvent is emitted when a user checks in at an establishment.
type CheckInEvent struct {
	UserID          string
	EstablishmentID string
	Zone            string
	Verified        bool
}

// Countable returns true if the check-in advances mission progress.
// Unverified check-ins are ignored without any store access.
func (e CheckInEvent) Countable() bool {
	return e.Verified && e.UserID != "" && e.EstablishmentID != ""
}

// ReviewEvent is emitted when a user publishes a review.
type ReviewEvent struct {
	UserID   string
	ReviewID string
	Length   int // Review body length in characters
	HasPhoto bool
}

// Countable returns true if the review advances mission progress.
func (e ReviewEvent) Countable() bool {
	return e.UserID != "" && e.Length > 0
}

// VoteEvent is emitted when a user votes on a review. VoterID missions react
// to the cast, AuthorID missions react to the receipt.
type VoteEvent struct {
	VoterID  string
	AuthorID string
	Helpful  bool
}

// Countable returns true if the vote advances mission progress.
// Only helpful votes count.
func (e VoteEvent) Countable() bool {
	return e.Helpful && e.VoterID != ""
}

// FollowEvent is emitted on follow and unfollow actions. Only follows count;
// unfollows are delivered so aggregate follower counts can be recomputed but
// never advance increment-style progress.
type FollowEvent struct {
	FollowerID string
	FolloweeID string
	Followed   bool // false = unfollow
}

// Countable returns true if the action advances mission progress.
func (e FollowEvent) Countable() bool {
	return e.Followed && e.FollowerID != "" && e.FolloweeID != ""
}

// PhotoEvent is emitted when a user uploads a photo.
type PhotoEvent struct {
	UserID          string
	EstablishmentID string
}

// Countable returns true if the upload advances mission progress.
func (e PhotoEvent) Countable() bool {
	return e.UserID != ""
}
