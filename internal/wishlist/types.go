package wishlist

import (
	"encoding/json"

	"github.com/angelmondragon/wishlist-ai/pkg/enums"
)

// State is the membership state reported after a toggle.
type State string

const (
	StateAdded   State = "added"
	StateRemoved State = "removed"
)

// Reasons attached to an unscored result.
const (
	ReasonFetchUnavailable = "fetch_unavailable"
	ReasonInProgress       = "in_progress"
	ReasonNotScored        = "not_scored"
	ReasonNotInWishlist    = "not_in_wishlist"
	ReasonStorageFailed    = "storage_unavailable"
)

const (
	MessageMissingParameters = "Missing required parameters"
	MessageAdded             = "Product added to wishlist"
	MessageAlreadyAdded      = "Product already in wishlist"
	MessageAddedUnscored     = "Product added to wishlist, conversion score unavailable"
	MessageAddedPending      = "Product added to wishlist, conversion score is being calculated"
	MessageRemoved           = "Product removed from wishlist"
)

// ScoreResult is either a stored 0-100 score or the reason no score exists.
type ScoreResult struct {
	value  int
	scored bool
	reason string
}

// Scored wraps a persisted score.
func Scored(value int) ScoreResult {
	return ScoreResult{value: value, scored: true}
}

// Unscored records why no score is available.
func Unscored(reason string) ScoreResult {
	return ScoreResult{reason: reason}
}

// Value returns the score and whether one exists.
func (r ScoreResult) Value() (int, bool) {
	return r.value, r.scored
}

func (r ScoreResult) IsScored() bool { return r.scored }

// Reason is empty for scored results.
func (r ScoreResult) Reason() string { return r.reason }

// MarshalJSON renders the score as a number, or null when unscored.
func (r ScoreResult) MarshalJSON() ([]byte, error) {
	if !r.scored {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// ToggleInput identifies a wishlist entry and the requested mutation.
type ToggleInput struct {
	Shop       string
	CustomerID string
	ProductID  string
	Action     enums.WishlistAction
}

type ToggleResult struct {
	State   State
	Score   ScoreResult
	Message string
}

type CheckInput struct {
	Shop       string
	CustomerID string
	ProductID  string
}

type CheckResult struct {
	InWishlist bool
	Score      ScoreResult
}
