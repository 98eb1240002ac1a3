package enums

import (
	"fmt"
	"strings"
)

// WishlistAction is the storefront proxy `action` query parameter.
type WishlistAction string

const (
	WishlistActionCheck  WishlistAction = "check"
	WishlistActionAdd    WishlistAction = "add"
	WishlistActionRemove WishlistAction = "remove"
)

var validWishlistActions = []WishlistAction{
	WishlistActionCheck,
	WishlistActionAdd,
	WishlistActionRemove,
}

func (a WishlistAction) String() string {
	return string(a)
}

// IsMutation reports whether the action changes wishlist state.
func (a WishlistAction) IsMutation() bool {
	return a == WishlistActionAdd || a == WishlistActionRemove
}

// ParseWishlistAction converts raw input into a WishlistAction.
func ParseWishlistAction(value string) (WishlistAction, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validWishlistActions {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wishlist action %q", value)
}
